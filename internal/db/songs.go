package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/justestif/go-moodmuse/internal/catalog"
)

// SongRepository stores catalog items. It implements catalog.WritableStore.
type SongRepository struct {
	pool *pgxpool.Pool
}

const songColumns = `id, title, artist, language, vector, hints, created_at, updated_at`

// Partitions lists languages in the order their first song was added.
func (r *SongRepository) Partitions(ctx context.Context) ([]string, error) {
	query := `
		SELECT language
		FROM songs
		GROUP BY language
		ORDER BY MIN(created_at), language
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying languages: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return nil, fmt.Errorf("scanning language: %w", err)
		}
		out = append(out, lang)
	}
	return out, rows.Err()
}

// ByPartition returns every song in a language, oldest first.
func (r *SongRepository) ByPartition(ctx context.Context, partition string) ([]catalog.Item, error) {
	query := `SELECT ` + songColumns + `
		FROM songs
		WHERE language = $1
		ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query, strings.ToLower(partition))
	if err != nil {
		return nil, fmt.Errorf("querying songs: %w", err)
	}
	defer rows.Close()

	items := []catalog.Item{}
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s.Item())
	}
	return items, rows.Err()
}

// Get retrieves a song by ID.
func (r *SongRepository) Get(ctx context.Context, id string) (catalog.Item, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = $1`
	s, err := scanSong(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Item{}, fmt.Errorf("getting song %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return catalog.Item{}, err
	}
	return s.Item(), nil
}

// UpsertBatch inserts or updates songs by ID in one round trip. A new song
// whose title and artist match an existing one is skipped.
func (r *SongRepository) UpsertBatch(ctx context.Context, items []catalog.Item) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO songs (id, title, artist, language, vector, hints)
		SELECT $1::text, $2::text, $3::text, $4::text, $5::float8[], $6::text[]
		WHERE NOT EXISTS (
			SELECT 1 FROM songs
			WHERE lower(title) = lower($2) AND lower(artist) = lower($3) AND id <> $1
		)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			artist = EXCLUDED.artist,
			language = EXCLUDED.language,
			vector = EXCLUDED.vector,
			hints = EXCLUDED.hints,
			updated_at = NOW()
	`
	batch := &pgx.Batch{}
	for _, it := range items {
		s := songFromItem(it)
		batch.Queue(query, s.ID, s.Title, s.Artist, s.Language, s.Vector, s.Hints)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for _, it := range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upserting song %q: %w", it.ID, err)
		}
	}
	return nil
}

// Count returns the number of songs per language.
func (r *SongRepository) Count(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT language, COUNT(*) FROM songs GROUP BY language`)
	if err != nil {
		return nil, fmt.Errorf("counting songs: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var lang string
		var n int
		if err := rows.Scan(&lang, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[lang] = n
	}
	return counts, rows.Err()
}

func scanSong(row pgx.Row) (Song, error) {
	var s Song
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Artist,
		&s.Language,
		&s.Vector,
		&s.Hints,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return s, err
	}
	if err != nil {
		return s, fmt.Errorf("scanning song: %w", err)
	}
	return s, nil
}

var _ catalog.WritableStore = (*SongRepository)(nil)
