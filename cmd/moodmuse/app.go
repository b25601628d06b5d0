package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/justestif/go-moodmuse/internal/catalog"
	"github.com/justestif/go-moodmuse/internal/config"
	"github.com/justestif/go-moodmuse/internal/db"
	"github.com/justestif/go-moodmuse/internal/hints"
	"github.com/justestif/go-moodmuse/internal/importer"
	"github.com/justestif/go-moodmuse/internal/lastfm"
	"github.com/justestif/go-moodmuse/internal/lexicon"
	"github.com/justestif/go-moodmuse/internal/logger"
	"github.com/justestif/go-moodmuse/internal/mood"
	"github.com/justestif/go-moodmuse/internal/ranking"
	"github.com/justestif/go-moodmuse/internal/recommend"
	"github.com/justestif/go-moodmuse/internal/session"
	"github.com/justestif/go-moodmuse/internal/spotify"
)

var errNoDatabase = errors.New("DATABASE_URL is required for this command")

// app holds the wired dependencies shared by every command.
type app struct {
	cfg         *config.Config
	log         *logger.Logger
	classifier  *catalog.Classifier
	store       catalog.Store
	database    *db.DB
	rdb         *redis.Client
	recommender *recommend.Service
}

func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	lex, err := loadLexicon(cfg.LexiconPath)
	if err != nil {
		return nil, err
	}
	cc, err := catalog.NewClassifier(lex)
	if err != nil {
		return nil, fmt.Errorf("building catalog classifier: %w", err)
	}

	a := &app{cfg: cfg, log: log, classifier: cc}

	switch {
	case cfg.DatabaseURL != "":
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}
		a.database = database
		a.store = database.Songs()
		log.Info("catalog store", "kind", "postgres")
	case cfg.CatalogPath != "":
		store, err := catalog.LoadFile(cfg.CatalogPath, cc)
		if err != nil {
			return nil, err
		}
		a.store = store
		log.Info("catalog store", "kind", "file", "path", cfg.CatalogPath, "songs", store.Len())
	default:
		store, err := catalog.LoadSample(cc)
		if err != nil {
			return nil, err
		}
		a.store = store
		log.Info("catalog store", "kind", "sample", "songs", store.Len())
	}

	a.recommender = recommend.New(mood.NewClassifier(lex), ranking.NewRanker(catalog.NewCache(cc)), a.store, log)
	return a, nil
}

func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.Default()
	}
	return lexicon.LoadFile(path)
}

// redisClient connects lazily so commands that never touch Redis do not
// need it.
func (a *app) redisClient(ctx context.Context) (*redis.Client, error) {
	if a.rdb != nil || a.cfg.RedisAddr == "" {
		return a.rdb, nil
	}
	rdb, err := session.Dial(ctx, a.cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	a.rdb = rdb
	return rdb, nil
}

func (a *app) sessionStore(ctx context.Context) (session.Store, error) {
	rdb, err := a.redisClient(ctx)
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		a.log.Info("session store", "kind", "redis", "ttl", a.cfg.SessionTTL)
		return session.NewRedisStore(rdb, a.cfg.SessionTTL), nil
	}
	a.log.Info("session store", "kind", "memory", "ttl", a.cfg.SessionTTL)
	return session.NewMemoryStore(a.cfg.SessionTTL), nil
}

func (a *app) importer(ctx context.Context) (*importer.Service, error) {
	if a.database == nil {
		return nil, errNoDatabase
	}
	sp, err := config.LoadSpotify()
	if err != nil {
		return nil, err
	}
	client := spotify.NewClientCredentials(ctx, sp, a.log)

	var opts []importer.Option
	lf, err := lastfm.LoadConfig()
	switch {
	case errors.Is(err, lastfm.ErrMissingAPIKey):
		a.log.Info("LASTFM_API_KEY not set, importing without tags")
	case err != nil:
		return nil, err
	default:
		var fetcher hints.TagFetcher = lastfm.NewClient(lf)
		rdb, err := a.redisClient(ctx)
		if err != nil {
			return nil, err
		}
		if rdb != nil {
			fetcher = hints.NewCachedFetcher(rdb, fetcher)
		}
		opts = append(opts, importer.WithHints(hints.NewService(fetcher, a.classifier)))
	}

	return importer.New(client, a.classifier, a.database.Songs(), a.log, opts...), nil
}

func (a *app) Close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.database != nil {
		a.database.Close()
	}
}
