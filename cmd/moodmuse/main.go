// Command moodmuse serves mood-based song recommendations and manages the
// song catalog.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/justestif/go-moodmuse/internal/clustering"
	"github.com/justestif/go-moodmuse/internal/config"
	"github.com/justestif/go-moodmuse/internal/intent"
	"github.com/justestif/go-moodmuse/internal/logger"
	"github.com/justestif/go-moodmuse/internal/recommend"
	"github.com/justestif/go-moodmuse/internal/web"
)

const usage = `usage: moodmuse <command> [flags]

commands:
  serve       run the HTTP API (default)
  classify    print the mood analysis of text and emoji
  recommend   print songs for a mood
  profile     print mood groups found in the catalog
  import      import Spotify playlists into the Postgres catalog
  migrate     create the Postgres catalog tables
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "serve":
		return serve(ctx, cfg, log)
	case "classify":
		return classify(ctx, cfg, log, args)
	case "recommend":
		return recommendCmd(ctx, cfg, log, args)
	case "profile":
		return profile(ctx, cfg, log, args)
	case "import":
		return importCmd(ctx, cfg, log, args)
	case "migrate":
		return migrate(ctx, cfg, log)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	sessions, err := a.sessionStore(ctx)
	if err != nil {
		return err
	}

	server := web.NewServer(web.ServerConfig{
		Addr:        cfg.Addr,
		Recommender: a.recommender,
		Sessions:    sessions,
		Log:         log,
	})
	return server.Run()
}

func classify(ctx context.Context, cfg *config.Config, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	emoji := fs.String("emoji", "", "emoji input")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return printJSON(a.recommender.Analyze(strings.Join(fs.Args(), " "), *emoji))
}

func recommendCmd(ctx context.Context, cfg *config.Config, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	emoji := fs.String("emoji", "", "emoji input")
	lang := fs.String("lang", "all", `languages, e.g. "hindi" or "english+punjabi"`)
	in := fs.String("intent", "stay", "stay, lift, distract or surprise")
	limit := fs.Int("limit", recommend.DefaultLimit, "number of songs")
	mode := fs.String("mode", string(recommend.ModeGradient), "gradient or ranked")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(text) == "" && strings.TrimSpace(*emoji) == "" {
		return errors.New("say how you feel: moodmuse recommend [flags] <text>")
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.recommender.Recommend(ctx, recommend.Request{
		Mood:       a.recommender.Analyze(text, *emoji),
		Intent:     intent.Parse(*in),
		Partitions: recommend.ParsePartitions(*lang),
		Limit:      *limit,
		Mode:       recommend.ParseMode(*mode),
	})
	if err != nil {
		return err
	}

	fmt.Println(resp.Label)
	for i, s := range resp.Songs {
		fmt.Printf("%2d. %-40s %-28s %-8s %.2f\n", i+1, s.Item.Title, s.Item.Attribution, s.Item.Partition, s.Score)
	}
	if len(resp.Skipped) > 0 {
		fmt.Printf("(%d steps had no song left)\n", len(resp.Skipped))
	}
	return nil
}

func profile(ctx context.Context, cfg *config.Config, log *logger.Logger, args []string) error {
	def := clustering.DefaultConfig()
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	groups := fs.Int("groups", def.NumGroups, "number of k-means groups")
	minSize := fs.Int("min", def.MinGroupSize, "smallest group kept")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.recommender.Profile(ctx, clustering.Config{NumGroups: *groups, MinGroupSize: *minSize})
	if err != nil {
		return err
	}
	fmt.Println(res.Summary)
	return nil
}

func importCmd(ctx context.Context, cfg *config.Config, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	lang := fs.String("lang", "", "language partition for the imported songs (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("usage: moodmuse import -lang <language> <playlist-id>...")
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	svc, err := a.importer(ctx)
	if err != nil {
		return err
	}
	for _, id := range fs.Args() {
		res, err := svc.Import(ctx, id, *lang)
		if err != nil {
			return fmt.Errorf("importing playlist %s: %w", id, err)
		}
		fmt.Printf("%s: %d songs into %s (%d with audio features, %d with tags)\n",
			res.Playlist, res.Tracks, res.Partition, res.WithFeatures, res.WithHints)
	}
	return nil
}

func migrate(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if cfg.DatabaseURL == "" {
		return errNoDatabase
	}
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()
	log.Info("schema applied")
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
