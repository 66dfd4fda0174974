package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/sift/internal"
	pkgconfig "github.com/starford/sift/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// Flags win over the file.
	if addr := cmd.String("address"); addr != "" {
		if err := applyAddress(cfg, addr); err != nil {
			return nil, err
		}
	}
	if corpus := cmd.String("corpus"); corpus != "" {
		cfg.Corpus.Path = corpus
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func reindex(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Reindex(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("reindex error: %w", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "sift",
		Usage:  "Full-text search over a local document corpus, served over HTTP",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (defaults are used if it does not exist)",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("SIFT_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "address",
				Aliases: []string{"a"},
				Usage:   "HTTP listen address host:port, overrides the config file",
				Sources: cli.EnvVars("SIFT_ADDRESS"),
			},
			&cli.StringFlag{
				Name:    "corpus",
				Usage:   "Directory to index, overrides the config file",
				Sources: cli.EnvVars("SIFT_CORPUS"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Index the corpus and serve the search UI and API",
				Action: serve,
			},
			{
				Name:   "reindex",
				Usage:  "Bring the index in line with the corpus and exit",
				Action: reindex,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
