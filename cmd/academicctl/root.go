package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/helixir/academic-profile-service/internal/config"
	"github.com/helixir/academic-profile-service/internal/directory"
	"github.com/helixir/academic-profile-service/internal/docstore"
	"github.com/helixir/academic-profile-service/internal/observability"
	"github.com/helixir/academic-profile-service/internal/repository"
)

// app holds what every subcommand needs once the store is open.
type app struct {
	cfg          *config.Config
	logger       zerolog.Logger
	store        *docstore.Store
	profiles     repository.ProfileRepository
	publications repository.PublicationRepository
	accounts     repository.AccountRepository
	directory    *directory.Service
}

type rootOptions struct {
	configPath string
	envFile    string
	dataDir    string
	verbose    bool
	human      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	cmd := &cobra.Command{
		Use:   "academicctl",
		Short: "Operate the academic profile directory store",
		Long: `academicctl works directly on the configured document store.

It creates researcher accounts, inspects profiles and publications,
computes bibliometric statistics and migrates stored records.
All commands print JSON unless --human is given.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context(), opts)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: ./config.yaml if present)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the configuration")
	flags.StringVar(&opts.dataDir, "data-dir", "", "override storage.data_dir")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level to stderr")
	flags.BoolVar(&opts.human, "human", false, "use human-readable output instead of JSON")

	cmd.AddCommand(
		newAccountCmd(a, opts),
		newStatsCmd(a, opts),
		newSearchCmd(a, opts),
		newPublicationsCmd(a, opts),
		newStoreCmd(a, opts),
	)
	return cmd
}

func (a *app) open(ctx context.Context, opts *rootOptions) error {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", opts.envFile, err)
		}
	}

	cfg, err := config.LoadOffline(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.dataDir != "" {
		cfg.Storage.DataDir = opts.dataDir
	}
	a.cfg = cfg

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	a.logger = observability.NewLogger(observability.LoggingConfig{
		Level:      level,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: time.RFC3339,
	}).With().Str("component", "academicctl").Logger()

	storeOpts, err := cfg.Storage.StoreOptions()
	if err != nil {
		return err
	}
	store, err := docstore.Open(storeOpts, a.logger, nil)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if err := store.Init(ctx); err != nil {
		store.Close()
		return fmt.Errorf("initialize store: %w", err)
	}
	a.store = store

	a.profiles = repository.NewJSONProfileRepository(store.Profiles, a.logger, nil)
	a.publications = repository.NewJSONPublicationRepository(store.Publications, a.logger, nil)
	a.accounts = repository.NewJSONAccountRepository(store.Accounts, a.logger)
	a.directory = directory.NewService(a.profiles, a.publications, directory.Config{
		PlaceholderThreshold: cfg.Directory.PlaceholderThreshold,
		DefaultLimit:         cfg.Directory.DefaultLimit,
		MaxLimit:             cfg.Directory.MaxLimit,
		FeaturedLimit:        cfg.Directory.FeaturedLimit,
		PlaceholdersEnabled:  cfg.Directory.PlaceholdersEnabled,
	}, a.logger, nil)
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
