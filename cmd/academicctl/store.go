package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helixir/academic-profile-service/internal/docstore"
)

func newStoreCmd(a *app, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Maintain the document store",
	}
	cmd.AddCommand(newStoreInitCmd(a, opts), newStoreMigrateCmd(a, opts), newStoreCopyCmd(a, opts))
	return cmd
}

func newStoreInitCmd(a *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create any missing collection as an empty list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The store was initialised when it was opened.
			out := cmd.OutOrStdout()
			if opts.human {
				printf(out, "Store ready (%s)\n", a.store.Kind())
				return nil
			}
			return writeJSON(out, map[string]string{"status": "ready", "storage": a.store.Kind()})
		},
	}
}

func newStoreMigrateCmd(a *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade stored records to the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := docstore.NewMigrator(a.store, a.logger).Up(cmd.Context())
			if err != nil {
				return err
			}
			return printReport(cmd, opts, "Upgraded", report)
		},
	}
}

func newStoreCopyCmd(a *app, opts *rootOptions) *cobra.Command {
	var (
		backend  string
		dataDir  string
		boltPath string
	)

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy every collection into another backend",
		Long: `Copy every collection of the configured store into a second store,
replacing whatever the target holds.

Example:
  academicctl store copy --to-backend bolt --to-bolt-path data/academic.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := a.cfg.Storage.Mode()
			if err != nil {
				return err
			}
			dst, err := docstore.Open(docstore.Options{
				Backend:     backend,
				DataDir:     dataDir,
				FileMode:    mode,
				BoltPath:    boltPath,
				BoltTimeout: a.cfg.Storage.BoltTimeout,
			}, a.logger, nil)
			if err != nil {
				return fmt.Errorf("open target store: %w", err)
			}
			defer dst.Close()

			report, err := docstore.NewMigrator(a.store, a.logger).CopyTo(cmd.Context(), dst)
			if err != nil {
				return err
			}
			return printReport(cmd, opts, "Copied", report)
		},
	}

	cmd.Flags().StringVar(&backend, "to-backend", docstore.BackendBolt, "target backend: file or bolt")
	cmd.Flags().StringVar(&dataDir, "to-data-dir", "", "target directory for the file backend")
	cmd.Flags().StringVar(&boltPath, "to-bolt-path", "", "target database file for the bolt backend")
	return cmd
}

func printReport(cmd *cobra.Command, opts *rootOptions, verb string, report docstore.MigrationReport) error {
	out := cmd.OutOrStdout()
	if opts.human {
		printf(out, "%s %d accounts, %d profiles, %d publications\n",
			verb, report.Accounts, report.Profiles, report.Publications)
		return nil
	}
	return writeJSON(out, report)
}
