package main

import (
	"github.com/spf13/cobra"

	"github.com/helixir/academic-profile-service/internal/bibliometrics"
	"github.com/helixir/academic-profile-service/internal/domain"
)

type statsOutput struct {
	Scope      string            `json:"scope"`
	OwnerID    string            `json:"ownerId,omitempty"`
	Statistics domain.Statistics `json:"statistics"`
}

func newStatsCmd(a *app, opts *rootOptions) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Compute bibliometric statistics",
		Long: `Compute publication and citation statistics for one owner, or for every
publication on the platform when --owner is omitted.

Examples:
  academicctl stats
  academicctl stats --owner 0b7c9e0e-2f9a-4c1e-9d51-0f0a3a1c2b3d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := a.directory.Statistics(cmd.Context(), owner)
			if err != nil {
				return err
			}

			scope := "global"
			if owner != "" {
				scope = "owner"
			}

			out := cmd.OutOrStdout()
			if opts.human {
				printf(out, "Scope:        %s\n", scope)
				printf(out, "Publications: %d\n", stats.TotalPublications)
				printf(out, "Citations:    %d\n", stats.TotalCitations)
				printf(out, "h-index:      %d\n", stats.HIndex)
				printf(out, "i10-index:    %d\n", stats.I10Index)
				return nil
			}
			return writeJSON(out, statsOutput{Scope: scope, OwnerID: owner, Statistics: stats})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "owner id (default: whole platform)")
	return cmd
}

func newSearchCmd(a *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search researcher profiles",
		Long: `Search profiles by name, title, affiliation or research interest,
case-insensitively. Without a query every profile is listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			profiles, err := a.directory.Search(cmd.Context(), query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.human {
				if len(profiles) == 0 {
					printf(out, "No profiles found\n")
					return nil
				}
				for _, p := range profiles {
					printf(out, "%s  %s\n", p.OwnerID, p.Name)
					printf(out, "    %s, %s\n", p.Title, p.Affiliation)
					printf(out, "    interests: %s\n", joinOrDash(p.ResearchInterests))
				}
				return nil
			}
			return writeJSON(out, profiles)
		},
	}
}

func newPublicationsCmd(a *app, opts *rootOptions) *cobra.Command {
	var (
		owner string
		sort  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "publications",
		Short: "List publications",
		Long: `List the publications of one owner in insertion order, or every
publication ranked by --sort (recent or citations) when --owner is omitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				pubs []domain.Publication
				err  error
			)
			if owner != "" {
				pubs, err = a.publications.ListByOwner(cmd.Context(), owner)
				if err == nil && cmd.Flags().Changed("sort") {
					pubs = bibliometrics.Rank(pubs, bibliometrics.ParseSortKey(sort), limit)
				}
			} else {
				pubs, err = a.directory.ListPublications(cmd.Context(), bibliometrics.ParseSortKey(sort), limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.human {
				if len(pubs) == 0 {
					printf(out, "No publications\n")
					return nil
				}
				for _, p := range pubs {
					printf(out, "%4d  %6d  %-10s %s\n", p.Year, p.Citations, p.Type, truncate(p.Title, titleMaxLen))
				}
				return nil
			}
			return writeJSON(out, pubs)
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "owner id (default: all owners)")
	cmd.Flags().StringVar(&sort, "sort", string(bibliometrics.SortRecent), "ordering: recent or citations")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of publications (default: directory default)")
	return cmd
}
