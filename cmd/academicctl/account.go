package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/helixir/academic-profile-service/internal/domain"
)

// accountView is the account as printed by the CLI; the password hash stays on disk.
type accountView struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func viewAccount(acc domain.Account) accountView {
	return accountView{
		ID:        acc.ID,
		Username:  acc.Username,
		Email:     acc.Email,
		CreatedAt: acc.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func newAccountCmd(a *app, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage researcher accounts",
	}
	cmd.AddCommand(newAccountCreateCmd(a, opts), newAccountListCmd(a, opts))
	return cmd
}

func newAccountCreateCmd(a *app, opts *rootOptions) *cobra.Command {
	var username, password, email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a researcher account",
		Long: `Create a researcher account that can sign in to the admin area.

Example:
  academicctl account create --username ada --password 's3cret' --email ada@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(password) == "" {
				return errors.New("--password is required")
			}
			if len(password) > 72 {
				return errors.New("--password must be at most 72 bytes")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cfg.Auth.BcryptCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			acc, err := a.accounts.Create(cmd.Context(), &domain.Account{
				Username:     strings.TrimSpace(username),
				PasswordHash: string(hash),
				Email:        strings.TrimSpace(email),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.human {
				printf(out, "Created account %s (%s)\n", acc.Username, acc.ID)
				return nil
			}
			return writeJSON(out, viewAccount(*acc))
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name (required)")
	cmd.Flags().StringVar(&password, "password", "", "initial password (required)")
	cmd.Flags().StringVar(&email, "email", "", "contact email (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newAccountListCmd(a *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List researcher accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := a.accounts.List(cmd.Context())
			if err != nil {
				return err
			}

			views := make([]accountView, 0, len(accounts))
			for _, acc := range accounts {
				views = append(views, viewAccount(acc))
			}

			out := cmd.OutOrStdout()
			if opts.human {
				if len(views) == 0 {
					printf(out, "No accounts\n")
					return nil
				}
				for _, v := range views {
					printf(out, "%s  %-20s %s\n", v.ID, v.Username, v.Email)
				}
				return nil
			}
			return writeJSON(out, views)
		},
	}
}
