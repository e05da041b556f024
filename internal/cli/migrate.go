package cli

import (
	"github.com/Dhoini/invoice-dashboard/internal/db"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the users and invoices tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}

			client, err := db.NewDBClient(cmd.Context(), cfg.Database.DSN, log)
			if err != nil {
				return err
			}
			defer client.Close()

			return client.Migrate(cmd.Context())
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var (
		email    string
		password string
		name     string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Apply the schema and add a user who can sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}

			client, err := db.NewDBClient(cmd.Context(), cfg.Database.DSN, log)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Migrate(cmd.Context()); err != nil {
				return err
			}
			users := []db.SeedUser{{Name: name, Email: email, Password: password}}
			return client.Seed(cmd.Context(), users, nil)
		},
	}
	def := db.DefaultSeedUsers[0]
	cmd.Flags().StringVar(&email, "email", def.Email, "user email")
	cmd.Flags().StringVar(&password, "password", def.Password, "user password (at least 6 characters)")
	cmd.Flags().StringVar(&name, "name", def.Name, "user display name")
	return cmd
}
