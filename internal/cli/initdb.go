package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yegors/heliflight/internal/auth"
	"github.com/yegors/heliflight/pkg/logger"
)

var (
	flagAdminLogin    string
	flagAdminPassword string
)

func init() {
	initDBCmd.Flags().StringVar(&flagAdminLogin, "admin-login", "", "create an administrator with this login")
	initDBCmd.Flags().StringVar(&flagAdminPassword, "admin-password", "", "password of the new administrator")

	rootCmd.AddCommand(initDBCmd)
}

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the database schema",
	Long: `Create any missing tables and, optionally, an administrator account.

The password is stored as a bcrypt hash.

	Examples:
	  heliflight init-db
	  heliflight init-db --admin-login admin --admin-password secret`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (flagAdminLogin == "") != (flagAdminPassword == "") {
			return fmt.Errorf("--admin-login and --admin-password must be given together")
		}

		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Close()

		ctx := cmd.Context()
		db, err := openDB(ctx, cfg, log, true)
		if err != nil {
			return err
		}
		defer db.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Schema is up to date.")

		if flagAdminLogin == "" {
			return nil
		}
		if err := auth.NewAuthenticator(db, log).CreateAdmin(ctx, flagAdminLogin, flagAdminPassword); err != nil {
			return err
		}
		log.Info("Administrator created", logger.String("login", flagAdminLogin))
		fmt.Fprintf(out, "Administrator %q created.\n", flagAdminLogin)
		return nil
	},
}
