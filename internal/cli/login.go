package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcm-medical/vcmclient/internal/app"
)

var loginEmail, loginPassword string

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and persist the session",
	RunE: withContainer(func(ctx context.Context, c *app.Container) error {
		if err := c.SessionCtrl.Login(ctx, loginEmail, loginPassword); err != nil {
			return err
		}
		snap := c.SessionCtrl.Snapshot()
		fmt.Printf("Logged in as %s (%s)\n", snap.User.FullName(), snap.User.UserType.Label())
		if !snap.User.ProfileComplete {
			fmt.Println("Profile incomplete; run `vcmctl complete-profile`.")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}
