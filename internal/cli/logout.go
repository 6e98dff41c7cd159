package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcm-medical/vcmclient/internal/app"
)

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE: withContainer(func(ctx context.Context, c *app.Container) error {
		if err := c.SessionCtrl.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
