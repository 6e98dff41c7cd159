package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vcm-medical/vcmclient/domain"
	"github.com/vcm-medical/vcmclient/internal/app"
	"github.com/vcm-medical/vcmclient/internal/config"
)

// rootCmd represents the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "vcmctl",
	Short: "Command-line client for the VCM Medical platform",
	Long: `vcmctl drives the VCM Medical platform API from the terminal:
registration, OTP verification, login, profile completion and the
location reference data used by profile forms.

Sessions persist between invocations (file store by default), so a
login survives until logout or token expiry.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withContainer builds the container, restores the persisted session
// and hands both to the command body.
func withContainer(fn func(ctx context.Context, c *app.Container) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}

		container, err := app.NewContainer(cfg)
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}
		defer container.Close()

		ctx := cmd.Context()
		if err := container.SessionCtrl.Restore(ctx); err != nil {
			return fmt.Errorf("restore session: %w", err)
		}

		return fn(ctx, container)
	}
}

func printUser(user *domain.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", user.FullName())
	fmt.Fprintf(w, "Email:\t%s\n", user.Email)
	fmt.Fprintf(w, "Type:\t%s\n", user.UserType.Label())
	fmt.Fprintf(w, "Status:\t%s\n", user.Status)
	fmt.Fprintf(w, "Profile complete:\t%t\n", user.ProfileComplete)
	if user.Phone != "" {
		fmt.Fprintf(w, "Phone:\t%s\n", user.Phone)
	}
	w.Flush()
}
