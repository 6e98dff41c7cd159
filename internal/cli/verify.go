package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcm-medical/vcmclient/internal/app"
)

var verifyEmail, verifyCode string

// verifyOTPCmd represents the verify-otp command
var verifyOTPCmd = &cobra.Command{
	Use:   "verify-otp",
	Short: "Confirm the emailed verification code",
	RunE: withContainer(func(ctx context.Context, c *app.Container) error {
		if err := c.SessionCtrl.VerifyOTP(ctx, verifyEmail, verifyCode); err != nil {
			return err
		}
		snap := c.SessionCtrl.Snapshot()
		fmt.Printf("Verified %s.\n", verifyEmail)
		if !snap.User.ProfileComplete {
			fmt.Println("Profile incomplete; run `vcmctl complete-profile`.")
		}
		return nil
	}),
}

var resendEmail string

// resendOTPCmd represents the resend-otp command
var resendOTPCmd = &cobra.Command{
	Use:   "resend-otp",
	Short: "Request a fresh verification code",
	RunE: withContainer(func(ctx context.Context, c *app.Container) error {
		if err := c.SessionCtrl.ResendOTP(ctx, resendEmail); err != nil {
			return err
		}
		fmt.Println("New verification code sent.")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(verifyOTPCmd)
	rootCmd.AddCommand(resendOTPCmd)

	verifyOTPCmd.Flags().StringVar(&verifyEmail, "email", "", "account email")
	verifyOTPCmd.Flags().StringVar(&verifyCode, "code", "", "verification code")
	verifyOTPCmd.MarkFlagRequired("email")
	verifyOTPCmd.MarkFlagRequired("code")

	resendOTPCmd.Flags().StringVar(&resendEmail, "email", "", "account email")
	resendOTPCmd.MarkFlagRequired("email")
}
