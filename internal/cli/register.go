package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcm-medical/vcmclient/domain"
	"github.com/vcm-medical/vcmclient/internal/app"
)

var registerReq struct {
	email     string
	password  string
	userType  int
	firstName string
	lastName  string
	phone     string
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account (triggers an OTP email)",
	RunE: withContainer(func(ctx context.Context, c *app.Container) error {
		err := c.SessionCtrl.Register(ctx, domain.RegisterRequest{
			Email:     registerReq.email,
			Password:  registerReq.password,
			UserType:  domain.UserType(registerReq.userType),
			FirstName: registerReq.firstName,
			LastName:  registerReq.lastName,
			Phone:     registerReq.phone,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Registered %s. Check your email for the verification code,\nthen run `vcmctl verify-otp --email %s --code <code>`.\n",
			registerReq.email, registerReq.email)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().StringVar(&registerReq.email, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerReq.password, "password", "", "account password")
	registerCmd.Flags().IntVar(&registerReq.userType, "user-type", int(domain.UserTypePatient), "user type (0=patient, 5=doctor, ...)")
	registerCmd.Flags().StringVar(&registerReq.firstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&registerReq.lastName, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&registerReq.phone, "phone", "", "phone number")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
}
