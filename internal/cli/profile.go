package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcm-medical/vcmclient/domain"
	"github.com/vcm-medical/vcmclient/internal/app"
)

var profileReq struct {
	phone         string
	gender        string
	dateOfBirth   string
	countryID     int
	stateID       int
	cityID        int
	streetAddress string
	postalCode    string
}

// completeProfileCmd represents the complete-profile command
var completeProfileCmd = &cobra.Command{
	Use:   "complete-profile",
	Short: "Fill in the demographic and address fields",
	RunE: withContainer(func(ctx context.Context, c *app.Container) error {
		err := c.SessionCtrl.CompleteProfile(ctx, domain.CompleteProfileRequest{
			Phone:         profileReq.phone,
			Gender:        profileReq.gender,
			DateOfBirth:   profileReq.dateOfBirth,
			CountryID:     profileReq.countryID,
			StateID:       profileReq.stateID,
			CityID:        profileReq.cityID,
			StreetAddress: profileReq.streetAddress,
			PostalCode:    profileReq.postalCode,
		})
		if err != nil {
			return err
		}
		fmt.Println("Profile completed.")
		printUser(c.SessionCtrl.Snapshot().User)
		return nil
	}),
}

// meCmd represents the me command
var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Fetch the current user record from the backend",
	RunE: withContainer(func(ctx context.Context, c *app.Container) error {
		if err := c.SessionCtrl.Refresh(ctx); err != nil {
			return err
		}
		printUser(c.SessionCtrl.Snapshot().User)
		return nil
	}),
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the restored session without a network call",
	RunE: withContainer(func(ctx context.Context, c *app.Container) error {
		snap := c.SessionCtrl.Snapshot()
		if !snap.IsAuthenticated {
			fmt.Println("Not logged in.")
			return nil
		}
		printUser(snap.User)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(completeProfileCmd)
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(whoamiCmd)

	completeProfileCmd.Flags().StringVar(&profileReq.phone, "phone", "", "phone number")
	completeProfileCmd.Flags().StringVar(&profileReq.gender, "gender", "", "gender")
	completeProfileCmd.Flags().StringVar(&profileReq.dateOfBirth, "date-of-birth", "", "date of birth (YYYY-MM-DD)")
	completeProfileCmd.Flags().IntVar(&profileReq.countryID, "country", 0, "country id")
	completeProfileCmd.Flags().IntVar(&profileReq.stateID, "state", 0, "state id")
	completeProfileCmd.Flags().IntVar(&profileReq.cityID, "city", 0, "city id")
	completeProfileCmd.Flags().StringVar(&profileReq.streetAddress, "street", "", "street address")
	completeProfileCmd.Flags().StringVar(&profileReq.postalCode, "postal-code", "", "postal code")
	completeProfileCmd.MarkFlagRequired("phone")
	completeProfileCmd.MarkFlagRequired("gender")
	completeProfileCmd.MarkFlagRequired("date-of-birth")
	completeProfileCmd.MarkFlagRequired("country")
	completeProfileCmd.MarkFlagRequired("state")
}
