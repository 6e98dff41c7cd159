package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vcm-medical/vcmclient/internal/app"
)

// locationsCmd groups the reference-data commands
var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Browse the country/state/city reference data",
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List countries",
	RunE: withContainer(func(ctx context.Context, c *app.Container) error {
		countries, err := c.LocationSvc.LoadCountries(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tABBR")
		for _, country := range countries {
			fmt.Fprintf(w, "%d\t%s\t%s\n", country.ID, country.Name, country.Abbr)
		}
		return w.Flush()
	}),
}

var statesCountryID int

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List states for a country",
	RunE: withContainer(func(ctx context.Context, c *app.Container) error {
		states, err := c.LocationSvc.LoadStates(ctx, statesCountryID)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tABBR")
		for _, state := range states {
			fmt.Fprintf(w, "%d\t%s\t%s\n", state.ID, state.Name, state.Abbr)
		}
		return w.Flush()
	}),
}

var citiesCountryID, citiesStateID int

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List cities for a country and state",
	RunE: withContainer(func(ctx context.Context, c *app.Container) error {
		// LoadCities validates the pair itself, but states must be
		// selected through the same service for the cascade to hold.
		if _, err := c.LocationSvc.LoadStates(ctx, citiesCountryID); err != nil {
			return err
		}
		cities, err := c.LocationSvc.LoadCities(ctx, citiesCountryID, citiesStateID)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tABBR")
		for _, city := range cities {
			fmt.Fprintf(w, "%d\t%s\t%s\n", city.ID, city.Name, city.Abbr)
		}
		return w.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(locationsCmd)
	locationsCmd.AddCommand(countriesCmd)
	locationsCmd.AddCommand(statesCmd)
	locationsCmd.AddCommand(citiesCmd)

	statesCmd.Flags().IntVar(&statesCountryID, "country", 0, "country id")
	statesCmd.MarkFlagRequired("country")

	citiesCmd.Flags().IntVar(&citiesCountryID, "country", 0, "country id")
	citiesCmd.Flags().IntVar(&citiesStateID, "state", 0, "state id")
	citiesCmd.MarkFlagRequired("country")
	citiesCmd.MarkFlagRequired("state")
}
