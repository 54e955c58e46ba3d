package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"warehouse.GO/core/cache"
	"warehouse.GO/core/validate"
	"warehouse.GO/service/catalog"
)

var newLocation catalog.LocationInput

var locationsNewCmd = &cobra.Command{
	Use:   "locations:new",
	Short: "Create a storage location",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validate.New().Validate(&newLocation); err != nil {
			return fmt.Errorf("invalid location: %v", err)
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		loc, err := catalog.NewService(db, cache.Default()).CreateLocation(context.Background(), newLocation)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created location %s (%s), capacity %s\n", loc.Code, loc.Name, loc.CapacityVolume)
		return nil
	},
}

func init() {
	f := locationsNewCmd.Flags()
	f.StringVar(&newLocation.Code, "code", "", "Location code, e.g. A-01 (required)")
	f.StringVar(&newLocation.Name, "name", "", "Display name (defaults to code)")
	f.StringVar(&newLocation.CapacityVolume, "capacity", "", "Capacity volume (required)")
	f.StringVar(&newLocation.Note, "note", "", "Free-form note")
	locationsNewCmd.PreRun = func(*cobra.Command, []string) {
		if newLocation.Name == "" {
			newLocation.Name = newLocation.Code
		}
	}
	rootCmd.AddCommand(locationsNewCmd)
}
