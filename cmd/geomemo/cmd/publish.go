package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/geomemo/sdk-go/pkg/feature"
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a geotagged record as a memo transaction",
	Long: `Publish a geotagged GeoJSON point-feature record onto the ledger.

Example:
  geomemo publish --lon -122.4194 --lat 37.7749 --name "San Francisco" --category city`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromContext(cmd)
		if err != nil {
			return err
		}

		longitude, _ := cmd.Flags().GetFloat64("lon")
		latitude, _ := cmd.Flags().GetFloat64("lat")
		name, _ := cmd.Flags().GetString("name")
		category, _ := cmd.Flags().GetString("category")

		record := feature.NewPointRecord(longitude, latitude, name, category, time.Now())

		result, err := client.Submit(cmd.Context(), record)
		if err != nil {
			return fmt.Errorf("publish failed: %w", err)
		}

		fmt.Printf("%s\n", result.Signature)
		return nil
	},
}

func init() {
	publishCmd.Flags().Float64("lon", 0, "Longitude in degrees")
	publishCmd.Flags().Float64("lat", 0, "Latitude in degrees")
	publishCmd.Flags().String("name", "", "Record name")
	publishCmd.Flags().String("category", "", "Record category")
	_ = publishCmd.MarkFlagRequired("lon")
	_ = publishCmd.MarkFlagRequired("lat")
	_ = publishCmd.MarkFlagRequired("name")
	_ = publishCmd.MarkFlagRequired("category")

	rootCmd.AddCommand(publishCmd)
}
