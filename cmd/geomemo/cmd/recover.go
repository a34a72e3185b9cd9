package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/geomemo/sdk-go/pkg/feature"
	"github.com/geomemo/sdk-go/pkg/geomemo"
)

// recoverCmd represents the recover command
var recoverCmd = &cobra.Command{
	Use:   "recover <signature>",
	Short: "Recover a record from a confirmed transaction",
	Long: `Recover a geotagged record from a confirmed memo transaction and
report the verification verdict.

The log-text fallback only engages when the originally submitted record is
supplied through the --expect-* flags; a record recovered that way is marked
degraded.

Example:
  geomemo recover 5K7s...sig --expect-name "San Francisco"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromContext(cmd)
		if err != nil {
			return err
		}

		options := geomemo.RecoverOptions{}
		expectName, _ := cmd.Flags().GetString("expect-name")
		if expectName != "" {
			expectLon, _ := cmd.Flags().GetFloat64("expect-lon")
			expectLat, _ := cmd.Flags().GetFloat64("expect-lat")
			expectCategory, _ := cmd.Flags().GetString("expect-category")
			expected := feature.NewPointRecord(expectLon, expectLat, expectName, expectCategory, time.Now())
			options.Expected = &expected
		}

		recovery, err := client.Recover(cmd.Context(), args[0], options)
		if err != nil {
			return fmt.Errorf("recover failed: %w", err)
		}

		encoded, err := json.MarshalIndent(recovery, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	},
}

func init() {
	recoverCmd.Flags().String("expect-name", "", "Name property of the originally submitted record")
	recoverCmd.Flags().String("expect-category", "", "Category property of the originally submitted record")
	recoverCmd.Flags().Float64("expect-lon", 0, "Longitude of the originally submitted record")
	recoverCmd.Flags().Float64("expect-lat", 0, "Latitude of the originally submitted record")

	rootCmd.AddCommand(recoverCmd)
}
