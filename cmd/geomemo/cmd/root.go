package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/geomemo/sdk-go/pkg/geomemo"
	"github.com/geomemo/sdk-go/pkg/shared"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "geomemo",
	Short: "Publish and recover geotagged records on Solana",
	Long: `geomemo publishes a geotagged GeoJSON point-feature record onto the
Solana ledger as a single SPL Memo instruction, and recovers it later from
the confirmed transaction.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cluster, _ := cmd.Flags().GetString("cluster")
		endpoint, _ := cmd.Flags().GetString("endpoint")
		keypairPath, _ := cmd.Flags().GetString("keypair")
		commitment, _ := cmd.Flags().GetString("commitment")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if keypairPath == "" || cluster == "" {
			envConfig, envErr := shared.PayerConfigFromEnv()
			if envErr == nil {
				if keypairPath == "" {
					keypairPath = envConfig.KeypairPath
				}
				if cluster == "" {
					cluster = envConfig.Cluster
				}
				if endpoint == "" {
					endpoint = envConfig.RPCEndpoint
				}
			}
		}
		if keypairPath == "" {
			return fmt.Errorf("a payer keypair is required (--keypair or SOLANA_KEYPAIR_PATH)")
		}

		payer, err := shared.LoadKeypairFile(keypairPath)
		if err != nil {
			return err
		}

		logger := zerolog.Nop()
		if verbose {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(zerolog.DebugLevel).
				With().Timestamp().Logger()
		}

		client, err := geomemo.NewClient(geomemo.ClientConfig{
			Cluster:     cluster,
			RPCEndpoint: endpoint,
			Payer:       payer,
			Commitment:  commitment,
			Logger:      &logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		// Store in command context
		cmd.SetContext(context.WithValue(cmd.Context(), clientContextKey, client))
		return nil
	},
}

type contextKey string

const clientContextKey contextKey = "geomemo-client"

func clientFromContext(cmd *cobra.Command) (*geomemo.Client, error) {
	client, ok := cmd.Context().Value(clientContextKey).(*geomemo.Client)
	if !ok {
		return nil, fmt.Errorf("client not found in context")
	}
	return client, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("cluster", "", "Solana cluster (mainnet-beta, devnet, testnet, localnet)")
	rootCmd.PersistentFlags().String("endpoint", "", "RPC endpoint override")
	rootCmd.PersistentFlags().StringP("keypair", "k", "", "Path to the payer keypair file")
	rootCmd.PersistentFlags().String("commitment", "", "Commitment level (processed, confirmed, finalized)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
