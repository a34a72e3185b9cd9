package cmd

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

// balanceCmd represents the balance command
var balanceCmd = &cobra.Command{
	Use:   "balance [pubkey]",
	Short: "Show an account balance in lamports",
	Long: `Show the lamport balance of an account. Defaults to the payer when
no public key is given.

Example:
  geomemo balance`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromContext(cmd)
		if err != nil {
			return err
		}

		account := client.Payer()
		if len(args) == 1 {
			parsed, parseErr := solana.PublicKeyFromBase58(args[0])
			if parseErr != nil {
				return fmt.Errorf("invalid public key %q: %w", args[0], parseErr)
			}
			account = parsed
		}

		balance, err := client.Balance(cmd.Context(), account)
		if err != nil {
			return fmt.Errorf("balance lookup failed: %w", err)
		}

		fmt.Printf("%d\n", balance)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
