package geomemo

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

type MemoTxParams struct {
	ProgramID       solana.PublicKey
	Payer           solana.PublicKey
	Payload         []byte
	RecentBlockhash solana.Hash
}

// BuildMemoInstruction builds and returns the configured value. The payer is
// the sole signer account and is never writable; the memo program only reads
// it to attest the signature in its log output.
func BuildMemoInstruction(programID solana.PublicKey, payer solana.PublicKey, payload []byte) solana.Instruction {
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(payer, false, true),
	}
	return solana.NewInstruction(programID, accounts, payload)
}

// BuildMemoTx builds a single-instruction transaction carrying the encoded
// record payload.
func BuildMemoTx(params MemoTxParams) (*solana.Transaction, error) {
	if params.ProgramID.IsZero() {
		return nil, fmt.Errorf("program ID is required")
	}
	if params.Payer.IsZero() {
		return nil, fmt.Errorf("payer public key is required")
	}
	if len(params.Payload) == 0 {
		return nil, fmt.Errorf("payload cannot be empty")
	}

	instruction := BuildMemoInstruction(params.ProgramID, params.Payer, params.Payload)

	transaction, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		params.RecentBlockhash,
		solana.TransactionPayer(params.Payer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build memo transaction: %w", err)
	}

	return transaction, nil
}
