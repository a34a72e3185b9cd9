package geomemo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/mr-tron/base58"
	"github.com/rs/zerolog"
)

// rpcLedger implements LedgerRPC against a solana-go RPC client.
type rpcLedger struct {
	client         *rpc.Client
	commitment     rpc.CommitmentType
	confirmTimeout time.Duration
	log            zerolog.Logger
}

var errNotYetConfirmed = errors.New("transaction not yet confirmed")

func newRPCLedger(
	client *rpc.Client,
	commitment rpc.CommitmentType,
	confirmTimeout time.Duration,
	log zerolog.Logger,
) *rpcLedger {
	return &rpcLedger{
		client:         client,
		commitment:     commitment,
		confirmTimeout: confirmTimeout,
		log:            log,
	}
}

// RecentBlockhash returns the requested value.
func (ledger *rpcLedger) RecentBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := ledger.client.GetLatestBlockhash(ctx, ledger.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to fetch recent blockhash: %w", err)
	}
	if result == nil || result.Value == nil {
		return solana.Hash{}, fmt.Errorf("node returned no recent blockhash")
	}
	return result.Value.Blockhash, nil
}

// SubmitAndConfirm submits the signed transaction and polls signature status
// until the configured commitment is reached, returning the slot the
// transaction landed in. There are no fixed sleeps; the wait is bounded by
// confirmTimeout and the caller's context.
func (ledger *rpcLedger) SubmitAndConfirm(
	ctx context.Context,
	transaction *solana.Transaction,
) (solana.Signature, uint64, error) {
	signature, err := ledger.client.SendTransactionWithOpts(ctx, transaction, rpc.TransactionOpts{
		PreflightCommitment: ledger.commitment,
	})
	if err != nil {
		return solana.Signature{}, 0, fmt.Errorf("failed to send transaction: %w", err)
	}

	ledger.log.Debug().
		Str("signature", signature.String()).
		Str("commitment", string(ledger.commitment)).
		Msg("transaction sent, awaiting confirmation")

	slot, err := ledger.awaitConfirmation(ctx, signature)
	if err != nil {
		return signature, 0, err
	}

	return signature, slot, nil
}

func (ledger *rpcLedger) awaitConfirmation(ctx context.Context, signature solana.Signature) (uint64, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = ledger.confirmTimeout

	confirmedSlot := uint64(0)
	operation := func() error {
		statuses, statusErr := ledger.client.GetSignatureStatuses(ctx, true, signature)
		if statusErr != nil {
			return statusErr
		}
		if statuses == nil || len(statuses.Value) == 0 || statuses.Value[0] == nil {
			return errNotYetConfirmed
		}

		status := statuses.Value[0]
		if status.Err != nil {
			return backoff.Permanent(fmt.Errorf("transaction failed on-chain: %v", status.Err))
		}
		if !commitmentReached(status.ConfirmationStatus, ledger.commitment) {
			ledger.log.Debug().
				Str("signature", signature.String()).
				Str("status", string(status.ConfirmationStatus)).
				Msg("confirmation pending")
			return errNotYetConfirmed
		}
		confirmedSlot = status.Slot
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return 0, fmt.Errorf("timed out awaiting confirmation of %s: %w", signature, err)
	}

	return confirmedSlot, nil
}

func commitmentReached(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	rank := func(level string) int {
		switch level {
		case string(rpc.CommitmentProcessed):
			return 1
		case string(rpc.CommitmentConfirmed):
			return 2
		case string(rpc.CommitmentFinalized):
			return 3
		default:
			return 0
		}
	}
	return rank(string(status)) >= rank(string(want))
}

// GetTransactionParsed returns the requested value, or nil when the
// transaction is unknown at the node.
func (ledger *rpcLedger) GetTransactionParsed(
	ctx context.Context,
	signature solana.Signature,
) (*ParsedTransactionView, error) {
	version := uint64(0)
	result, err := ledger.client.GetParsedTransaction(ctx, signature, &rpc.GetParsedTransactionOpts{
		Commitment:                     ledger.commitment,
		MaxSupportedTransactionVersion: &version,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch parsed transaction %s: %w", signature, err)
	}
	if result == nil || result.Transaction == nil {
		return nil, nil
	}

	view := &ParsedTransactionView{Slot: result.Slot}
	if result.Meta != nil && result.Meta.Err != nil {
		view.ExecutionErr = fmt.Sprintf("%v", result.Meta.Err)
	}
	for _, instruction := range result.Transaction.Message.Instructions {
		if instruction == nil {
			continue
		}
		view.Instructions = append(view.Instructions, parsedInstructionView(instruction))
	}

	return view, nil
}

func parsedInstructionView(instruction *rpc.ParsedInstruction) InstructionView {
	view := InstructionView{
		ProgramID: instruction.ProgramId.String(),
	}
	if len(instruction.Data) > 0 {
		view.Data = base58.Encode(instruction.Data)
	}
	if instruction.Parsed != nil {
		// For the memo program, jsonParsed renders the payload as a bare
		// JSON string rather than an instruction-info object. The envelope
		// keeps both shapes unexported, so round-trip through its JSON form.
		if encoded, marshalErr := instruction.Parsed.MarshalJSON(); marshalErr == nil {
			var text string
			if unmarshalErr := json.Unmarshal(encoded, &text); unmarshalErr == nil {
				view.ParsedText = text
			}
		}
	}
	return view
}

// GetTransactionRaw returns the requested value, or nil when the transaction
// is unknown at the node.
func (ledger *rpcLedger) GetTransactionRaw(
	ctx context.Context,
	signature solana.Signature,
) (*RawTransactionView, error) {
	version := uint64(0)
	result, err := ledger.client.GetTransaction(ctx, signature, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     ledger.commitment,
		MaxSupportedTransactionVersion: &version,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch raw transaction %s: %w", signature, err)
	}
	if result == nil {
		return nil, nil
	}

	view := &RawTransactionView{Slot: result.Slot}
	if result.Meta != nil {
		view.LogMessages = result.Meta.LogMessages
		if result.Meta.Err != nil {
			view.ExecutionErr = fmt.Sprintf("%v", result.Meta.Err)
		}
	}

	return view, nil
}

// GetBalance returns the requested value.
func (ledger *rpcLedger) GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	result, err := ledger.client.GetBalance(ctx, account, ledger.commitment)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch balance of %s: %w", account, err)
	}
	if result == nil {
		return 0, fmt.Errorf("node returned no balance for %s", account)
	}
	return result.Value, nil
}
