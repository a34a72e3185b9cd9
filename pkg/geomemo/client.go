package geomemo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"github.com/geomemo/sdk-go/pkg/feature"
	"github.com/geomemo/sdk-go/pkg/shared"
)

const defaultConfirmTimeout = 90 * time.Second

type Client struct {
	ledger    LedgerRPC
	payer     solana.PrivateKey
	programID solana.PublicKey
	log       zerolog.Logger
}

// NewClient creates a new Client.
func NewClient(config ClientConfig) (*Client, error) {
	if len(config.Payer) == 0 {
		return nil, fmt.Errorf("payer private key is required")
	}

	commitment, err := normalizeCommitment(config.Commitment)
	if err != nil {
		return nil, err
	}

	rpcClient, err := shared.NewRPCClient(config.Cluster, config.RPCEndpoint)
	if err != nil {
		return nil, err
	}

	confirmTimeout := config.ConfirmTimeout
	if confirmTimeout <= 0 {
		confirmTimeout = defaultConfirmTimeout
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	programID := config.ProgramID
	if programID.IsZero() {
		programID = MemoProgramID
	}

	return &Client{
		ledger:    newRPCLedger(rpcClient, commitment, confirmTimeout, logger),
		payer:     config.Payer,
		programID: programID,
		log:       logger,
	}, nil
}

// NewClientWithLedger creates a new Client over a caller-supplied ledger
// boundary, for custom transports and tests.
func NewClientWithLedger(
	ledger LedgerRPC,
	payer solana.PrivateKey,
	programID solana.PublicKey,
	logger *zerolog.Logger,
) (*Client, error) {
	if ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}
	if len(payer) == 0 {
		return nil, fmt.Errorf("payer private key is required")
	}
	if programID.IsZero() {
		programID = MemoProgramID
	}

	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}

	return &Client{
		ledger:    ledger,
		payer:     payer,
		programID: programID,
		log:       log,
	}, nil
}

// ProgramID returns the requested value.
func (client *Client) ProgramID() solana.PublicKey {
	return client.programID
}

// Payer returns the payer's public key.
func (client *Client) Payer() solana.PublicKey {
	return client.payer.PublicKey()
}

// Submit encodes the record, wraps it in a single memo instruction signed by
// the payer, and blocks until the network confirms the transaction at the
// client's commitment level. The resulting signature is the sole handle for
// later recovery.
func (client *Client) Submit(ctx context.Context, record feature.Record) (SubmitResult, error) {
	payload, err := feature.Encode(record)
	if err != nil {
		return SubmitResult{}, err
	}

	blockhash, err := client.ledger.RecentBlockhash(ctx)
	if err != nil {
		return SubmitResult{}, NewSubmissionError("", "failed to fetch recent blockhash: %v", err)
	}

	transaction, err := BuildMemoTx(MemoTxParams{
		ProgramID:       client.programID,
		Payer:           client.payer.PublicKey(),
		Payload:         payload,
		RecentBlockhash: blockhash,
	})
	if err != nil {
		return SubmitResult{}, NewSubmissionError("", "failed to build transaction: %v", err)
	}

	if _, signErr := transaction.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if client.payer.PublicKey().Equals(key) {
			return &client.payer
		}
		return nil
	}); signErr != nil {
		return SubmitResult{}, NewSubmissionError("", "failed to sign transaction: %v", signErr)
	}

	signature, slot, err := client.ledger.SubmitAndConfirm(ctx, transaction)
	if err != nil {
		reportedSignature := ""
		if !signature.IsZero() {
			reportedSignature = signature.String()
		}
		return SubmitResult{}, NewSubmissionError(reportedSignature, "submission failed: %v", err)
	}

	client.log.Info().
		Str("signature", signature.String()).
		Uint64("slot", slot).
		Int("payload_bytes", len(payload)).
		Msg("memo record confirmed")

	return SubmitResult{Signature: signature.String(), Slot: slot}, nil
}

// Recover fetches the confirmed transaction identified by signature and
// applies the extraction strategies in priority order: parsed instruction,
// raw base58 data decode, then log-text fallback. The verification verdict
// is computed independently of whether a record was extracted. NotFound is
// reported as a result value, not an error; recovery never mutates ledger
// state and is idempotent.
func (client *Client) Recover(
	ctx context.Context,
	signature string,
	options RecoverOptions,
) (RecoveryResult, error) {
	parsedSignature, err := solana.SignatureFromBase58(strings.TrimSpace(signature))
	if err != nil {
		return RecoveryResult{}, NewInvalidSignatureError(signature)
	}

	parsed, err := client.ledger.GetTransactionParsed(ctx, parsedSignature)
	if err != nil {
		return RecoveryResult{}, err
	}
	if parsed == nil {
		client.log.Debug().Str("signature", signature).Msg("transaction missing at node")
		return RecoveryResult{Status: StatusNotFound, Reason: reasonTransactionMissing}, nil
	}

	verdict := Verification{ExecutionSucceeded: parsed.ExecutionErr == ""}

	programID := client.programID.String()
	matched := matchInstructions(parsed, programID)
	verdict.ProgramMatched = len(matched) > 0

	for _, instruction := range matched {
		if record, ok := extractFromInstruction(instruction); ok {
			client.log.Debug().Str("signature", signature).Msg("recovered from parsed instruction")
			return RecoveryResult{
				Status:       StatusRecovered,
				Record:       &record,
				Verification: verdict,
			}, nil
		}
	}

	// The parsed form yielded no decodable payload. Fetch the raw confirmed
	// form for its execution log lines.
	raw, err := client.ledger.GetTransactionRaw(ctx, parsedSignature)
	if err != nil {
		return RecoveryResult{}, err
	}
	if raw != nil {
		if !verdict.ProgramMatched {
			verdict.ProgramMatched = logsMentionProgram(raw.LogMessages, programID)
		}
		if record, ok := extractFromLogs(raw.LogMessages, options.Expected); ok {
			client.log.Debug().Str("signature", signature).Msg("degraded recovery from log text")
			return RecoveryResult{
				Status:       StatusDegraded,
				Record:       &record,
				Degraded:     true,
				Verification: verdict,
			}, nil
		}
	}

	reason := reasonNoMatch
	if len(matched) > 0 {
		reason = reasonUndecodable
	}
	return RecoveryResult{Status: StatusNotFound, Reason: reason, Verification: verdict}, nil
}

// Balance returns the account balance in lamports.
func (client *Client) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	return client.ledger.GetBalance(ctx, account)
}

func normalizeCommitment(commitment string) (rpc.CommitmentType, error) {
	normalized := strings.ToLower(strings.TrimSpace(commitment))
	switch normalized {
	case "", string(rpc.CommitmentConfirmed):
		return rpc.CommitmentConfirmed, nil
	case string(rpc.CommitmentProcessed):
		return rpc.CommitmentProcessed, nil
	case string(rpc.CommitmentFinalized):
		return rpc.CommitmentFinalized, nil
	default:
		return "", fmt.Errorf("unsupported commitment %q", commitment)
	}
}
