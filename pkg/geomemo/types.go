package geomemo

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/geomemo/sdk-go/pkg/feature"
)

// MemoProgramID is the SPL Memo v2 program address.
var MemoProgramID = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")

type ClientConfig struct {
	Cluster        string
	RPCEndpoint    string
	Payer          solana.PrivateKey
	ProgramID      solana.PublicKey
	Commitment     string
	ConfirmTimeout time.Duration
	Logger         *zerolog.Logger
}

type SubmitResult struct {
	Signature string `json:"signature"`
	Slot      uint64 `json:"slot,omitempty"`
}

type RecoveryStatus string

const (
	StatusRecovered RecoveryStatus = "recovered"
	StatusDegraded  RecoveryStatus = "degraded"
	StatusNotFound  RecoveryStatus = "not_found"
)

// Verification is the verdict computed alongside a recovery, independent of
// whether a record was extracted.
type Verification struct {
	ProgramMatched     bool `json:"program_matched"`
	ExecutionSucceeded bool `json:"execution_succeeded"`
}

// RecoveryResult is either a recovered record or an explicit not-found
// outcome with a diagnostic reason. Degraded marks records reconstructed
// from the caller-supplied expected record via the log-text fallback.
type RecoveryResult struct {
	Status       RecoveryStatus  `json:"status"`
	Record       *feature.Record `json:"record,omitempty"`
	Degraded     bool            `json:"degraded"`
	Reason       string          `json:"reason,omitempty"`
	Verification Verification    `json:"verification"`
}

type RecoverOptions struct {
	// Expected is the originally submitted record, used only by the log-text
	// fallback and as the marker source for degraded recovery.
	Expected *feature.Record
}

// InstructionView is one instruction of a confirmed transaction as the node
// reported it, reduced to the fields recovery needs.
type InstructionView struct {
	ProgramID  string
	Data       string // base58-encoded instruction data, may be empty
	ParsedText string // memo text when the node parsed the instruction, may be empty
}

// ParsedTransactionView is the parsed form of a confirmed transaction.
type ParsedTransactionView struct {
	Slot         uint64
	Instructions []InstructionView
	ExecutionErr string // empty when execution succeeded
}

// RawTransactionView is the raw confirmed form, fetched only when the parsed
// form yields no decodable payload.
type RawTransactionView struct {
	Slot         uint64
	LogMessages  []string
	ExecutionErr string
}

// LedgerRPC is the boundary to the ledger node. Fetches return nil views
// (with nil error) when the transaction is unknown at the node.
type LedgerRPC interface {
	SubmitAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, uint64, error)
	GetTransactionParsed(ctx context.Context, signature solana.Signature) (*ParsedTransactionView, error)
	GetTransactionRaw(ctx context.Context, signature solana.Signature) (*RawTransactionView, error)
	GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error)
	RecentBlockhash(ctx context.Context) (solana.Hash, error)
}
