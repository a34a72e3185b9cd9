package geomemo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/geomemo/sdk-go/pkg/feature"
)

type fakeLedger struct {
	parsed      *ParsedTransactionView
	raw         *RawTransactionView
	parsedErr   error
	rawErr      error
	parsedCalls int
	rawCalls    int

	submitSignature solana.Signature
	submitSlot      uint64
	submitErr       error
	submittedTx     *solana.Transaction

	balance uint64
}

func (ledger *fakeLedger) SubmitAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, uint64, error) {
	ledger.submittedTx = tx
	if ledger.submitErr != nil {
		return solana.Signature{}, 0, ledger.submitErr
	}
	return ledger.submitSignature, ledger.submitSlot, nil
}

func (ledger *fakeLedger) GetTransactionParsed(ctx context.Context, signature solana.Signature) (*ParsedTransactionView, error) {
	ledger.parsedCalls++
	return ledger.parsed, ledger.parsedErr
}

func (ledger *fakeLedger) GetTransactionRaw(ctx context.Context, signature solana.Signature) (*RawTransactionView, error) {
	ledger.rawCalls++
	return ledger.raw, ledger.rawErr
}

func (ledger *fakeLedger) GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	return ledger.balance, nil
}

func (ledger *fakeLedger) RecentBlockhash(ctx context.Context) (solana.Hash, error) {
	return solana.Hash{}, nil
}

func testRecord() feature.Record {
	return feature.Record{
		Type: feature.TypeFeature,
		Geometry: feature.Point{
			Type:        feature.TypePoint,
			Coordinates: []float64{-122.4194, 37.7749},
		},
		Properties: map[string]any{
			feature.PropertyName:       "San Francisco",
			feature.PropertyCategory:   "city",
			feature.PropertyRecordedAt: "2025-02-27T15:42:33.251Z",
		},
	}
}

func testClient(t *testing.T, ledger LedgerRPC) *Client {
	t.Helper()
	client, err := NewClientWithLedger(ledger, testPayer(t), MemoProgramID, nil)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func testSignature() string {
	return solana.Signature{}.String()
}

func memoLogs(marker string) []string {
	return []string{
		fmt.Sprintf("Program %s invoke [1]", MemoProgramID),
		fmt.Sprintf("Program log: Memo (len %d): %q", len(marker), marker),
		fmt.Sprintf("Program %s success", MemoProgramID),
	}
}

func TestRecoverStructuredPath(t *testing.T) {
	record := testRecord()
	payload, err := feature.Encode(record)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	ledger := &fakeLedger{
		parsed: &ParsedTransactionView{
			Instructions: []InstructionView{
				{ProgramID: MemoProgramID.String(), Data: base58.Encode(payload)},
			},
		},
		raw: &RawTransactionView{LogMessages: memoLogs("San Francisco")},
	}
	client := testClient(t, ledger)

	result, err := client.Recover(context.Background(), testSignature(), RecoverOptions{Expected: &record})
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}

	if result.Status != StatusRecovered {
		t.Fatalf("unexpected status: %s (reason %q)", result.Status, result.Reason)
	}
	if result.Degraded {
		t.Fatal("structured recovery must not be degraded")
	}
	if result.Record == nil || !reflect.DeepEqual(*result.Record, record) {
		t.Fatalf("recovered record mismatch: %#v", result.Record)
	}
	if !result.Verification.ProgramMatched {
		t.Fatal("expected ProgramMatched")
	}
	if !result.Verification.ExecutionSucceeded {
		t.Fatal("expected ExecutionSucceeded")
	}
	// Priority order: the log fallback must not be reached when the
	// structured path succeeds.
	if ledger.rawCalls != 0 {
		t.Fatalf("expected no raw fetch, got %d", ledger.rawCalls)
	}
}

func TestRecoverParsedTextPath(t *testing.T) {
	record := testRecord()
	payload, err := feature.Encode(record)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	ledger := &fakeLedger{
		parsed: &ParsedTransactionView{
			Instructions: []InstructionView{
				{ProgramID: MemoProgramID.String(), ParsedText: string(payload)},
			},
		},
	}
	client := testClient(t, ledger)

	result, err := client.Recover(context.Background(), testSignature(), RecoverOptions{})
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}
	if result.Status != StatusRecovered {
		t.Fatalf("unexpected status: %s (reason %q)", result.Status, result.Reason)
	}
	if !reflect.DeepEqual(*result.Record, record) {
		t.Fatalf("recovered record mismatch: %#v", result.Record)
	}
}

func TestRecoverDegradedPath(t *testing.T) {
	record := testRecord()

	// The data field is present but garbled: it decodes as base58 yet is not
	// a valid record payload.
	ledger := &fakeLedger{
		parsed: &ParsedTransactionView{
			Instructions: []InstructionView{
				{ProgramID: MemoProgramID.String(), Data: base58.Encode([]byte("garbled"))},
			},
		},
		raw: &RawTransactionView{LogMessages: memoLogs("San Francisco")},
	}
	client := testClient(t, ledger)

	result, err := client.Recover(context.Background(), testSignature(), RecoverOptions{Expected: &record})
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}

	if result.Status != StatusDegraded {
		t.Fatalf("unexpected status: %s (reason %q)", result.Status, result.Reason)
	}
	if !result.Degraded {
		t.Fatal("expected Degraded flag")
	}
	if result.Record == nil || !reflect.DeepEqual(*result.Record, record) {
		t.Fatalf("reconstructed record mismatch: %#v", result.Record)
	}
	if !result.Verification.ProgramMatched {
		t.Fatal("expected ProgramMatched")
	}
	if ledger.rawCalls != 1 {
		t.Fatalf("expected exactly one raw fetch, got %d", ledger.rawCalls)
	}
}

func TestRecoverDegradedPathRequiresExpected(t *testing.T) {
	ledger := &fakeLedger{
		parsed: &ParsedTransactionView{
			Instructions: []InstructionView{
				{ProgramID: MemoProgramID.String(), Data: base58.Encode([]byte("garbled"))},
			},
		},
		raw: &RawTransactionView{LogMessages: memoLogs("San Francisco")},
	}
	client := testClient(t, ledger)

	result, err := client.Recover(context.Background(), testSignature(), RecoverOptions{})
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}
	if result.Status != StatusNotFound {
		t.Fatalf("unexpected status without expected record: %s", result.Status)
	}
}

func TestRecoverTransactionMissing(t *testing.T) {
	ledger := &fakeLedger{}
	client := testClient(t, ledger)

	result, err := client.Recover(context.Background(), testSignature(), RecoverOptions{})
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}

	if result.Status != StatusNotFound {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if result.Reason != "transaction missing" {
		t.Fatalf("unexpected reason: %q", result.Reason)
	}
	if ledger.rawCalls != 0 {
		t.Fatalf("missing transaction is terminal, got %d raw fetches", ledger.rawCalls)
	}
}

func TestRecoverNoMemoInstructionNoLogMatch(t *testing.T) {
	record := testRecord()
	other := testPayer(t).PublicKey()

	ledger := &fakeLedger{
		parsed: &ParsedTransactionView{
			Instructions: []InstructionView{
				{ProgramID: other.String(), Data: base58.Encode([]byte("unrelated"))},
			},
		},
		raw: &RawTransactionView{LogMessages: []string{"Program log: something else"}},
	}
	client := testClient(t, ledger)

	result, err := client.Recover(context.Background(), testSignature(), RecoverOptions{Expected: &record})
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}

	if result.Status != StatusNotFound {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if result.Reason != "no memo instruction / no matching log" {
		t.Fatalf("unexpected reason: %q", result.Reason)
	}
	if result.Verification.ProgramMatched {
		t.Fatal("expected ProgramMatched to be false")
	}
}

func TestRecoverProgramMatchedViaLogsOnly(t *testing.T) {
	other := testPayer(t).PublicKey()

	ledger := &fakeLedger{
		parsed: &ParsedTransactionView{
			Instructions: []InstructionView{
				{ProgramID: other.String()},
			},
		},
		raw: &RawTransactionView{LogMessages: memoLogs("elsewhere")},
	}
	client := testClient(t, ledger)

	result, err := client.Recover(context.Background(), testSignature(), RecoverOptions{})
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}

	if result.Status != StatusNotFound {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if !result.Verification.ProgramMatched {
		t.Fatal("expected ProgramMatched from log scan")
	}
}

func TestRecoverFailedExecutionStillYieldsRecord(t *testing.T) {
	record := testRecord()
	payload, err := feature.Encode(record)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	ledger := &fakeLedger{
		parsed: &ParsedTransactionView{
			Instructions: []InstructionView{
				{ProgramID: MemoProgramID.String(), Data: base58.Encode(payload)},
			},
			ExecutionErr: "InstructionError",
		},
	}
	client := testClient(t, ledger)

	result, err := client.Recover(context.Background(), testSignature(), RecoverOptions{})
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}

	if result.Status != StatusRecovered {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if result.Verification.ExecutionSucceeded {
		t.Fatal("expected ExecutionSucceeded to be false")
	}
	if !result.Verification.ProgramMatched {
		t.Fatal("expected ProgramMatched")
	}
}

func TestRecoverIdempotent(t *testing.T) {
	record := testRecord()
	payload, err := feature.Encode(record)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	ledger := &fakeLedger{
		parsed: &ParsedTransactionView{
			Instructions: []InstructionView{
				{ProgramID: MemoProgramID.String(), Data: base58.Encode(payload)},
			},
		},
	}
	client := testClient(t, ledger)

	first, err := client.Recover(context.Background(), testSignature(), RecoverOptions{Expected: &record})
	if err != nil {
		t.Fatalf("first Recover failed: %v", err)
	}
	second, err := client.Recover(context.Background(), testSignature(), RecoverOptions{Expected: &record})
	if err != nil {
		t.Fatalf("second Recover failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recovery is not idempotent:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestRecoverInvalidSignature(t *testing.T) {
	client := testClient(t, &fakeLedger{})

	_, err := client.Recover(context.Background(), "not-a-signature", RecoverOptions{})
	if err == nil {
		t.Fatal("expected error for malformed signature")
	}
	var invalidErr InvalidSignatureError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("expected InvalidSignatureError, got %T: %v", err, err)
	}
}

func TestRecoverPropagatesFetchError(t *testing.T) {
	ledger := &fakeLedger{parsedErr: errors.New("rpc unavailable")}
	client := testClient(t, ledger)

	if _, err := client.Recover(context.Background(), testSignature(), RecoverOptions{}); err == nil {
		t.Fatal("expected error when parsed fetch fails")
	}
}

func TestExtractFromLogsNeedsMarker(t *testing.T) {
	record := testRecord()
	record.Properties[feature.PropertyName] = "  "

	if _, ok := extractFromLogs(memoLogs("San Francisco"), &record); ok {
		t.Fatal("expected no match for blank marker")
	}
	if _, ok := extractFromLogs(nil, nil); ok {
		t.Fatal("expected no match for nil expected record")
	}
}
