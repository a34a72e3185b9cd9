// Package geomemo implements the geomemo publish/recover pipeline for the
// Solana ledger. It submits an encoded point-feature record as a single SPL
// Memo instruction, waits for confirmation at the configured commitment
// level, and later recovers the record from the confirmed transaction.
//
// Recovery unifies the heterogeneous shapes a node may return the memo in —
// a parsed instruction, a raw base58 data field, or execution log text only —
// through an ordered strategy chain. Each strategy is a pure function over
// the fetched transaction views; the first hit wins. The log-text fallback
// reconstructs the record from the caller-supplied expected record and is
// flagged as degraded: it proves the program logged matching text, not the
// exact on-ledger bytes.
//
// # Getting Started
//
// Submit and recover a record:
//
//	client, err := geomemo.NewClient(geomemo.ClientConfig{
//		Cluster: "devnet",
//		Payer:   payer,
//	})
//
//	result, err := client.Submit(ctx, record)
//	recovery, err := client.Recover(ctx, result.Signature,
//		geomemo.RecoverOptions{Expected: &record})
//
// The ledger boundary is the LedgerRPC interface, implemented for solana-go
// RPC nodes and replaceable with a fake in tests.
package geomemo
