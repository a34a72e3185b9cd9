// The geomemo SDK for Go publishes geotagged GeoJSON point-feature records
// onto the Solana ledger through the SPL Memo program, then recovers and
// verifies those records by re-reading the confirmed transaction.
//
// # Packages
//
// The SDK is organized as a small set of packages:
//
//   - pkg/feature: the GeoJSON point-feature record type and its canonical
//     byte codec
//   - pkg/geomemo: memo submission, confirmation, and the multi-strategy
//     recovery and verification pipeline
//   - pkg/shared: cluster endpoints, payer configuration, and keypair
//     loading helpers
//
// # Getting Started
//
// Load a payer keypair, build a client, and round-trip a record:
//
//	payer, err := shared.LoadKeypairFile("~/.config/solana/id.json")
//	client, err := geomemo.NewClient(geomemo.ClientConfig{
//		Cluster: "devnet",
//		Payer:   payer,
//	})
//
//	result, err := client.Submit(ctx, record)
//	recovery, err := client.Recover(ctx, result.Signature,
//		geomemo.RecoverOptions{Expected: &record})
//
// Runnable examples live under examples/, and the geomemo CLI under
// cmd/geomemo.
package sdk
