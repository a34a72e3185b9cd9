package shared

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go/rpc"
)

const (
	ClusterMainnetBeta = "mainnet-beta"
	ClusterDevnet      = "devnet"
	ClusterTestnet     = "testnet"
	ClusterLocalnet    = "localnet"
)

// NormalizeCluster performs the requested operation.
func NormalizeCluster(cluster string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(cluster))
	if normalized == "" {
		return ClusterDevnet, nil
	}

	switch normalized {
	case "mainnet", ClusterMainnetBeta:
		return ClusterMainnetBeta, nil
	case ClusterDevnet, ClusterTestnet, ClusterLocalnet:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported cluster %q", cluster)
	}
}

// ClusterEndpoint returns the requested value.
func ClusterEndpoint(cluster string) (string, error) {
	normalized, err := NormalizeCluster(cluster)
	if err != nil {
		return "", err
	}

	switch normalized {
	case ClusterMainnetBeta:
		return rpc.MainNetBeta_RPC, nil
	case ClusterTestnet:
		return rpc.TestNet_RPC, nil
	case ClusterLocalnet:
		return rpc.LocalNet_RPC, nil
	default:
		return rpc.DevNet_RPC, nil
	}
}

// NewRPCClient creates a new RPCClient.
func NewRPCClient(cluster string, endpointOverride string) (*rpc.Client, error) {
	endpoint := strings.TrimSpace(endpointOverride)
	if endpoint == "" {
		resolved, err := ClusterEndpoint(cluster)
		if err != nil {
			return nil, err
		}
		endpoint = resolved
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, fmt.Errorf("invalid RPC endpoint: scheme must be http or https")
	}

	return rpc.New(endpoint), nil
}
