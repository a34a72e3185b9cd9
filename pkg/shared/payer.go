package shared

import (
	"bufio"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/gagliardetto/solana-go"
)

type PayerConfig struct {
	KeypairPath string
	PrivateKey  string
	Cluster     string
	RPCEndpoint string
}

var dotenvLoadOnce sync.Once

// PayerConfigFromEnv performs the requested operation.
func PayerConfigFromEnv() (PayerConfig, error) {
	loadDotEnvIfPresent()

	cluster := firstNonEmptyEnv("SOLANA_CLUSTER", "GEOMEMO_CLUSTER", "CLUSTER")
	if cluster == "" {
		cluster = ClusterDevnet
	}

	keypairPath := firstNonEmptyEnv("SOLANA_KEYPAIR_PATH", "GEOMEMO_KEYPAIR_PATH", "KEYPAIR_PATH")
	privateKey := firstNonEmptyEnv("SOLANA_PRIVATE_KEY", "GEOMEMO_PRIVATE_KEY", "PRIVATE_KEY")
	endpoint := firstNonEmptyEnv("SOLANA_RPC_ENDPOINT", "GEOMEMO_RPC_ENDPOINT", "RPC_ENDPOINT")

	if keypairPath == "" && privateKey == "" {
		return PayerConfig{}, fmt.Errorf("SOLANA_KEYPAIR_PATH or SOLANA_PRIVATE_KEY is required")
	}

	return PayerConfig{
		KeypairPath: keypairPath,
		PrivateKey:  privateKey,
		Cluster:     cluster,
		RPCEndpoint: endpoint,
	}, nil
}

// LoadPayer performs the requested operation.
func (config PayerConfig) LoadPayer() (solana.PrivateKey, error) {
	if strings.TrimSpace(config.PrivateKey) != "" {
		return ParsePrivateKey(config.PrivateKey)
	}
	return LoadKeypairFile(config.KeypairPath)
}

// LoadKeypairFile performs the requested operation.
func LoadKeypairFile(path string) (solana.PrivateKey, error) {
	expanded := strings.TrimSpace(path)
	if expanded == "" {
		return nil, fmt.Errorf("keypair path cannot be empty")
	}
	if strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		expanded = filepath.Join(home, expanded[2:])
	}

	key, err := solana.PrivateKeyFromSolanaKeygenFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to load keypair file %s: %w", expanded, err)
	}

	return key, nil
}

// ParsePrivateKey parses the provided input value.
func ParsePrivateKey(raw string) (solana.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return nil, fmt.Errorf("private key cannot be empty")
	}

	base58Key, base58Err := solana.PrivateKeyFromBase58(candidate)
	if base58Err == nil {
		return base58Key, nil
	}

	var rawValues []int
	jsonErr := json.Unmarshal([]byte(candidate), &rawValues)
	if jsonErr == nil {
		if len(rawValues) == ed25519.PrivateKeySize {
			keyBytes := make([]byte, len(rawValues))
			valid := true
			for index, value := range rawValues {
				if value < 0 || value > 255 {
					valid = false
					break
				}
				keyBytes[index] = byte(value)
			}
			if valid {
				return solana.PrivateKey(keyBytes), nil
			}
			jsonErr = fmt.Errorf("byte array contains values outside 0-255")
		} else {
			jsonErr = fmt.Errorf("byte array has length %d, want %d", len(rawValues), ed25519.PrivateKeySize)
		}
	}

	return nil, fmt.Errorf(
		"failed to parse private key as base58 (%v) or JSON byte array (%v)",
		base58Err,
		jsonErr,
	)
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		startPaths := make([]string, 0, 2)

		if cwd, err := os.Getwd(); err == nil {
			startPaths = append(startPaths, cwd)
		}
		if _, currentFile, _, ok := runtime.Caller(0); ok {
			startPaths = append(startPaths, filepath.Dir(currentFile))
		}

		seenCandidates := make(map[string]struct{})
		for _, start := range startPaths {
			current := start
			for {
				candidate := filepath.Join(current, ".env")
				if _, exists := seenCandidates[candidate]; !exists {
					seenCandidates[candidate] = struct{}{}
					if _, statErr := os.Stat(candidate); statErr == nil {
						loadDotEnvFile(candidate)
						return
					}
				}

				parent := filepath.Dir(current)
				if parent == current {
					break
				}
				current = parent
			}
		}
	})
}

func loadDotEnvFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	loadedAny := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}

		separator := strings.Index(line, "=")
		if separator <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:separator])
		if !isValidEnvKey(key) {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}

		value := strings.TrimSpace(line[separator+1:])
		if len(value) >= 2 {
			first := value[0]
			last := value[len(value)-1]
			if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		if setErr := os.Setenv(key, value); setErr == nil {
			loadedAny = true
		}
	}

	return loadedAny
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}
