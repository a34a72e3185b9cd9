package geomemo

import (
	"strings"

	"github.com/mr-tron/base58"

	"github.com/geomemo/sdk-go/pkg/feature"
)

const (
	reasonTransactionMissing = "transaction missing"
	reasonNoMatch            = "no memo instruction / no matching log"
	reasonUndecodable        = "memo data not decodable / no matching log"
)

// matchInstructions filters a parsed transaction down to the instructions
// addressed to the memo program.
func matchInstructions(view *ParsedTransactionView, programID string) []InstructionView {
	matched := make([]InstructionView, 0, len(view.Instructions))
	for _, instruction := range view.Instructions {
		if instruction.ProgramID == programID {
			matched = append(matched, instruction)
		}
	}
	return matched
}

// extractFromInstruction attempts the structured-instruction strategies
// against a single matched instruction: the node-parsed memo text first,
// then the raw base58 data field.
func extractFromInstruction(instruction InstructionView) (feature.Record, bool) {
	if instruction.ParsedText != "" {
		if record, err := feature.Decode([]byte(instruction.ParsedText)); err == nil {
			return record, true
		}
	}

	if instruction.Data != "" {
		payload, err := base58.Decode(instruction.Data)
		if err == nil {
			if record, decodeErr := feature.Decode(payload); decodeErr == nil {
				return record, true
			}
		}
	}

	return feature.Record{}, false
}

// extractFromLogs attempts the log-text fallback: if a proper-noun marker
// from the expected record appears verbatim in any execution log line, the
// expected record is returned as a degraded reconstruction. This proves the
// program observed and logged matching text, not the exact on-ledger bytes.
func extractFromLogs(logMessages []string, expected *feature.Record) (feature.Record, bool) {
	if expected == nil {
		return feature.Record{}, false
	}

	marker := expected.Name()
	if strings.TrimSpace(marker) == "" {
		return feature.Record{}, false
	}

	for _, line := range logMessages {
		if strings.Contains(line, marker) {
			return *expected, true
		}
	}

	return feature.Record{}, false
}

// logsMentionProgram reports whether the memo program address appears in the
// execution log lines.
func logsMentionProgram(logMessages []string, programID string) bool {
	for _, line := range logMessages {
		if strings.Contains(line, programID) {
			return true
		}
	}
	return false
}
