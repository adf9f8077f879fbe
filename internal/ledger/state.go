package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ReinvestAnalyzer/internal/model"
)

// LoadState reads the ledger state from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*model.LedgerState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.LedgerState{Deposits: model.Ledger{}}, nil
		}
		return nil, fmt.Errorf("read ledger state: %w", err)
	}
	var state model.LedgerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode ledger state %s: %w", filePath, err)
	}
	if state.Deposits == nil {
		state.Deposits = model.Ledger{}
	}
	return &state, nil
}

// SaveState writes the ledger state to a JSON file, creating its directory if needed.
func SaveState(filePath string, state *model.LedgerState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger state: %w", err)
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
