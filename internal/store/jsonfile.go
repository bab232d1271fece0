package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pagos/internal/core"
)

// JSONFile stores one pretty-printed JSON file per user under a base
// directory. The directory is created lazily on first write and a missing
// user file reads as an empty collection.
type JSONFile struct {
	dir string
}

func NewJSONFile(dir string) *JSONFile {
	return &JSONFile{dir: dir}
}

func (s *JSONFile) userFile(userID string) string {
	return filepath.Join(s.dir, userID+".json")
}

func (s *JSONFile) Load(_ context.Context, userID string) ([]core.Payment, error) {
	data, err := os.ReadFile(s.userFile(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return []core.Payment{}, nil
		}
		return nil, fmt.Errorf("read collection for %s: %w", userID, err)
	}
	var payments []core.Payment
	if err := json.Unmarshal(data, &payments); err != nil {
		return nil, fmt.Errorf("decode collection for %s: %w", userID, err)
	}
	return payments, nil
}

func (s *JSONFile) Save(_ context.Context, userID string, payments []core.Payment) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if payments == nil {
		payments = []core.Payment{}
	}
	data, err := json.MarshalIndent(payments, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection for %s: %w", userID, err)
	}
	if err := os.WriteFile(s.userFile(userID), data, 0644); err != nil {
		return fmt.Errorf("write collection for %s: %w", userID, err)
	}
	return nil
}
