package price

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists the full price map between runs.
type Store interface {
	Load(ctx context.Context) (map[string]map[string]float64, error)
	Save(ctx context.Context, prices map[string]map[string]float64) error
}

// FileStore keeps the price map in a local JSON document, rewritten
// atomically on every save.
type FileStore struct {
	Path string
}

func (s *FileStore) Load(ctx context.Context) (map[string]map[string]float64, error) {
	if s == nil || s.Path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache: %w", err)
	}

	prices := make(map[string]map[string]float64)
	if err := json.Unmarshal(data, &prices); err != nil {
		return nil, fmt.Errorf("parse cache: %w", err)
	}
	return prices, nil
}

func (s *FileStore) Save(ctx context.Context, prices map[string]map[string]float64) error {
	if s == nil || s.Path == "" {
		return nil
	}
	dir := filepath.Dir(s.Path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(prices, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache tmp: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("rename cache: %w", err)
	}
	return nil
}
