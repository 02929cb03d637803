package credential

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FilePersister keeps the API key in a small YAML document on disk.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// DefaultFilePath returns ~/.postergen/credentials.yaml.
func DefaultFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", ".postergen", "credentials.yaml")
	}
	return filepath.Join(home, ".postergen", "credentials.yaml")
}

func (p *FilePersister) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read credential file: %w", err)
	}

	slots := map[string]string{}
	if err := yaml.Unmarshal(data, &slots); err != nil {
		return "", fmt.Errorf("decode credential file: %w", err)
	}

	return slots[SlotName], nil
}

func (p *FilePersister) Save(ctx context.Context, secret string) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	data, err := yaml.Marshal(map[string]string{SlotName: secret})
	if err != nil {
		return fmt.Errorf("encode credential file: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}

	return nil
}
