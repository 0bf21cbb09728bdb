package configs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML writes data to filePath as TOML, creating parent directories.
// The file is replaced atomically so a concurrent reader of the workspace
// state never sees a partial write, and a value that fails to encode leaves
// the existing file untouched.
func SaveTOML(filePath string, data any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("encoding %s: %w", filePath, err)
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", filePath, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", filePath, err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("writing %s: %w", filePath, err)
	}
	return nil
}

// LoadTOML decodes the TOML file at filePath into data. Keys data has no
// field for are ignored.
func LoadTOML(filePath string, data any) error {
	if _, err := toml.DecodeFile(filePath, data); err != nil {
		return fmt.Errorf("reading %s: %w", filePath, err)
	}
	return nil
}
