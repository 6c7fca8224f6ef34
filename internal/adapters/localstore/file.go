// Package localstore persists the selection set as a JSON array in a
// single file, the durable-local-storage analog of the browser
// original. It implements the selection.Port interface.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Default location under the user config dir when none is configured.
const defaultFileName = "selected_drills.json"

const fileMode = 0o600

// ErrSave marks a failed persistence write.
var ErrSave = errors.New("selection save failed")

// FilePort stores the id list at a fixed path. Writes go through a
// temp file and rename so a crash never leaves a half-written file.
type FilePort struct {
	path string
}

// Option applies a configuration option to the FilePort.
type Option func(*FilePort)

// WithPath sets the backing file path.
func WithPath(path string) Option {
	return func(p *FilePort) {
		if path != "" {
			p.path = path
		}
	}
}

// New creates a FilePort. Without options the file lives in the user
// config directory, falling back to the working directory.
func New(opts ...Option) *FilePort {
	p := &FilePort{path: defaultPath()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func defaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "drillboard", defaultFileName)
	}
	return defaultFileName
}

// Load reads the persisted id list. A missing file, unreadable
// content, invalid JSON, or a non-array payload all yield an empty
// list: the selection set resets rather than failing startup.
func (p *FilePort) Load(_ context.Context) ([]string, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, nil
	}
	return ids, nil
}

// Save writes the id list as a JSON array, creating parent directories
// as needed.
func (p *FilePort) Save(_ context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: %w", ErrSave, err)
		}
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, raw, fileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}
