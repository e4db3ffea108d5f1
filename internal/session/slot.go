package session

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrSlotEmpty reports that no collection has been persisted yet. The store
// treats it exactly like corrupt data: a fresh collection is synthesized.
var ErrSlotEmpty = errors.New("session slot empty")

// Slot is the durable storage port: one named slot holding the serialized
// collection, replaced whole on every write. Implementations must be safe
// for use from a single writer.
type Slot interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// FileSlot persists the collection as a single JSON file.
type FileSlot struct {
	path string
}

// NewFileSlot returns a slot backed by the given file path.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

func (s *FileSlot) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *FileSlot) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
