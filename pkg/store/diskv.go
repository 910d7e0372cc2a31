package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const slotExt = ".slot"

// NewDiskv creates a Persistence backed by diskv rooted at basePath. Reads
// are uncached because other processes write the same files.
func NewDiskv(basePath string) (Persistence, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Get(slot Slot) ([]byte, error) {
	key := string(slot)
	if !p.d.Has(key) {
		return nil, ErrNotFound
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", slot, err)
	}
	return val, nil
}

func (p *persistence) Set(slot Slot, value []byte) error {
	if err := p.d.Write(string(slot), value); err != nil {
		return fmt.Errorf("store: write %s: %w", slot, err)
	}
	return nil
}

func (p *persistence) Has(slot Slot) bool {
	return p.d.Has(string(slot))
}

// Slots are flat files directly under the base path.
func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: s + slotExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, slotExt)
}
