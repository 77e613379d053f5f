package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvka-141/claimload/pkg/claimload"
)

// fileScheme selects the local directory store in a storage connection
// string, e.g. file:///var/feeds.
const fileScheme = "file://"

// DirStore implements Store against a local directory tree. Containers map
// to subdirectories and objects to files, mirroring the blob layout so a
// feed drop can be tested from disk before it lands in cloud storage.
//
// Thread-Safety: Safe for concurrent use.
type DirStore struct {
	root string
}

// NewDirStore creates a DirStore rooted at the given directory.
func NewDirStore(root string) (*DirStore, error) {
	if root == "" {
		return nil, fmt.Errorf("directory store root cannot be empty: %w", claimload.ErrInvalidConfig)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("directory store root %s: %v: %w", root, err, claimload.ErrInvalidConfig)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("directory store root %s is not a directory: %w", root, claimload.ErrInvalidConfig)
	}
	return &DirStore{root: root}, nil
}

// Get reads container/name relative to the store root.
// Missing files and missing container directories both map to
// claimload.ErrObjectNotFound.
func (s *DirStore) Get(_ context.Context, container, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, container, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s/%s: %w", container, name, claimload.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to read %s/%s: %w", container, name, err)
	}
	return data, nil
}

// NewStore builds the Store selected by the storage connection string:
// file:// URLs get a DirStore, anything else is treated as an Azure storage
// account connection string.
func NewStore(connectionString string) (Store, error) {
	if strings.HasPrefix(connectionString, fileScheme) {
		return NewDirStore(strings.TrimPrefix(connectionString, fileScheme))
	}
	return NewAzureStore(connectionString)
}

// Verify DirStore implements Store at compile time
var _ Store = (*DirStore)(nil)
