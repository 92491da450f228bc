package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var _ StorageClient = (*LocalStorageClient)(nil)

// LocalStorageClient stores uploads as plain files under a single directory.
type LocalStorageClient struct {
	Dir string
}

// NewLocalStorageClient creates the upload directory if needed and returns a
// client writing into it.
func NewLocalStorageClient(dir string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorageClient{Dir: dir}, nil
}

// UploadFile writes the object under the upload directory, replacing any
// existing file with the same name.
func (c *LocalStorageClient) UploadFile(objectName string, fileData io.Reader) error {
	path := filepath.Join(c.Dir, filepath.Base(objectName))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, fileData); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	return f.Close()
}

// DownloadFile opens the named object. Returns os.ErrNotExist (wrapped) when
// the object is absent.
func (c *LocalStorageClient) DownloadFile(objectName string) (io.ReadCloser, int64, error) {
	path := filepath.Join(c.Dir, filepath.Base(objectName))
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}
