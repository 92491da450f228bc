// Package file provides resume storage clients and the download handler.
package file

import "io"

// StorageClient stores and retrieves uploaded documents by object name.
// Object names are sanitized filenames; a second upload under the same name
// overwrites the first.
type StorageClient interface {
	UploadFile(objectName string, fileData io.Reader) error
	// DownloadFile returns a reader over the object's content and its size in
	// bytes when known (0 otherwise).
	DownloadFile(objectName string) (io.ReadCloser, int64, error)
}
