package file

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

var _ StorageClient = (*CloudStorageClient)(nil)

// CloudStorageClient stores uploads in a Google Cloud Storage bucket.
type CloudStorageClient struct {
	BucketName string
	Ctx        context.Context
	Client     *storage.Client
}

// NewCloudStorageClient connects to GCS and probes the bucket so a
// misconfigured deployment fails at startup rather than on first upload.
func NewCloudStorageClient(bucketName string) (*CloudStorageClient, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}

	it := client.Bucket(bucketName).Objects(ctx, &storage.Query{})
	if _, err := it.Next(); err != nil && err != iterator.Done {
		_ = client.Close()
		return nil, fmt.Errorf("bucket %q is not accessible: %v", bucketName, err)
	}

	return &CloudStorageClient{
		BucketName: bucketName,
		Ctx:        ctx,
		Client:     client,
	}, nil
}

// UploadFile writes the object to the bucket, replacing any existing object
// with the same name.
func (c *CloudStorageClient) UploadFile(objectName string, fileData io.Reader) error {
	bucket := c.Client.Bucket(c.BucketName)
	obj := bucket.Object(objectName)
	wc := obj.NewWriter(c.Ctx)
	if _, err := io.Copy(wc, fileData); err != nil {
		return fmt.Errorf("failed to write data to object: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close object writer: %v", err)
	}
	return nil
}

// DownloadFile opens a reader over the named object. Returns
// storage.ErrObjectNotExist when the object is absent.
func (c *CloudStorageClient) DownloadFile(objectName string) (io.ReadCloser, int64, error) {
	bucket := c.Client.Bucket(c.BucketName)
	reader, err := bucket.Object(objectName).NewReader(c.Ctx)
	if err != nil {
		return nil, 0, err
	}
	return reader, reader.Attrs.Size, nil
}
