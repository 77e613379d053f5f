package blob

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/vvka-141/claimload/pkg/claimload"
)

// AzureStore implements Store against Azure Blob Storage.
//
// Thread-Safety: Safe for concurrent use (the underlying azblob.Client is
// thread-safe). Transient download failures are retried by the SDK's built-in
// retry policy.
type AzureStore struct {
	client *azblob.Client
}

// NewAzureStore creates an AzureStore from a storage account connection string.
func NewAzureStore(connectionString string) (*AzureStore, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %v: %w", err, claimload.ErrInvalidConfig)
	}
	return &AzureStore{client: client}, nil
}

// Get downloads the named blob and returns its raw bytes.
// Missing blobs and missing containers both map to claimload.ErrObjectNotFound.
func (s *AzureStore) Get(ctx context.Context, container, name string) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, container, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, fmt.Errorf("%s/%s: %w", container, name, claimload.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to download %s/%s: %w", container, name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", container, name, err)
	}
	return data, nil
}

// Verify AzureStore implements Store at compile time
var _ Store = (*AzureStore)(nil)
