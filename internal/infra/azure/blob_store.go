package azure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"app/internal/storage"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/google/uuid"
)

const (
	mediaContainerName = "multimedia"

	folderImages    = "images"
	folderVideos    = "videos"
	folderDocuments = "documents"
)

// Blob Storage実装。storage.BlobStoreを満たす。
type BlobStore struct {
	client        *azblob.Client
	containerName string
}

func NewBlobStore(connectionString string) (*BlobStore, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, err
	}
	return &BlobStore{client: client, containerName: mediaContainerName}, nil
}

func (s *BlobStore) UploadImage(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	return s.upload(ctx, folderImages, fileName, data, contentType)
}

func (s *BlobStore) UploadVideo(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	return s.upload(ctx, folderVideos, fileName, data, contentType)
}

func (s *BlobStore) UploadDocument(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	return s.upload(ctx, folderDocuments, fileName, data, contentType)
}

func (s *BlobStore) upload(ctx context.Context, folder, fileName string, data []byte, contentType string) (string, error) {
	if err := s.ensureContainer(ctx); err != nil {
		return "", err
	}

	blobName := fmt.Sprintf("%s/%s_%s", folder, uuid.NewString(), fileName)

	_, err := s.client.UploadStream(ctx, s.containerName, blobName, bytes.NewReader(data),
		&azblob.UploadStreamOptions{
			HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
		})
	if err != nil {
		return "", err
	}

	return s.blobURL(blobName), nil
}

func (s *BlobStore) Download(ctx context.Context, blobURL string) ([]byte, error) {
	blobName, err := s.blobNameFromURL(blobURL)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.DownloadStream(ctx, s.containerName, blobName, nil)
	if isStatus(err, http.StatusNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func (s *BlobStore) ListURLs(ctx context.Context) ([]string, error) {
	if err := s.ensureContainer(ctx); err != nil {
		return nil, err
	}

	pager := s.client.NewListBlobsFlatPager(s.containerName, nil)

	urls := []string{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range resp.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			urls = append(urls, s.blobURL(*item.Name))
		}
	}
	return urls, nil
}

func (s *BlobStore) Delete(ctx context.Context, blobURL string) error {
	blobName, err := s.blobNameFromURL(blobURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteBlob(ctx, s.containerName, blobName, nil)
	if isStatus(err, http.StatusNotFound) {
		return storage.ErrNotFound
	}
	return err
}

// 公開読み取りのコンテナ（blobのURLを直接配るため）
func (s *BlobStore) ensureContainer(ctx context.Context) error {
	access := container.PublicAccessTypeBlob
	_, err := s.client.CreateContainer(ctx, s.containerName, &azblob.CreateContainerOptions{Access: &access})
	if isStatus(err, http.StatusConflict) {
		return nil
	}
	return err
}

func (s *BlobStore) blobURL(blobName string) string {
	return s.client.ServiceClient().NewContainerClient(s.containerName).NewBlobClient(blobName).URL()
}

// URLからコンテナ以下のblob名を取り出す（フォルダprefix込み）
func (s *BlobStore) blobNameFromURL(blobURL string) (string, error) {
	u, err := url.Parse(blobURL)
	if err != nil {
		return "", err
	}
	prefix := "/" + s.containerName + "/"
	p := u.Path
	if !strings.HasPrefix(p, prefix) {
		return "", fmt.Errorf("blob url outside container %s: %s", s.containerName, blobURL)
	}
	name, err := url.PathUnescape(strings.TrimPrefix(p, prefix))
	if err != nil {
		return "", err
	}
	return name, nil
}
