package azure

import (
	"context"
	"io"
	"net/http"

	"app/internal/storage"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/directory"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/service"
)

const (
	contractShareName = "contracts"
	contractDirName   = "customer-contracts"
)

// File Share実装。storage.FileStoreを満たす。
// 契約書はcontractsシェア配下のcustomer-contractsディレクトリに平置きする。
type FileStore struct {
	svc       *service.Client
	shareName string
	dirName   string
}

func NewFileStore(connectionString string) (*FileStore, error) {
	svc, err := service.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, err
	}
	return &FileStore{svc: svc, shareName: contractShareName, dirName: contractDirName}, nil
}

func (s *FileStore) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	dir, err := s.ensureDirectory(ctx)
	if err != nil {
		return "", err
	}

	f := dir.NewFileClient(fileName)
	if _, err := f.Create(ctx, int64(len(data)), nil); err != nil {
		return "", err
	}
	if len(data) > 0 {
		if err := f.UploadBuffer(ctx, data, nil); err != nil {
			return "", err
		}
	}
	return s.shareName + "/" + s.dirName + "/" + fileName, nil
}

func (s *FileStore) Download(ctx context.Context, fileName string) ([]byte, error) {
	dir := s.svc.NewShareClient(s.shareName).NewDirectoryClient(s.dirName)

	f := dir.NewFileClient(fileName)
	resp, err := f.DownloadStream(ctx, nil)
	if isStatus(err, http.StatusNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	dir, err := s.ensureDirectory(ctx)
	if err != nil {
		return nil, err
	}

	pager := dir.NewListFilesAndDirectoriesPager(nil)

	names := []string{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, f := range resp.Segment.Files {
			if f.Name == nil {
				continue
			}
			names = append(names, *f.Name)
		}
	}
	return names, nil
}

func (s *FileStore) Delete(ctx context.Context, fileName string) error {
	dir := s.svc.NewShareClient(s.shareName).NewDirectoryClient(s.dirName)

	f := dir.NewFileClient(fileName)
	_, err := f.Delete(ctx, nil)
	if isStatus(err, http.StatusNotFound) {
		return storage.ErrNotFound
	}
	return err
}

// シェアとディレクトリが無ければ作る（既存なら成功扱い）
func (s *FileStore) ensureDirectory(ctx context.Context) (*directory.Client, error) {
	sh := s.svc.NewShareClient(s.shareName)
	if _, err := sh.Create(ctx, nil); err != nil && !isStatus(err, http.StatusConflict) {
		return nil, err
	}

	dir := sh.NewDirectoryClient(s.dirName)
	if _, err := dir.Create(ctx, nil); err != nil && !isStatus(err, http.StatusConflict) {
		return nil, err
	}
	return dir, nil
}
