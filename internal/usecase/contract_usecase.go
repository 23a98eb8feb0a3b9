package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"app/internal/domain/model"
	"app/internal/storage"
)

// UUID等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// ContractUsecase は契約書（File Share）の管理。
// ファイル名は"<contractId>_<元ファイル名>"で一意にする。
type ContractUsecase struct {
	files storage.FileStore
	idGen IDGenerator
	clock Clock
}

func NewContractUsecase(files storage.FileStore, idGen IDGenerator, clock Clock) *ContractUsecase {
	return &ContractUsecase{
		files: files,
		idGen: idGen,
		clock: clock,
	}
}

type UploadContractInput struct {
	ContractName string
	CustomerID   int64
	ContractType string
	FileName     string
	Data         []byte
}

func (u *ContractUsecase) UploadContract(ctx context.Context, adminUserID int64, in UploadContractInput) (model.Contract, error) {
	if adminUserID <= 0 {
		return model.Contract{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.ContractName) == "" {
		return model.Contract{}, NewHTTPError(http.StatusBadRequest, "contract_name required")
	}
	if in.CustomerID <= 0 {
		return model.Contract{}, NewHTTPError(http.StatusBadRequest, "invalid customer_id")
	}
	if strings.TrimSpace(in.FileName) == "" {
		return model.Contract{}, NewHTTPError(http.StatusBadRequest, "file_name required")
	}
	if len(in.Data) == 0 {
		return model.Contract{}, NewHTTPError(http.StatusBadRequest, "file is empty")
	}

	contractID := u.idGen.NewID()
	storedName := fmt.Sprintf("%s_%s", contractID, in.FileName)

	filePath, err := u.files.Upload(ctx, storedName, in.Data)
	if err != nil {
		return model.Contract{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	return model.Contract{
		ContractID:   contractID,
		ContractName: strings.TrimSpace(in.ContractName),
		CustomerID:   strconv.FormatInt(in.CustomerID, 10),
		ContractType: in.ContractType,
		CreatedDate:  u.clock.Now(),
		Status:       "ACTIVE",
		FilePath:     filePath,
	}, nil
}

func (u *ContractUsecase) ListContractFiles(ctx context.Context, adminUserID int64) ([]string, error) {
	if adminUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	names, err := u.files.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return names, nil
}

func (u *ContractUsecase) DownloadContractFile(ctx context.Context, adminUserID int64, fileName string) ([]byte, error) {
	if adminUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if fileName == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid file name")
	}

	data, err := u.files.Download(ctx, fileName)
	if err == storage.ErrNotFound {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return data, nil
}

func (u *ContractUsecase) DeleteContractFile(ctx context.Context, adminUserID int64, fileName string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if fileName == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid file name")
	}

	err := u.files.Delete(ctx, fileName)
	if err == storage.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return nil
}
