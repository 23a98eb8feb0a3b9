package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"path"
	"strings"

	"app/internal/domain/model"
	"app/internal/storage"
)

// MediaUsecase はメディア（Blob Storage）のアップロード・参照・削除。
// 画像のアップロード時はサムネイル生成用のメッセージをキューに流す。
type MediaUsecase struct {
	blobs  storage.BlobStore
	queues storage.QueueStore
	clock  Clock
}

func NewMediaUsecase(blobs storage.BlobStore, queues storage.QueueStore, clock Clock) *MediaUsecase {
	return &MediaUsecase{
		blobs:  blobs,
		queues: queues,
		clock:  clock,
	}
}

type UploadMediaInput struct {
	FileName    string
	Data        []byte
	ContentType string
}

type MediaUploadResponse struct {
	URL string `json:"url"`
}

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

func (u *MediaUsecase) UploadImage(ctx context.Context, adminUserID int64, in UploadMediaInput) (MediaUploadResponse, error) {
	if adminUserID <= 0 {
		return MediaUploadResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateUpload(in); err != nil {
		return MediaUploadResponse{}, err
	}

	ext := strings.ToLower(path.Ext(in.FileName))
	if _, ok := imageExtensions[ext]; !ok {
		return MediaUploadResponse{}, NewHTTPError(http.StatusBadRequest, "unsupported image format")
	}

	url, err := u.blobs.UploadImage(ctx, in.FileName, in.Data, in.ContentType)
	if err != nil {
		return MediaUploadResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	// サムネイル生成は別ワーカー任せ。失敗してもアップロードは成立済み。
	msg := model.ImageProcessingMessage{
		ImageName:      in.FileName,
		ImageURL:       url,
		ProcessingType: "thumbnail",
		Status:         "pending",
		Timestamp:      u.clock.Now(),
	}
	if payload, err := json.Marshal(msg); err == nil {
		_ = u.queues.Send(ctx, QueueImageProcessing, payload)
	}

	return MediaUploadResponse{URL: url}, nil
}

func (u *MediaUsecase) UploadVideo(ctx context.Context, adminUserID int64, in UploadMediaInput) (MediaUploadResponse, error) {
	if adminUserID <= 0 {
		return MediaUploadResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateUpload(in); err != nil {
		return MediaUploadResponse{}, err
	}

	url, err := u.blobs.UploadVideo(ctx, in.FileName, in.Data, in.ContentType)
	if err != nil {
		return MediaUploadResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return MediaUploadResponse{URL: url}, nil
}

func (u *MediaUsecase) UploadDocument(ctx context.Context, adminUserID int64, in UploadMediaInput) (MediaUploadResponse, error) {
	if adminUserID <= 0 {
		return MediaUploadResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateUpload(in); err != nil {
		return MediaUploadResponse{}, err
	}

	url, err := u.blobs.UploadDocument(ctx, in.FileName, in.Data, in.ContentType)
	if err != nil {
		return MediaUploadResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return MediaUploadResponse{URL: url}, nil
}

func (u *MediaUsecase) ListMedia(ctx context.Context, adminUserID int64) ([]string, error) {
	if adminUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	urls, err := u.blobs.ListURLs(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return urls, nil
}

func (u *MediaUsecase) DownloadMedia(ctx context.Context, adminUserID int64, blobURL string) ([]byte, error) {
	if adminUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if blobURL == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid url")
	}

	data, err := u.blobs.Download(ctx, blobURL)
	if err == storage.ErrNotFound {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return data, nil
}

func (u *MediaUsecase) DeleteMedia(ctx context.Context, adminUserID int64, blobURL string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if blobURL == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid url")
	}

	err := u.blobs.Delete(ctx, blobURL)
	if err == storage.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return nil
}

func validateUpload(in UploadMediaInput) error {
	if strings.TrimSpace(in.FileName) == "" {
		return NewHTTPError(http.StatusBadRequest, "file_name required")
	}
	if len(in.Data) == 0 {
		return NewHTTPError(http.StatusBadRequest, "file is empty")
	}
	return nil
}
