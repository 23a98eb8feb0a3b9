package handler

import (
	"context"
	"io"
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/mediaのHTTP（Blobのアップロード・一覧・削除）
type MediaHandler struct {
	uc *usecase.MediaUsecase
}

// DI
func NewMediaHandler(uc *usecase.MediaUsecase) *MediaHandler {
	return &MediaHandler{uc: uc}
}

func (h *MediaHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/media")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("/images", h.uploadImage)
	g.POST("/videos", h.uploadVideo)
	g.POST("/documents", h.uploadDocument)
	g.GET("", h.listMedia)
	g.GET("/download", h.downloadMedia)
	g.DELETE("", h.deleteMedia)
}

func (h *MediaHandler) uploadImage(c echo.Context) error {
	return h.upload(c, h.uc.UploadImage)
}

func (h *MediaHandler) uploadVideo(c echo.Context) error {
	return h.upload(c, h.uc.UploadVideo)
}

func (h *MediaHandler) uploadDocument(c echo.Context) error {
	return h.upload(c, h.uc.UploadDocument)
}

type uploadFunc func(ctx context.Context, userID int64, in usecase.UploadMediaInput) (usecase.MediaUploadResponse, error)

func (h *MediaHandler) upload(c echo.Context, fn uploadFunc) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	in, err := readMultipartFile(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid file"})
	}

	out, err := fn(c.Request().Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *MediaHandler) listMedia(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMedia(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *MediaHandler) downloadMedia(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	data, err := h.uc.DownloadMedia(c.Request().Context(), userID, c.QueryParam("url"))
	if err != nil {
		return writeError(c, err)
	}

	return c.Blob(http.StatusOK, echo.MIMEOctetStream, data)
}

func (h *MediaHandler) deleteMedia(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.DeleteMedia(c.Request().Context(), userID, c.QueryParam("url")); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// multipartの"file"フィールドを読み切る
func readMultipartFile(c echo.Context) (usecase.UploadMediaInput, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return usecase.UploadMediaInput{}, err
	}

	f, err := fh.Open()
	if err != nil {
		return usecase.UploadMediaInput{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return usecase.UploadMediaInput{}, err
	}

	return usecase.UploadMediaInput{
		FileName:    fh.Filename,
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}
