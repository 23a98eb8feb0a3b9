package handler

import (
	"io"
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/contractsのHTTP（契約書ファイル）
type ContractHandler struct {
	uc *usecase.ContractUsecase
}

// DI
func NewContractHandler(uc *usecase.ContractUsecase) *ContractHandler {
	return &ContractHandler{uc: uc}
}

func (h *ContractHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/contracts")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.uploadContract)
	g.GET("", h.listContracts)
	g.GET("/:name", h.downloadContract)
	g.DELETE("/:name", h.deleteContract)
}

// multipart: file＋contract_name/customer_id/contract_typeフィールド
func (h *ContractHandler) uploadContract(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid file"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid file"})
	}

	customerID, err := strconv.ParseInt(c.FormValue("customer_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id"})
	}

	out, err := h.uc.UploadContract(c.Request().Context(), userID, usecase.UploadContractInput{
		ContractName: c.FormValue("contract_name"),
		CustomerID:   customerID,
		ContractType: c.FormValue("contract_type"),
		FileName:     fh.Filename,
		Data:         data,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *ContractHandler) listContracts(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListContractFiles(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ContractHandler) downloadContract(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	data, err := h.uc.DownloadContractFile(c.Request().Context(), userID, c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}

	return c.Blob(http.StatusOK, echo.MIMEOctetStream, data)
}

func (h *ContractHandler) deleteContract(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.DeleteContractFile(c.Request().Context(), userID, c.Param("name")); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
