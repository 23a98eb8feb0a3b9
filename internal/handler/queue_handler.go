package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/queuesのHTTP（キュー運用）
type QueueHandler struct {
	uc *usecase.QueueUsecase
}

// DI
func NewQueueHandler(uc *usecase.QueueUsecase) *QueueHandler {
	return &QueueHandler{uc: uc}
}

type SendInventoryMessageRequest struct {
	ProductID string `json:"product_id"`
	Action    string `json:"action"`
	Quantity  int    `json:"quantity"`
	Message   string `json:"message"`
}

func (h *QueueHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/queues")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("/inventory", h.sendInventoryMessage)
	g.POST("/:name/receive", h.receiveMessage)
	g.GET("/:name/peek", h.peekMessages)
	g.DELETE("/:name", h.clearQueue)
}

func (h *QueueHandler) sendInventoryMessage(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req SendInventoryMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.SendInventoryMessage(c.Request().Context(), userID, usecase.SendInventoryMessageInput{
		ProductID: req.ProductID,
		Action:    req.Action,
		Quantity:  req.Quantity,
		Message:   req.Message,
	}); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusAccepted)
}

func (h *QueueHandler) receiveMessage(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ReceiveMessage(c.Request().Context(), userID, c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *QueueHandler) peekMessages(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	max, _ := strconv.Atoi(c.QueryParam("max"))

	out, err := h.uc.PeekMessages(c.Request().Context(), userID, c.Param("name"), max)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *QueueHandler) clearQueue(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.ClearQueue(c.Request().Context(), userID, c.Param("name")); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
