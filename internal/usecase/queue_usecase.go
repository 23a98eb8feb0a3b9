package usecase

import (
	"context"
	"encoding/json"
	"net/http"

	"app/internal/domain/model"
	"app/internal/storage"
)

// QueueUsecase はキュー（Queue Storage）の運用操作。
// 受信はat-most-once（取った時点で消える）なので管理者専用にしている。
type QueueUsecase struct {
	queues storage.QueueStore
	clock  Clock
}

func NewQueueUsecase(queues storage.QueueStore, clock Clock) *QueueUsecase {
	return &QueueUsecase{
		queues: queues,
		clock:  clock,
	}
}

var knownQueues = map[string]struct{}{
	QueueOrderProcessing:     {},
	QueueInventoryManagement: {},
	QueueImageProcessing:     {},
}

type SendInventoryMessageInput struct {
	ProductID string
	Action    string
	Quantity  int
	Message   string
}

type ReceivedMessageResponse struct {
	Queue string          `json:"queue"`
	Body  json.RawMessage `json:"body"`
}

func (u *QueueUsecase) SendInventoryMessage(ctx context.Context, adminUserID int64, in SendInventoryMessageInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Action == "" {
		return NewHTTPError(http.StatusBadRequest, "action required")
	}

	msg := model.InventoryMessage{
		ProductID: in.ProductID,
		Action:    in.Action,
		Quantity:  in.Quantity,
		Message:   in.Message,
		Timestamp: u.clock.Now(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "encode error")
	}

	if err := u.queues.Send(ctx, QueueInventoryManagement, payload); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "queue error")
	}
	return nil
}

// ReceiveMessage は先頭の1件を取り出して削除する。空ならnot found。
func (u *QueueUsecase) ReceiveMessage(ctx context.Context, adminUserID int64, queueName string) (ReceivedMessageResponse, error) {
	if adminUserID <= 0 {
		return ReceivedMessageResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if _, ok := knownQueues[queueName]; !ok {
		return ReceivedMessageResponse{}, NewHTTPError(http.StatusBadRequest, "unknown queue")
	}

	body, ok, err := u.queues.ReceiveOne(ctx, queueName)
	if err != nil {
		return ReceivedMessageResponse{}, NewHTTPError(http.StatusInternalServerError, "queue error")
	}
	if !ok {
		return ReceivedMessageResponse{}, NewHTTPError(http.StatusNotFound, "queue is empty")
	}

	return ReceivedMessageResponse{Queue: queueName, Body: json.RawMessage(body)}, nil
}

func (u *QueueUsecase) PeekMessages(ctx context.Context, adminUserID int64, queueName string, max int) ([]ReceivedMessageResponse, error) {
	if adminUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if _, ok := knownQueues[queueName]; !ok {
		return nil, NewHTTPError(http.StatusBadRequest, "unknown queue")
	}
	if max < 1 || max > 32 {
		max = 10
	}

	bodies, err := u.queues.Peek(ctx, queueName, max)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "queue error")
	}

	resp := make([]ReceivedMessageResponse, 0, len(bodies))
	for _, b := range bodies {
		resp = append(resp, ReceivedMessageResponse{Queue: queueName, Body: json.RawMessage(b)})
	}
	return resp, nil
}

func (u *QueueUsecase) ClearQueue(ctx context.Context, adminUserID int64, queueName string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if _, ok := knownQueues[queueName]; !ok {
		return NewHTTPError(http.StatusBadRequest, "unknown queue")
	}

	if err := u.queues.Clear(ctx, queueName); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "queue error")
	}
	return nil
}
