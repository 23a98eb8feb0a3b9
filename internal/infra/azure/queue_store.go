package azure

import (
	"context"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"
)

// Queue Storage実装。storage.QueueStoreを満たす。
// ReceiveOneは取得直後に削除するため再配達は起きない。
type QueueStore struct {
	svc *azqueue.ServiceClient
}

func NewQueueStore(connectionString string) (*QueueStore, error) {
	svc, err := azqueue.NewServiceClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, err
	}
	return &QueueStore{svc: svc}, nil
}

func (s *QueueStore) Send(ctx context.Context, queueName string, payload []byte) error {
	q := s.svc.NewQueueClient(queueName)

	if err := s.ensureQueue(ctx, q); err != nil {
		return err
	}

	_, err := q.EnqueueMessage(ctx, string(payload), nil)
	return err
}

func (s *QueueStore) ReceiveOne(ctx context.Context, queueName string) ([]byte, bool, error) {
	q := s.svc.NewQueueClient(queueName)

	resp, err := q.DequeueMessage(ctx, nil)
	if isStatus(err, http.StatusNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(resp.Messages) == 0 {
		return nil, false, nil
	}

	m := resp.Messages[0]
	if m.MessageText == nil || m.MessageID == nil || m.PopReceipt == nil {
		return nil, false, nil
	}

	if _, err := q.DeleteMessage(ctx, *m.MessageID, *m.PopReceipt, nil); err != nil {
		return nil, false, err
	}
	return []byte(*m.MessageText), true, nil
}

func (s *QueueStore) Peek(ctx context.Context, queueName string, max int) ([][]byte, error) {
	q := s.svc.NewQueueClient(queueName)

	n := int32(max)
	resp, err := q.PeekMessages(ctx, &azqueue.PeekMessagesOptions{NumberOfMessages: &n})
	if isStatus(err, http.StatusNotFound) {
		return [][]byte{}, nil
	}
	if err != nil {
		return nil, err
	}

	msgs := [][]byte{}
	for _, m := range resp.Messages {
		if m.MessageText == nil {
			continue
		}
		msgs = append(msgs, []byte(*m.MessageText))
	}
	return msgs, nil
}

func (s *QueueStore) Clear(ctx context.Context, queueName string) error {
	q := s.svc.NewQueueClient(queueName)

	_, err := q.ClearMessages(ctx, nil)
	if isStatus(err, http.StatusNotFound) {
		return nil
	}
	return err
}

func (s *QueueStore) ensureQueue(ctx context.Context, q *azqueue.QueueClient) error {
	_, err := q.Create(ctx, nil)
	if isStatus(err, http.StatusConflict) {
		return nil
	}
	return err
}
