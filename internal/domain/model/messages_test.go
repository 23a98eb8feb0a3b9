package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// キューのペイロードはcamelCaseのJSONで往復できる
func TestOrderMessageRoundTrip(t *testing.T) {
	msg := model.OrderMessage{
		OrderID:     "42",
		CustomerID:  "7",
		ProductIDs:  []string{"p1", "p2"},
		TotalAmount: 38.0,
		OrderDate:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Status:      "PENDING",
		Message:     "order 42 created",
	}

	b, err := json.Marshal(msg)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Contains(t, m, "orderId")
	assert.Contains(t, m, "customerId")
	assert.Contains(t, m, "productIds")
	assert.Contains(t, m, "totalAmount")
	assert.Contains(t, m, "orderDate")

	var back model.OrderMessage
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, msg, back)
}

func TestInventoryMessageFieldNames(t *testing.T) {
	msg := model.InventoryMessage{
		ProductID: "p1",
		Action:    "restock",
		Quantity:  10,
		Message:   "weekly restock",
		Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	b, err := json.Marshal(msg)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Contains(t, m, "productId")
	assert.Contains(t, m, "action")
	assert.Contains(t, m, "quantity")
	assert.Contains(t, m, "timestamp")
}

func TestImageProcessingMessageFieldNames(t *testing.T) {
	msg := model.ImageProcessingMessage{
		ImageName:      "cat.png",
		ImageURL:       "https://example/multimedia/images/x_cat.png",
		ProcessingType: "thumbnail",
		Status:         "pending",
		Timestamp:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	b, err := json.Marshal(msg)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Contains(t, m, "imageName")
	assert.Contains(t, m, "imageUrl")
	assert.Contains(t, m, "processingType")
}
