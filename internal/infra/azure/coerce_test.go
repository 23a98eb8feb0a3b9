package azure

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/stretchr/testify/assert"
)

func TestCoerceFloat(t *testing.T) {
	assert.Equal(t, 12.5, coerceFloat(12.5))
	assert.Equal(t, 12.5, coerceFloat("12.5"))
	assert.Equal(t, 12.5, coerceFloat(" 12.5 "))
	assert.Equal(t, 3.0, coerceFloat(int32(3)))
	assert.Equal(t, 3.0, coerceFloat(aztables.EDMInt64(3)))
	assert.Equal(t, 12.5, coerceFloat(json.Number("12.5")))
	assert.Equal(t, 0.0, coerceFloat("abc"))
	assert.Equal(t, 0.0, coerceFloat(nil))
}

func TestCoerceInt(t *testing.T) {
	assert.Equal(t, 7, coerceInt(int32(7)))
	assert.Equal(t, 7, coerceInt(int64(7)))
	assert.Equal(t, 7, coerceInt(aztables.EDMInt64(7)))
	assert.Equal(t, 7, coerceInt(7.0))
	assert.Equal(t, 7, coerceInt("7"))
	assert.Equal(t, 12, coerceInt(json.Number("12.0")))
	assert.Equal(t, 0, coerceInt("7.5点"))
	assert.Equal(t, 0, coerceInt(nil))
}

func TestCoerceBool(t *testing.T) {
	assert.True(t, coerceBool(true))
	assert.True(t, coerceBool("true"))
	assert.True(t, coerceBool(" TRUE "))
	assert.True(t, coerceBool("1"))
	assert.False(t, coerceBool("no"))
	assert.False(t, coerceBool(nil))
	assert.False(t, coerceBool(1)) // 数値のboolは受けない
}

func TestCoerceTime(t *testing.T) {
	want := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, want, coerceTime(want))
	assert.Equal(t, want, coerceTime(aztables.EDMDateTime(want)))
	assert.Equal(t, want, coerceTime("2024-06-01T12:00:00Z"))
	assert.True(t, coerceTime("yesterday").IsZero())
	assert.True(t, coerceTime(nil).IsZero())
}

// 文字列混じりの古いレコードもゼロ値落ちせずに読める
func TestProductFromProperties_MixedTypes(t *testing.T) {
	p := productFromProperties("row-1", map[string]any{
		"ProductName":   "Widget",
		"Price":         "19.99",             // 文字列価格
		"StockQuantity": aztables.EDMInt64(3), // int64在庫
		"IsAvailable":   "true",              // 文字列bool
		"Category":      "tools",
	})

	assert.Equal(t, "row-1", p.ID)
	assert.Equal(t, "Widget", p.ProductName)
	assert.Equal(t, 19.99, p.Price)
	assert.Equal(t, 3, p.StockQuantity)
	assert.True(t, p.IsAvailable)
	assert.Equal(t, "tools", p.Category)

	// 無い属性はゼロ値
	assert.Empty(t, p.Description)
	assert.Empty(t, p.ImageURL)
	assert.True(t, p.CreatedDate.IsZero())
}

func TestProductFromProperties_GarbageFallsToZero(t *testing.T) {
	p := productFromProperties("row-2", map[string]any{
		"Price":         "not a number",
		"StockQuantity": "many",
		"IsAvailable":   "perhaps",
	})

	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, 0, p.StockQuantity)
	assert.False(t, p.IsAvailable)
}
