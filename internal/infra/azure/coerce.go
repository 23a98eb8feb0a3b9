package azure

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
)

// 寄せ変換。数値が文字列で入っている等、古いレコードの型揺れを吸収する。
// 解釈できない値はゼロ値に落とす。

func coerceString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

func coerceFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case aztables.EDMInt64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceInt(v any) int {
	switch x := v.(type) {
	case int32:
		return int(x)
	case int64:
		return int(x)
	case aztables.EDMInt64:
		return int(x)
	case float64:
		return int(x)
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			// "12.0"のような小数表記も拾う
			f, ferr := x.Float64()
			if ferr != nil {
				return 0
			}
			return int(f)
		}
		return int(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func coerceBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(strings.ToLower(x)))
		if err != nil {
			return false
		}
		return b
	default:
		return false
	}
}

func coerceTime(v any) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x
	case aztables.EDMDateTime:
		return time.Time(x)
	case string:
		t, err := time.Parse(time.RFC3339, x)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}
