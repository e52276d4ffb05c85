package annotations

import (
	"fmt"
	"math"
	"sort"

	"go.opentelemetry.io/otel/attribute"
)

// convertAttrs converts a string-keyed attribute map into OpenTelemetry
// key/values in deterministic (key-sorted) order.
func convertAttrs(attributes map[string]any) []attribute.KeyValue {
	if len(attributes) == 0 {
		return nil
	}

	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kvs := make([]attribute.KeyValue, 0, len(attributes))
	for _, k := range keys {
		kvs = append(kvs, convertAttr(k, attributes[k]))
	}
	return kvs
}

func convertAttr(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case int32:
		return attribute.Int64(key, int64(v))
	case int16:
		return attribute.Int64(key, int64(v))
	case int8:
		return attribute.Int64(key, int64(v))
	case uint:
		if uint64(v) > math.MaxInt64 {
			return attribute.String(key, fmt.Sprintf("%d", v))
		}
		return attribute.Int64(key, int64(v))
	case uint32:
		return attribute.Int64(key, int64(v))
	case uint16:
		return attribute.Int64(key, int64(v))
	case uint8:
		return attribute.Int64(key, int64(v))
	case uint64:
		if v > math.MaxInt64 {
			return attribute.String(key, fmt.Sprintf("%d", v))
		}
		return attribute.Int64(key, int64(v))
	case float64:
		return attribute.Float64(key, v)
	case float32:
		return attribute.Float64(key, float64(v))
	case []string:
		return attribute.StringSlice(key, v)
	case []int:
		return attribute.IntSlice(key, v)
	case []int64:
		return attribute.Int64Slice(key, v)
	case []float64:
		return attribute.Float64Slice(key, v)
	case []bool:
		return attribute.BoolSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
