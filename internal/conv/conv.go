package conv

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// AsKey returns the canonical string form of a JSON-RPC id, integral numbers of any type share one form
func AsKey(value interface{}) string {
	switch actual := value.(type) {
	case nil:
		return ""
	case string:
		return actual
	case int:
		return strconv.FormatInt(int64(actual), 10)
	case int8:
		return strconv.FormatInt(int64(actual), 10)
	case int16:
		return strconv.FormatInt(int64(actual), 10)
	case int32:
		return strconv.FormatInt(int64(actual), 10)
	case int64:
		return strconv.FormatInt(actual, 10)
	case uint:
		return strconv.FormatUint(uint64(actual), 10)
	case uint8:
		return strconv.FormatUint(uint64(actual), 10)
	case uint16:
		return strconv.FormatUint(uint64(actual), 10)
	case uint32:
		return strconv.FormatUint(uint64(actual), 10)
	case uint64:
		return strconv.FormatUint(actual, 10)
	case float32:
		return formatFloat(float64(actual))
	case float64:
		return formatFloat(actual)
	case json.Number:
		if ret, err := actual.Int64(); err == nil {
			return strconv.FormatInt(ret, 10)
		}
		return actual.String()
	case *int:
		if actual == nil {
			return ""
		}
		return strconv.Itoa(*actual)
	}
	return fmt.Sprint(value)
}

func formatFloat(value float64) string {
	if value == math.Trunc(value) && math.Abs(value) < 1<<53 {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}
