package tabular

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Text renders a decoded JSON value as the text that goes into a table
// cell. Integral floats render without a trailing ".0" so numeric
// identifiers compare equal to their string forms. Nested values are
// rendered as compact JSON.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if math.IsNaN(t) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
