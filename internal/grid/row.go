package grid

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Row is an application-defined record. The grid only reads it.
type Row interface {
	// Key returns a stable identity for the row.
	Key() string
	// Field returns the named field, or nil when it is missing.
	Field(name string) any
	// Fields lists the field names in a stable order.
	Fields() []string
}

// MapRow is a Row backed by a decoded JSON/YAML object.
type MapRow struct {
	key    string
	values map[string]any
	names  []string
}

// NewMapRow builds a MapRow. The key is read from keyField; when that field is
// missing the fallback is used instead.
func NewMapRow(values map[string]any, keyField, fallback string) MapRow {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	key := strings.TrimSpace(Stringify(values[keyField]))
	if key == "" {
		key = fallback
	}
	return MapRow{key: key, values: values, names: names}
}

// Key implements Row.
func (r MapRow) Key() string { return r.key }

// Field implements Row.
func (r MapRow) Field(name string) any {
	if r.values == nil {
		return nil
	}
	return r.values[name]
}

// Fields implements Row.
func (r MapRow) Fields() []string { return r.names }

// RowsFromMaps converts decoded objects into rows, keying each by keyField and
// falling back to its position.
func RowsFromMaps(items []map[string]any, keyField string) []Row {
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		rows = append(rows, NewMapRow(item, keyField, "#"+strconv.Itoa(i+1)))
	}
	return rows
}

// Stringify renders a field value for display and matching. Missing values
// render as the empty string.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; keep integers free of exponent noise.
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, Stringify(item))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if href, ok := val["url"]; ok {
			return Stringify(href)
		}
		return fmt.Sprint(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
