package workspace

import (
	"github.com/five82/sitelens/internal/grid"
)

// Tab identifies a detail view.
type Tab int

const (
	TabRecord Tab = iota
	TabLinks
	TabImages
	TabResources
)

// String returns the tab label.
func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabSpecs) {
		return "Record"
	}
	return tabSpecs[t].name
}

// tabSpec describes how a detail tab derives its rows from the selected
// master row.
type tabSpec struct {
	name    string
	columns []grid.ColumnDef
	rows    func(grid.Row) []grid.Row
	empty   string
}

var tabSpecs = []tabSpec{
	{
		name: "Record",
		columns: []grid.ColumnDef{
			{ID: "field", Title: "Field", MinWidth: 6, DefaultWidth: 22},
			{ID: "value", Title: "Value", MinWidth: 10, DefaultWidth: 40, Flex: true},
		},
		rows:  recordRows,
		empty: "Select a row above to see its record",
	},
	{
		name: "Links",
		columns: []grid.ColumnDef{
			{ID: "url", Title: "URL", MinWidth: 10, DefaultWidth: 40, Flex: true},
			{ID: "anchor", Title: "Anchor", MinWidth: 6, DefaultWidth: 24},
			{ID: "rel", Title: "Rel", MinWidth: 4, DefaultWidth: 10},
			{ID: "status", Title: "Status", MinWidth: 4, DefaultWidth: 6, DefaultAlign: grid.AlignRight},
		},
		rows:  fieldList("links"),
		empty: "No links",
	},
	{
		name: "Images",
		columns: []grid.ColumnDef{
			{ID: "src", Title: "Source", MinWidth: 10, DefaultWidth: 40, Flex: true, Accessor: imageSource},
			{ID: "alt", Title: "Alt text", MinWidth: 6, DefaultWidth: 30},
			{ID: "size", Title: "Size", MinWidth: 4, DefaultWidth: 8, DefaultAlign: grid.AlignRight},
		},
		rows:  fieldList("images"),
		empty: "No images",
	},
	{
		name: "Resources",
		columns: []grid.ColumnDef{
			{ID: "url", Title: "URL", MinWidth: 10, DefaultWidth: 40, Flex: true},
			{ID: "type", Title: "Type", MinWidth: 4, DefaultWidth: 11},
			{ID: "size", Title: "Size", MinWidth: 4, DefaultWidth: 8, DefaultAlign: grid.AlignRight},
		},
		rows:  resourceRows,
		empty: "No scripts or stylesheets",
	},
}

// recordRows lists every field of the row as a field/value pair.
func recordRows(row grid.Row) []grid.Row {
	if row == nil {
		return nil
	}
	names := row.Fields()
	items := make([]map[string]any, 0, len(names))
	for _, name := range names {
		items = append(items, map[string]any{"field": name, "value": row.Field(name)})
	}
	return grid.RowsFromMaps(items, "field")
}

func fieldList(field string) func(grid.Row) []grid.Row {
	return func(row grid.Row) []grid.Row {
		if row == nil {
			return nil
		}
		return grid.RowsFromMaps(listItems(row.Field(field), ""), "")
	}
}

func resourceRows(row grid.Row) []grid.Row {
	if row == nil {
		return nil
	}
	var items []map[string]any
	items = append(items, listItems(row.Field("scripts"), "script")...)
	items = append(items, listItems(row.Field("stylesheets"), "stylesheet")...)
	items = append(items, listItems(row.Field("resources"), "")...)
	return grid.RowsFromMaps(items, "")
}

// listItems normalizes a nested list field. Plain strings become {"url": s}.
// When kind is set it fills a missing "type".
func listItems(v any, kind string) []map[string]any {
	var raw []any
	switch val := v.(type) {
	case []any:
		raw = val
	case []map[string]any:
		for _, item := range val {
			raw = append(raw, item)
		}
	case []string:
		for _, item := range val {
			raw = append(raw, item)
		}
	default:
		return nil
	}

	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		var m map[string]any
		switch val := item.(type) {
		case map[string]any:
			m = make(map[string]any, len(val)+1)
			for k, x := range val {
				m[k] = x
			}
		case string:
			m = map[string]any{"url": val}
		case nil:
			continue
		default:
			m = map[string]any{"url": grid.Stringify(val)}
		}
		if kind != "" {
			if _, ok := m["type"]; !ok {
				m["type"] = kind
			}
		}
		out = append(out, m)
	}
	return out
}

func imageSource(row grid.Row) any {
	if v := row.Field("src"); v != nil {
		return v
	}
	return row.Field("url")
}
