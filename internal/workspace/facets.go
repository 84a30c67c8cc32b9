package workspace

import (
	"strings"

	"github.com/five82/sitelens/internal/grid"
)

// DefaultFacets returns the status-class and content-type facets cycled on
// the master grid.
func DefaultFacets() []grid.Facet {
	return []grid.Facet{
		statusFacet("2xx", '2'),
		statusFacet("3xx", '3'),
		statusFacet("4xx", '4'),
		statusFacet("5xx", '5'),
		typeFacet("HTML", "html"),
		typeFacet("Images", "image/"),
		typeFacet("JS", "javascript"),
		typeFacet("CSS", "css"),
	}
}

func statusFacet(label string, class byte) grid.Facet {
	return grid.Facet{
		Label: label,
		Match: func(row grid.Row) bool {
			s := strings.TrimSpace(grid.Stringify(row.Field("status")))
			return len(s) == 3 && s[0] == class
		},
	}
}

func typeFacet(label, needle string) grid.Facet {
	return grid.Facet{
		Label: label,
		Match: func(row grid.Row) bool {
			ct := strings.ToLower(grid.Stringify(row.Field("content_type")))
			return strings.Contains(ct, needle)
		},
	}
}
