package grid

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// normalize lower-cases s and strips hyphens so "Meta-Description" matches
// "metadescription".
func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "-", "")
}

// matches reports whether any field of row contains term once both sides
// are normalized. term must already be normalized.
func matches(row Row, term string) bool {
	if row == nil {
		return false
	}
	for _, name := range row.Fields() {
		if strings.Contains(normalize(Stringify(row.Field(name))), term) {
			return true
		}
	}
	return false
}

// Filter returns the rows where any field contains term. Case and hyphens
// are ignored; whitespace is significant. An empty term returns rows
// unchanged.
func Filter(rows []Row, term string) []Row {
	needle := normalize(term)
	if needle == "" {
		return rows
	}
	out := make([]Row, 0, len(rows)/4)
	for _, row := range rows {
		if matches(row, needle) {
			out = append(out, row)
		}
	}
	return out
}

// Facet narrows rows by status or type. At most one facet is active.
type Facet struct {
	Label string
	Match func(Row) bool
}

// ApplyFacet keeps rows accepted by f. A nil matcher keeps everything.
func ApplyFacet(rows []Row, f *Facet) []Row {
	if f == nil || f.Match == nil {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if f.Match(row) {
			out = append(out, row)
		}
	}
	return out
}

const pipelineCacheSize = 16

type pipelineKey struct {
	generation uint64
	term       string
	facet      int
}

// Pipeline memoizes Filter+ApplyFacet on (rows generation, term, facet
// index). A facet index of -1 means no facet.
// Callers bump the generation whenever a fresh row slice arrives.
type Pipeline struct {
	cache  *lru.Cache[pipelineKey, []Row]
	passes int
}

// NewPipeline builds a Pipeline with a small result cache, so flipping back
// to a recent term or facet does not re-scan the rows.
func NewPipeline() *Pipeline {
	cache, _ := lru.New[pipelineKey, []Row](pipelineCacheSize)
	return &Pipeline{cache: cache}
}

// Run returns the filtered rows, scanning only on a cache miss.
func (p *Pipeline) Run(rows []Row, generation uint64, term string, facets []Facet, facetIdx int) []Row {
	var facet *Facet
	if facetIdx >= 0 && facetIdx < len(facets) {
		facet = &facets[facetIdx]
	} else {
		facetIdx = -1
	}
	key := pipelineKey{generation: generation, term: normalize(term), facet: facetIdx}
	if out, ok := p.cache.Get(key); ok {
		return out
	}
	p.passes++
	out := ApplyFacet(Filter(rows, term), facet)
	p.cache.Add(key, out)
	return out
}

// Passes reports how many times Run actually scanned rows.
func (p *Pipeline) Passes() int { return p.passes }

// Purge drops memoized results.
func (p *Pipeline) Purge() { p.cache.Purge() }
