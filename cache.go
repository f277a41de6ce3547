package folio

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/eringen/folio/search"
)

// SearchCache memoises search results by normalised query. The catalog never
// changes after load, so an entry never goes stale.
type SearchCache struct {
	index *search.Index
	lru   *lru.Cache[string, search.Results]
}

// NewSearchCache creates a SearchCache over index holding up to size result sets.
func NewSearchCache(index *search.Index, size int) (*SearchCache, error) {
	c, err := lru.New[string, search.Results](size)
	if err != nil {
		return nil, err
	}
	return &SearchCache{index: index, lru: c}, nil
}

// Search returns the results for q, computing them on a miss. Blank queries
// bypass the cache. Returned results are shared and must not be modified.
func (c *SearchCache) Search(q string) search.Results {
	nq := search.Normalize(q)
	if nq == "" {
		return c.index.Search(nq)
	}
	if r, ok := c.lru.Get(nq); ok {
		return r
	}
	r := c.index.Search(nq)
	c.lru.Add(nq, r)
	return r
}

// Len returns the number of cached result sets.
func (c *SearchCache) Len() int {
	return c.lru.Len()
}
