package corpus

import (
	"fmt"
	"sync"
)

// DefaultMinUsableText is the minimum combined description+body length
// (in bytes, before normalization) for an item to enter the usable pool.
const DefaultMinUsableText = 80

// PoolOptions configures pool construction.
type PoolOptions struct {
	// MinUsableText excludes items whose combined description and body
	// length is below this many bytes. Default: DefaultMinUsableText.
	MinUsableText int

	// Tokenizer used to build item token sets. If nil, a standard
	// tokenizer is created.
	Tokenizer *Tokenizer
}

// Excluded records why an item was left out of the usable pool.
type Excluded struct {
	ID     string
	Reason string
}

// Pool is the usable item pool plus category and tag indexes. Items are
// immutable once the pool is built; lookups are safe for concurrent use.
type Pool struct {
	mu         sync.RWMutex
	items      []*Item
	byID       map[string]*Item
	byCategory map[string][]*Item
	byTag      map[string][]*Item
	excluded   []Excluded
}

// NewPool filters raw items to the usable pool, derives missing
// categories, attaches token sets, and builds the category/tag indexes.
// Items lacking an id, or with insufficient text, are excluded with a
// recorded reason rather than failing the whole load.
func NewPool(items []Item, opts PoolOptions) (*Pool, error) {
	minText := opts.MinUsableText
	if minText <= 0 {
		minText = DefaultMinUsableText
	}
	tok := opts.Tokenizer
	if tok == nil {
		var err error
		tok, err = NewTokenizer()
		if err != nil {
			return nil, err
		}
	}

	p := &Pool{
		byID:       make(map[string]*Item),
		byCategory: make(map[string][]*Item),
		byTag:      make(map[string][]*Item),
	}

	for i := range items {
		it := items[i] // copy; the caller's slice stays untouched
		switch {
		case it.ID == "":
			p.excluded = append(p.excluded, Excluded{ID: fmt.Sprintf("item[%d]", i), Reason: "missing id"})
			continue
		case it.Description == "" && it.Body == "":
			p.excluded = append(p.excluded, Excluded{ID: it.ID, Reason: "no usable text"})
			continue
		case len(it.Description)+len(it.Body) < minText:
			p.excluded = append(p.excluded, Excluded{ID: it.ID, Reason: fmt.Sprintf("text below %d bytes", minText)})
			continue
		}
		if _, dup := p.byID[it.ID]; dup {
			p.excluded = append(p.excluded, Excluded{ID: it.ID, Reason: "duplicate id"})
			continue
		}

		it.prepare(tok)
		p.items = append(p.items, &it)
		p.byID[it.ID] = &it
		p.byCategory[it.Category] = append(p.byCategory[it.Category], &it)
		for _, tag := range it.Tags {
			p.byTag[tag] = append(p.byTag[tag], &it)
		}
	}

	return p, nil
}

// Len returns the usable pool size.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}

// Items returns the usable items in load order. The returned slice is
// shared; callers must not mutate it.
func (p *Pool) Items() []*Item {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.items
}

// Get returns the item with the given id, or nil.
func (p *Pool) Get(id string) *Item {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.byID[id]
}

// SameCategory returns every other usable item sharing the anchor's
// category, in load order.
func (p *Pool) SameCategory(anchor *Item) []*Item {
	p.mu.RLock()
	defer p.mu.RUnlock()
	group := p.byCategory[anchor.Category]
	out := make([]*Item, 0, len(group))
	for _, it := range group {
		if it.ID != anchor.ID {
			out = append(out, it)
		}
	}
	return out
}

// TagOverlap returns every other usable item sharing at least one tag
// with the anchor, deduplicated, in load order of first match.
func (p *Pool) TagOverlap(anchor *Item) []*Item {
	p.mu.RLock()
	defer p.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []*Item
	for _, tag := range anchor.Tags {
		for _, it := range p.byTag[tag] {
			if it.ID == anchor.ID {
				continue
			}
			if _, dup := seen[it.ID]; dup {
				continue
			}
			seen[it.ID] = struct{}{}
			out = append(out, it)
		}
	}
	return out
}

// ExcludedItems returns the items filtered out during pool construction.
func (p *Pool) ExcludedItems() []Excluded {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.excluded
}
