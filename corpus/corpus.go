package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonwraymond/evalcorpus/textnorm"
)

// Item is one corpus entry. Description and Body carry the raw text as
// fetched; normalized forms are computed when the item joins a Pool.
type Item struct {
	ID          string   `json:"id"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Body        string   `json:"body,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	normDescription string
	normBody        string
	tokens          TokenSet
	tagSet          map[string]struct{}
}

// NormalizedDescription returns the item's description after text
// normalization. Empty until the item joins a Pool.
func (it *Item) NormalizedDescription() string { return it.normDescription }

// NormalizedBody returns the item's body after text normalization.
// Empty until the item joins a Pool.
func (it *Item) NormalizedBody() string { return it.normBody }

// CombinedText returns the normalized description and body joined by a
// single space.
func (it *Item) CombinedText() string {
	switch {
	case it.normDescription == "":
		return it.normBody
	case it.normBody == "":
		return it.normDescription
	default:
		return it.normDescription + " " + it.normBody
	}
}

// Tokens returns the item's token set. Nil until the item joins a Pool.
func (it *Item) Tokens() TokenSet { return it.tokens }

// SharedTags counts normalized tags present on both items.
func SharedTags(a, b *Item) int {
	if len(a.tagSet) == 0 || len(b.tagSet) == 0 {
		return 0
	}
	small, large := a.tagSet, b.tagSet
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for tag := range small {
		if _, ok := large[tag]; ok {
			n++
		}
	}
	return n
}

// NormalizeTags lowercases and trims tags, dropping empties and
// duplicates. Order of first occurrence is preserved.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// Load reads a JSON array of items from path.
func Load(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a JSON array of items from r.
func Decode(r io.Reader) ([]Item, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	return items, nil
}

// categoryFromID derives a category from a qualified id such as
// "hashicorp/consul" (the owning org). Unqualified ids map to the
// default category.
func categoryFromID(id string) string {
	if i := strings.IndexByte(id, '/'); i > 0 {
		return id[:i]
	}
	return "uncategorized"
}

// prepare computes the derived, cached fields on an item.
func (it *Item) prepare(tok *Tokenizer) {
	if it.Category == "" {
		it.Category = categoryFromID(it.ID)
	}
	it.Tags = NormalizeTags(it.Tags)
	it.normDescription = textnorm.Normalize(it.Description)
	it.normBody = textnorm.Normalize(it.Body)

	it.tagSet = make(map[string]struct{}, len(it.Tags))
	for _, tag := range it.Tags {
		it.tagSet[tag] = struct{}{}
	}

	text := it.CombinedText()
	if len(it.Tags) > 0 {
		text += " " + strings.Join(it.Tags, " ")
	}
	it.tokens = tok.Tokenize(text)
}
