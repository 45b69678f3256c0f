package relevance

import (
	"sort"

	"github.com/jonwraymond/evalcorpus/corpus"
)

// Tier identifies one relevance band.
type Tier int

const (
	TierHigh Tier = iota
	TierMedium
	TierLow
)

// String returns the tier name used in output fields and logs.
func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return "unknown"
	}
}

// Widening stages accepted by [Classifier.Widened]. StageStrict is what
// [Classifier.Classify] applies.
const (
	StageStrict = iota
	StageRelaxedThresholds
	StageIgnoreCategory
	StageFullPool

	// MaxStage is the widest stage; beyond it there is nothing left to
	// relax.
	MaxStage = StageFullPool
)

// Thresholds are the similarity cut points for band membership. Zero
// values fall back to the defaults noted per field.
type Thresholds struct {
	High      float64 // high band floor, default 0.30
	MediumMin float64 // medium band floor, default 0.06
	MediumMax float64 // medium band ceiling (exclusive), default 0.30
	LowMax    float64 // low band ceiling (exclusive), default 0.02

	// Relaxed values used at StageRelaxedThresholds.
	WideHigh      float64 // default 0.15
	WideMediumMin float64 // default 0.03
	WideMediumMax float64 // default 0.45
	WideLowMax    float64 // default 0.06
}

// DefaultThresholds returns the recommended cut points.
func DefaultThresholds() Thresholds {
	return Thresholds{
		High:          0.30,
		MediumMin:     0.06,
		MediumMax:     0.30,
		LowMax:        0.02,
		WideHigh:      0.15,
		WideMediumMin: 0.03,
		WideMediumMax: 0.45,
		WideLowMax:    0.06,
	}
}

func (t Thresholds) withDefaults() Thresholds {
	d := DefaultThresholds()
	if t.High == 0 {
		t.High = d.High
	}
	if t.MediumMin == 0 {
		t.MediumMin = d.MediumMin
	}
	if t.MediumMax == 0 {
		t.MediumMax = d.MediumMax
	}
	if t.LowMax == 0 {
		t.LowMax = d.LowMax
	}
	if t.WideHigh == 0 {
		t.WideHigh = d.WideHigh
	}
	if t.WideMediumMin == 0 {
		t.WideMediumMin = d.WideMediumMin
	}
	if t.WideMediumMax == 0 {
		t.WideMediumMax = d.WideMediumMax
	}
	if t.WideLowMax == 0 {
		t.WideLowMax = d.WideLowMax
	}
	return t
}

// Bands holds the strict-rule candidate lists for one anchor, ordered
// best-first within each tier.
type Bands struct {
	High   []*corpus.Item
	Medium []*corpus.Item
	Low    []*corpus.Item
}

// ForTier returns the candidate list for the given tier.
func (b Bands) ForTier(tier Tier) []*corpus.Item {
	switch tier {
	case TierHigh:
		return b.High
	case TierMedium:
		return b.Medium
	case TierLow:
		return b.Low
	default:
		return nil
	}
}

// Classifier assigns pool items to relevance bands around an anchor.
type Classifier struct {
	pool       *corpus.Pool
	thresholds Thresholds
}

// NewClassifier builds a classifier over the usable pool. Zero-valued
// threshold fields take their documented defaults.
func NewClassifier(pool *corpus.Pool, th Thresholds) *Classifier {
	return &Classifier{pool: pool, thresholds: th.withDefaults()}
}

// Thresholds returns the effective cut points.
func (c *Classifier) Thresholds() Thresholds { return c.thresholds }

// scored pairs a candidate with its precomputed anchor relationship.
type scored struct {
	item    *corpus.Item
	sim     float64
	shared  int
	sameCat bool
}

func (c *Classifier) score(anchor *corpus.Item) []scored {
	items := c.pool.Items()
	out := make([]scored, 0, len(items))
	for _, it := range items {
		if it.ID == anchor.ID {
			continue
		}
		out = append(out, scored{
			item:    it,
			sim:     Jaccard(anchor.Tokens(), it.Tokens()),
			shared:  corpus.SharedTags(anchor, it),
			sameCat: it.Category == anchor.Category,
		})
	}
	return out
}

// Classify partitions the pool into strict-rule bands for the anchor.
// An item qualifying for more than one band lands in the highest. Lists
// are ordered by similarity (descending for high and medium, ascending
// for low), tie-broken by item id.
func (c *Classifier) Classify(anchor *corpus.Item) Bands {
	th := c.thresholds
	var high, medium, low []scored

	for _, s := range c.score(anchor) {
		switch {
		case s.sameCat || s.shared >= 2 || s.sim >= th.High:
			high = append(high, s)
		case (!s.sameCat && s.shared == 1) ||
			(s.shared == 0 && s.sim >= th.MediumMin && s.sim < th.MediumMax):
			medium = append(medium, s)
		case !s.sameCat && s.shared == 0 && s.sim < th.LowMax:
			low = append(low, s)
		}
	}

	return Bands{
		High:   sortAndStrip(high, false),
		Medium: sortAndStrip(medium, false),
		Low:    sortAndStrip(low, true),
	}
}

// Widened returns the candidate list for tier at a widening stage.
// Stage StageStrict matches Classify's list for the tier. Each later
// stage is a superset in intent but is recomputed from the full pool;
// callers are expected to skip items they have already consumed.
func (c *Classifier) Widened(anchor *corpus.Item, tier Tier, stage int) []*corpus.Item {
	if stage <= StageStrict {
		return c.Classify(anchor).ForTier(tier)
	}
	if stage > MaxStage {
		return nil
	}

	th := c.thresholds
	all := c.score(anchor)
	var keep []scored

	switch stage {
	case StageRelaxedThresholds:
		for _, s := range all {
			switch tier {
			case TierHigh:
				if s.sameCat || s.shared >= 2 || s.sim >= th.WideHigh {
					keep = append(keep, s)
				}
			case TierMedium:
				if (!s.sameCat && s.shared == 1) ||
					(s.shared == 0 && s.sim >= th.WideMediumMin && s.sim < th.WideMediumMax) {
					keep = append(keep, s)
				}
			case TierLow:
				if !s.sameCat && s.shared == 0 && s.sim < th.WideLowMax {
					keep = append(keep, s)
				}
			}
		}
	case StageIgnoreCategory:
		for _, s := range all {
			switch tier {
			case TierHigh:
				if s.shared >= 1 || s.sim >= th.WideHigh {
					keep = append(keep, s)
				}
			case TierMedium:
				if s.sim >= th.WideMediumMin && s.sim < th.WideMediumMax {
					keep = append(keep, s)
				}
			case TierLow:
				if s.sim < th.WideLowMax {
					keep = append(keep, s)
				}
			}
		}
	case StageFullPool:
		keep = all
	}

	return sortAndStrip(keep, tier == TierLow)
}

// sortAndStrip orders candidates by similarity and returns the bare
// items. ascending=true puts the least similar first (the low band's
// preference).
func sortAndStrip(cands []scored, ascending bool) []*corpus.Item {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].sim != cands[j].sim {
			if ascending {
				return cands[i].sim < cands[j].sim
			}
			return cands[i].sim > cands[j].sim
		}
		return cands[i].item.ID < cands[j].item.ID
	})
	out := make([]*corpus.Item, len(cands))
	for i, s := range cands {
		out[i] = s.item
	}
	return out
}
