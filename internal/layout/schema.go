package layout

import (
	"fmt"
	"sort"
	"time"
)

// Column locates a raw metric. Index 0 means the metric exists in the layout
// but has no column, so it always resolves to absent.
type Column struct {
	Index  int
	Header Match
}

// NotApplicable declares a metric that the version does not publish.
var NotApplicable = Column{}

// Version is one historical column layout.
type Version struct {
	Name          string
	EffectiveFrom time.Time
	HeaderRow     int
	Columns       map[string]Column
	// Composites that only apply while this version is active.
	Composites map[string]Composite
}

// Schema is an ordered set of versions plus composites shared by all of them.
type Schema struct {
	versions   []Version
	composites map[string]Composite
}

// NewSchema sorts versions by EffectiveFrom. Two versions may not share a start.
func NewSchema(composites map[string]Composite, versions ...Version) (*Schema, error) {
	if len(versions) == 0 {
		return nil, fmt.Errorf("layout: at least one version is required")
	}
	sorted := make([]Version, len(versions))
	copy(sorted, versions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EffectiveFrom.Before(sorted[j].EffectiveFrom)
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].EffectiveFrom.Equal(sorted[i-1].EffectiveFrom) {
			return nil, fmt.Errorf("layout: versions %q and %q share effective time %s",
				sorted[i-1].Name, sorted[i].Name, sorted[i].EffectiveFrom)
		}
	}
	if composites == nil {
		composites = map[string]Composite{}
	}
	return &Schema{versions: sorted, composites: composites}, nil
}

// MustSchema is NewSchema for package-level layout tables.
func MustSchema(composites map[string]Composite, versions ...Version) *Schema {
	s, err := NewSchema(composites, versions...)
	if err != nil {
		panic(err)
	}
	return s
}

// Versions returns the versions in ascending order.
func (s *Schema) Versions() []Version {
	out := make([]Version, len(s.versions))
	copy(out, s.versions)
	return out
}

// Active returns the version with the greatest EffectiveFrom not after ts.
func (s *Schema) Active(ts time.Time) (Version, error) {
	i := sort.Search(len(s.versions), func(i int) bool {
		return s.versions[i].EffectiveFrom.After(ts)
	})
	if i == 0 {
		return Version{}, fmt.Errorf("%w at %s", ErrNoVersion, ts.Format(time.RFC3339))
	}
	return s.versions[i-1], nil
}

// composite finds a computed metric, version-scoped entries first.
func (s *Schema) composite(v Version, metric string) (Composite, bool) {
	if c, ok := v.Composites[metric]; ok {
		return c, true
	}
	c, ok := s.composites[metric]
	return c, ok
}
