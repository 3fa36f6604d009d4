package progress

import (
	"sort"

	"github.com/jonathan/placement-tracker/internal/catalog"
	"github.com/jonathan/placement-tracker/internal/types"
)

// OrderedKeys returns the keys of p with catalog categories first in catalog order.
func OrderedKeys(p types.StudyProgress) []string {
	keys := make([]string, 0, len(p))
	seen := make(map[string]bool, len(p))
	for _, key := range catalog.CategoryKeys() {
		if _, ok := p[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var extra []string
	for key := range p {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}
