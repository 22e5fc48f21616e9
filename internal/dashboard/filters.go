package dashboard

import (
	"net/url"
	"sort"
)

// FilterSet maps filter field names to values. Only non-empty values are
// kept, so reapplying a set reproduces the same query.
type FilterSet map[string]string

// coverageKey is handled client-side; the server has no such filter.
const coverageKey = "coverage"

func NewFilterSet(form map[string]string) FilterSet {
	f := make(FilterSet)
	for k, v := range form {
		if v != "" {
			f[k] = v
		}
	}
	return f
}

// Query renders the server-side portion of the filter set.
func (f FilterSet) Query() url.Values {
	q := url.Values{}
	for k, v := range f {
		if k == coverageKey {
			continue
		}
		q.Set(k, v)
	}
	return q
}

func (f FilterSet) Coverage() string { return f[coverageKey] }

func (f FilterSet) Empty() bool { return len(f) == 0 }

// Keys returns the filter names in stable order, for form restoration.
func (f FilterSet) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
