package course

import (
	"sort"
	"strings"

	"github.com/afthonios/catalog/core"
)

// Apply filters and orders courses in memory, the way a repository without query support would.
func Apply(courses []Course, filter QueryFilter) []Course {
	search := strings.ToLower(filter.Search)
	res := make([]Course, 0, len(courses))
	for _, c := range courses {
		if filter.Locale != "" && !strings.EqualFold(c.Locale, filter.Locale) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Slug), search) {
			continue
		}
		res = append(res, c)
	}
	if len(filter.Orderings) > 0 {
		sort.SliceStable(res, func(i, j int) bool {
			return less(res[i], res[j], filter.Orderings)
		})
	}
	return res
}

func less(a, b Course, ords []core.Ordering) bool {
	for _, ord := range ords {
		va, vb := fieldValue(a, ord.Field), fieldValue(b, ord.Field)
		if va == vb {
			continue
		}
		if ord.Ascending {
			return va < vb
		}
		return va > vb
	}
	return false
}

func fieldValue(c Course, field string) string {
	switch strings.ToLower(field) {
	case FieldID:
		return c.ID
	case FieldSlug:
		return c.Slug
	case FieldTitle:
		return strings.ToLower(c.Title)
	case FieldUpdated:
		return c.DateUpdated
	default:
		return ""
	}
}
