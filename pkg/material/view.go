package material

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SubjectAll disables subject filtering.
const SubjectAll = "all"

// TypeFilter narrows records by filename suffix.
type TypeFilter string

const (
	TypeAll  TypeFilter = "all"
	TypePDF  TypeFilter = "pdf"
	TypeDocx TypeFilter = "docx"
	TypeZip  TypeFilter = "zip"
)

// ParseTypeFilter converts user input to a TypeFilter. Empty means all.
func ParseTypeFilter(raw string) (TypeFilter, error) {
	t := TypeFilter(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case "":
		return TypeAll, nil
	case TypeAll, TypePDF, TypeDocx, TypeZip:
		return t, nil
	case "doc":
		return TypeDocx, nil
	default:
		return TypeAll, fmt.Errorf("material: unknown type filter %q", raw)
	}
}

// SortOrder selects the ordering of a view.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortName   SortOrder = "name"
)

// ParseSortOrder converts user input to a SortOrder. Empty means newest.
func ParseSortOrder(raw string) (SortOrder, error) {
	switch s := strings.ToLower(strings.TrimSpace(raw)); s {
	case "", "new", string(SortNewest):
		return SortNewest, nil
	case "old", string(SortOldest):
		return SortOldest, nil
	case string(SortName):
		return SortName, nil
	default:
		return SortNewest, fmt.Errorf("material: unknown sort order %q", raw)
	}
}

// Criteria describes a derived view. The zero value shows everything,
// newest first.
type Criteria struct {
	Subject string
	Type    TypeFilter
	Query   string
	Sort    SortOrder
}

// Match reports whether r passes the subject, type and search filters.
func (c Criteria) Match(r *Record) bool {
	if r == nil {
		return false
	}
	if c.Subject != "" && c.Subject != SubjectAll && r.Subject != c.Subject {
		return false
	}
	if !matchesType(c.Type, r.Name) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(c.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Subject), q) ||
		strings.Contains(strings.ToLower(r.Uploader), q)
}

// Type filtering looks at the filename only; contents are never inspected.
func matchesType(t TypeFilter, name string) bool {
	lower := strings.ToLower(name)
	switch t {
	case "", TypeAll:
		return true
	case TypePDF:
		return strings.HasSuffix(lower, ".pdf")
	case TypeDocx:
		return strings.HasSuffix(lower, ".docx") || strings.HasSuffix(lower, ".doc")
	case TypeZip:
		return strings.HasSuffix(lower, ".zip")
	default:
		return false
	}
}

// View filters then sorts records. It never mutates its input and returns a
// new slice sharing the record pointers.
func View(records []*Record, c Criteria) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if c.Match(r) {
			out = append(out, r)
		}
	}

	switch c.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortName:
		col := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}
