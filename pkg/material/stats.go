package material

import "strings"

// Stats summarises a collection for the dashboard counters.
type Stats struct {
	TotalMaterials int            `json:"totalMaterials"`
	ProjectCount   int            `json:"projectCount"`
	BySubject      map[string]int `json:"bySubject"`
}

// IsProject reports whether the record counts towards the project tally:
// its name mentions "project" or it is an archive.
func IsProject(r *Record) bool {
	if r == nil {
		return false
	}
	return strings.Contains(strings.ToLower(r.Name), "project") || r.Kind() == KindArchive
}

// Summarize computes Stats over records.
func Summarize(records []*Record) Stats {
	s := Stats{BySubject: make(map[string]int)}
	for _, r := range records {
		if r == nil {
			continue
		}
		s.TotalMaterials++
		if IsProject(r) {
			s.ProjectCount++
		}
		s.BySubject[r.Subject]++
	}
	return s
}

// Subjects lists distinct subjects in first-seen order.
func Subjects(records []*Record) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		if r == nil {
			continue
		}
		if _, ok := seen[r.Subject]; ok {
			continue
		}
		seen[r.Subject] = struct{}{}
		out = append(out, r.Subject)
	}
	return out
}
