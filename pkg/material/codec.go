package material

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// MarshalList serialises records in order. Owned resource refs are process
// local and are dropped; external refs are kept.
func MarshalList(records []*Record) ([]byte, error) {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		cp := r.Clone()
		if cp.Resource.Owned() {
			cp.Resource = ""
		}
		out = append(out, cp)
	}
	return json.Marshal(out)
}

// UnmarshalList deserialises records and upgrades entries written without an
// id or with blank optional fields.
func UnmarshalList(data []byte) ([]*Record, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return []*Record{}, nil
	}
	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if r.Resource.Owned() {
			r.Resource = ""
		}
		r.applyDefaults()
		out = append(out, r)
	}
	return out, nil
}
