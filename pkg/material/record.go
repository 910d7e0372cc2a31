// Package material models uploaded classroom materials and the derived,
// filtered views over them.
package material

import (
	"strings"
	"time"

	"tableflip.dev/eduhub/pkg/resource"
)

const (
	// DefaultSubject is applied when an upload names no subject.
	DefaultSubject = "Unspecified"
	// DefaultUploader is applied when an upload names no uploader.
	DefaultUploader = "Anonymous"
	// DefaultMediaType is applied when an upload carries no media type.
	DefaultMediaType = "application/octet-stream"
)

// Record is one cataloged material. Records are never edited after creation.
type Record struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	MediaType string       `json:"type"`
	Subject   string       `json:"subject"`
	Uploader  string       `json:"uploader"`
	CreatedAt time.Time    `json:"createdAt"`
	SizeBytes int64        `json:"size"`
	Resource  resource.Ref `json:"resource,omitempty"`
}

// Fields are the caller supplied attributes of a new record.
type Fields struct {
	Name      string
	MediaType string
	Subject   string
	Uploader  string
	SizeBytes int64
	Resource  resource.Ref
}

// New builds a record, applying defaults for absent optional fields.
func New(id string, f Fields, now time.Time) *Record {
	r := &Record{
		ID:        id,
		Name:      f.Name,
		MediaType: f.MediaType,
		Subject:   f.Subject,
		Uploader:  f.Uploader,
		CreatedAt: now,
		SizeBytes: f.SizeBytes,
		Resource:  f.Resource,
	}
	r.applyDefaults()
	return r
}

func (r *Record) applyDefaults() {
	if strings.TrimSpace(r.MediaType) == "" {
		r.MediaType = DefaultMediaType
	}
	if strings.TrimSpace(r.Subject) == "" {
		r.Subject = DefaultSubject
	}
	if strings.TrimSpace(r.Uploader) == "" {
		r.Uploader = DefaultUploader
	}
	if r.SizeBytes < 0 {
		r.SizeBytes = 0
	}
}

// Kind classifies the record for icons and stats.
func (r *Record) Kind() Kind {
	return KindOf(r.MediaType, r.Name)
}

// Clone returns a copy of r.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}
