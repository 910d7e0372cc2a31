// Package resource hands out process-local references to in-memory payloads
// so uploaded materials can be previewed before any real storage exists.
package resource

import (
	"errors"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ownedScheme prefixes every Ref created by a Registry.
const ownedScheme = "blob:"

var (
	// ErrReleased is returned when opening an owned Ref that was released or
	// never issued by this process.
	ErrReleased = errors.New("resource: handle released")
	// ErrExternal is returned when opening a Ref the registry does not own,
	// such as a stable URL.
	ErrExternal = errors.New("resource: external reference")
)

// Ref identifies a payload. Owned refs look like "blob:<uuid>"; any other
// value is external and never needs a release.
type Ref string

// Owned reports whether r was issued by a Registry.
func (r Ref) Owned() bool {
	return strings.HasPrefix(string(r), ownedScheme)
}

// External reports whether r is a non-empty reference the registry does not
// own.
func (r Ref) External() bool {
	return r != "" && !r.Owned()
}

// Blob is the content behind a live Ref.
type Blob struct {
	Ref       Ref
	MediaType string
	Data      []byte
}

// Registry tracks live payloads. It is safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	blobs map[Ref]Blob
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{blobs: make(map[Ref]Blob)}
}

// Acquire copies payload and returns a Ref valid until Release. An empty
// mediaType is sniffed from the payload and stays empty when sniffing is
// inconclusive.
func (r *Registry) Acquire(payload []byte, mediaType string) Ref {
	data := append([]byte(nil), payload...)
	if strings.TrimSpace(mediaType) == "" {
		mediaType = Sniff(data)
	}
	ref := Ref(ownedScheme + uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[ref] = Blob{Ref: ref, MediaType: mediaType, Data: data}
	return ref
}

// Sniff detects the media type of data. It returns "" for empty payloads and
// for mimetype's generic text/plain and application/octet-stream answers, which
// say nothing beyond "some bytes".
func Sniff(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	m := mimetype.Detect(data)
	if m.Is("text/plain") || m.Is("application/octet-stream") {
		return ""
	}
	return m.String()
}

// Open returns a copy of the payload behind ref.
func (r *Registry) Open(ref Ref) (Blob, error) {
	if !ref.Owned() {
		return Blob{}, ErrExternal
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blobs[ref]
	if !ok {
		return Blob{}, ErrReleased
	}
	b.Data = append([]byte(nil), b.Data...)
	return b, nil
}

// Release frees the payload behind ref. Releasing an external, unknown or
// already released ref is a no-op. It reports whether a payload was freed.
func (r *Registry) Release(ref Ref) bool {
	if !ref.Owned() {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blobs[ref]; !ok {
		return false
	}
	delete(r.blobs, ref)
	return true
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.blobs)
}
