package material

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is a coarse classification used for icons and stats.
type Kind string

const (
	KindPDF     Kind = "pdf"
	KindArchive Kind = "archive"
	KindWord    Kind = "word"
	KindImage   Kind = "image"
	KindGeneric Kind = "file"
)

var imageName = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|svg)$`)

// KindOf classifies by media type and filename; the first match wins in the
// order pdf, archive, word, image.
func KindOf(mediaType, name string) Kind {
	mt := strings.ToLower(mediaType)
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(mt, "pdf") || strings.HasSuffix(lower, ".pdf"):
		return KindPDF
	case strings.Contains(mt, "zip") || strings.HasSuffix(lower, ".zip"):
		return KindArchive
	case strings.Contains(mt, "officedocument") || strings.Contains(mt, "msword") ||
		strings.HasSuffix(lower, ".docx") || strings.HasSuffix(lower, ".doc"):
		return KindWord
	case strings.HasPrefix(mt, "image") || imageName.MatchString(name):
		return KindImage
	default:
		return KindGeneric
	}
}

// PreviewKind says how a material can be shown inline.
type PreviewKind string

const (
	PreviewImage       PreviewKind = "image"
	PreviewDocument    PreviewKind = "document"
	PreviewUnavailable PreviewKind = "unavailable"
)

// PreviewKindOf decides the presentation. Images are checked before PDFs.
func PreviewKindOf(mediaType, name string) PreviewKind {
	mt := strings.ToLower(mediaType)
	switch {
	case strings.Contains(mt, "image") || imageName.MatchString(name):
		return PreviewImage
	case strings.Contains(mt, "pdf") || strings.HasSuffix(strings.ToLower(name), ".pdf"):
		return PreviewDocument
	default:
		return PreviewUnavailable
	}
}

// Preview is the presentation of one record. Exactly one of Data or URL is
// set for previewable kinds; neither is set for PreviewUnavailable.
type Preview struct {
	Record    *Record
	Kind      PreviewKind
	MediaType string
	Data      []byte
	URL       string
	Message   string
}

// UnavailableMessage is the fallback text when no inline preview exists.
func UnavailableMessage(name string) string {
	return fmt.Sprintf("Preview not available for %s. Download to view.", name)
}
