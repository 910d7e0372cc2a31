// Package materials holds the CLI runners for the materials catalog.
package materials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"tableflip.dev/eduhub/pkg/app"
	"tableflip.dev/eduhub/pkg/material"
	"tableflip.dev/eduhub/pkg/printers"
)

func out(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return color.Output
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(out(w))
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List prints the derived view of the catalog.
type List struct {
	Hub     *app.Service
	Subject string
	Type    string
	Query   string
	Sort    string
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (l *List) Do(ctx context.Context) error {
	c, err := Criteria(l.Subject, l.Type, l.Query, l.Sort)
	if err != nil {
		return err
	}
	records, err := l.Hub.MaterialView(ctx, c)
	if err != nil {
		return err
	}
	if l.JSON {
		return writeJSON(l.Out, records)
	}

	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	title := "Materials"
	if c.Subject != material.SubjectAll {
		title = c.Subject
	}
	pp.TitleWithCount(title, len(records))
	pp.Materials(records...)
	return nil
}

// Criteria parses the list flags. An empty subject means every subject.
func Criteria(subject, typ, query, sort string) (material.Criteria, error) {
	t, err := material.ParseTypeFilter(typ)
	if err != nil {
		return material.Criteria{}, err
	}
	s, err := material.ParseSortOrder(sort)
	if err != nil {
		return material.Criteria{}, err
	}
	if subject == "" {
		subject = material.SubjectAll
	}
	return material.Criteria{Subject: subject, Type: t, Query: query, Sort: s}, nil
}

// Upload reads a local file and runs it through the simulated upload.
type Upload struct {
	Hub       *app.Service
	Path      string
	Name      string
	MediaType string
	Subject   string
	Uploader  string
	JSON      bool
	Out       io.Writer
}

func (u *Upload) Do(ctx context.Context) error {
	var payload []byte
	name := u.Name
	if u.Path != "" {
		data, err := os.ReadFile(u.Path)
		if err != nil {
			return fmt.Errorf("read %s: %w", u.Path, err)
		}
		payload = data
		if name == "" {
			name = filepath.Base(u.Path)
		}
	}

	uploader := u.Uploader
	if uploader == "" {
		if n, err := u.Hub.DisplayName(); err == nil {
			uploader = n
		}
	}

	pp := printers.PrettyPrint{Out: u.Out}
	if !u.JSON {
		pp.Status("Uploading…")
	}
	r, err := u.Hub.Upload(ctx, app.UploadRequest{
		FileName:  name,
		MediaType: u.MediaType,
		Subject:   u.Subject,
		Uploader:  uploader,
		Payload:   payload,
	})
	if err != nil {
		if !u.JSON && errors.Is(err, app.ErrNoFile) {
			pp.Error("Choose a file to upload.")
		}
		return err
	}
	if u.JSON {
		return writeJSON(u.Out, r)
	}
	pp.Status("Uploaded " + r.Name)
	return nil
}

// Delete removes a material. Unknown ids are not an error.
type Delete struct {
	Hub *app.Service
	ID  string
	Out io.Writer
}

func (d *Delete) Do(ctx context.Context) error {
	if err := d.Hub.Remove(ctx, d.ID); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: d.Out}
	pp.Status("Deleted " + d.ID)
	return nil
}

// Preview shows how a material would be displayed. With SaveTo set, owned
// payloads are written to that path.
type Preview struct {
	Hub    *app.Service
	ID     string
	SaveTo string
	JSON   bool
	Out    io.Writer
}

func (p *Preview) Do(ctx context.Context) error {
	pv, err := p.Hub.Preview(ctx, p.ID)
	if err != nil {
		return err
	}
	if p.SaveTo != "" && len(pv.Data) > 0 {
		if err := os.WriteFile(p.SaveTo, pv.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", p.SaveTo, err)
		}
	}
	if p.JSON {
		return writeJSON(p.Out, pv)
	}
	pp := printers.PrettyPrint{Out: p.Out}
	pp.Preview(pv)
	return nil
}

// Stats prints the dashboard counters.
type Stats struct {
	Hub  *app.Service
	JSON bool
	Out  io.Writer
}

func (s *Stats) Do(ctx context.Context) error {
	stats, err := s.Hub.Stats(ctx)
	if err != nil {
		return err
	}
	subjects, err := s.Hub.Subjects(ctx)
	if err != nil {
		return err
	}
	if s.JSON {
		return writeJSON(s.Out, map[string]any{"stats": stats, "subjects": subjects})
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.Stats(stats, subjects)
	return nil
}

// Subjects prints the distinct subjects in first-seen order.
type Subjects struct {
	Hub  *app.Service
	JSON bool
	Out  io.Writer
}

func (s *Subjects) Do(ctx context.Context) error {
	subjects, err := s.Hub.Subjects(ctx)
	if err != nil {
		return err
	}
	if s.JSON {
		return writeJSON(s.Out, subjects)
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.Subjects(subjects)
	return nil
}
