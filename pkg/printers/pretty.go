package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/eduhub/pkg/calendar"
	"tableflip.dev/eduhub/pkg/material"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var kindGlyphs = map[material.Kind]string{
	material.KindPDF:     "▤",
	material.KindArchive: "▣",
	material.KindWord:    "▥",
	material.KindImage:   "▨",
	material.KindGeneric: "□",
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " material")
	default:
		_, _ = c.Fprintln(pp.out(), " materials")
	}
}

// Status prints a one-line status message such as "Uploading…".
func (pp *PrettyPrint) Status(msg string) {
	_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), msg)
}

// Error prints a validation message.
func (pp *PrettyPrint) Error(msg string) {
	_, _ = color.New(color.FgRed).Fprintln(pp.out(), msg)
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Materials renders records as a table in the order given.
func (pp *PrettyPrint) Materials(records ...*material.Record) {
	if len(records) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	header := []interface{}{"", bold.Sprint("Name"), bold.Sprint("Subject"), bold.Sprint("Uploader"), bold.Sprint("Uploaded"), bold.Sprint("Size")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, r := range records {
		row := []interface{}{
			kindGlyphs[r.Kind()],
			r.Name,
			r.Subject,
			r.Uploader,
			r.CreatedAt.Local().Format("Jan 2 15:04"),
			FormatSize(r.SizeBytes),
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(r.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(len(header) - 1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Stats renders the dashboard counters.
func (pp *PrettyPrint) Stats(s material.Stats, subjects []string) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Materials"), s.TotalMaterials)
	tbl.AddRow(bold.Sprint("Projects"), s.ProjectCount)
	for _, sub := range subjects {
		tbl.AddRow("  "+sub, s.BySubject[sub])
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Subjects lists subjects one per line.
func (pp *PrettyPrint) Subjects(subjects []string) {
	if len(subjects) == 0 {
		pp.none()
		return
	}
	for _, s := range subjects {
		_, _ = fmt.Fprintf(pp.out(), "• %s\n", s)
	}
}

// Preview describes how a record can be viewed. Inline payloads are summarised
// rather than dumped to the terminal.
func (pp *PrettyPrint) Preview(p material.Preview) {
	pp.Title(p.Record.Name)
	f := color.New(color.Faint)
	switch p.Kind {
	case material.PreviewUnavailable:
		_, _ = color.New(color.Italic).Fprintln(pp.out(), p.Message)
	case material.PreviewImage, material.PreviewDocument:
		_, _ = f.Fprintf(pp.out(), "%s preview (%s)\n", p.Kind, p.MediaType)
		if p.URL != "" {
			_, _ = fmt.Fprintln(pp.out(), p.URL)
		} else {
			_, _ = fmt.Fprintf(pp.out(), "%s in memory\n", FormatSize(int64(len(p.Data))))
		}
	}
}

// Events renders calendar events grouped under their dates.
func (pp *PrettyPrint) Events(events ...*calendar.Event) {
	if len(events) == 0 {
		pp.none()
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	d := color.New(color.Bold)
	sub := color.New(color.Faint)

	var last calendar.Date
	for _, e := range events {
		if e.Date != last {
			_, _ = d.Fprintf(pp.out(), "%s %s\n", e.Date, e.Date.Weekday().String()[:3])
			last = e.Date
		}
		if pp.ShowID {
			_, _ = y.Fprintf(pp.out(), "  %s", e.ID)
		}
		_, _ = fmt.Fprintf(pp.out(), "  • %s", e.Title)
		if e.Subject != "" {
			_, _ = sub.Fprintf(pp.out(), " (%s)", e.Subject)
		}
		_, _ = fmt.Fprintln(pp.out(), "")
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

// FormatSize renders a byte count with a binary unit.
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %s", float64(n)/float64(div), strings.Split("KB MB GB TB", " ")[exp])
}
