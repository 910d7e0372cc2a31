// Package mcp provides the Model Context Protocol server integration for eduhub.
package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/eduhub/pkg/app"
	"tableflip.dev/eduhub/pkg/calendar"
	"tableflip.dev/eduhub/pkg/material"
	"tableflip.dev/eduhub/pkg/timeutil"
)

// Service adapts app.Service to transport-friendly DTOs shared by tools and
// resources.
type Service struct {
	Hub *app.Service
	// Today defaults to the local date.
	Today func() calendar.Date
}

// ListOptions are the derived-view parameters accepted by list_materials.
type ListOptions struct {
	Subject string
	Type    string
	Query   string
	Sort    string
}

// UploadOptions describe an upload_material call. Content is either plain
// text or base64 when Encoding is "base64".
type UploadOptions struct {
	FileName  string
	MediaType string
	Subject   string
	Uploader  string
	Content   string
	Encoding  string
}

// MaterialDTO is a transport-friendly projection of a record.
type MaterialDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MediaType  string `json:"type"`
	Kind       string `json:"kind"`
	Subject    string `json:"subject"`
	Uploader   string `json:"uploader"`
	CreatedISO string `json:"createdAt"`
	SizeBytes  int64  `json:"size"`
	IsProject  bool   `json:"isProject"`
	URL        string `json:"url,omitempty"`
}

// PreviewDTO is a preview with any inline payload base64 encoded.
type PreviewDTO struct {
	Material   MaterialDTO `json:"material"`
	Kind       string      `json:"kind"`
	MediaType  string      `json:"mediaType,omitempty"`
	URL        string      `json:"url,omitempty"`
	DataBase64 string      `json:"dataBase64,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// EventDTO is a transport-friendly projection of a calendar event.
type EventDTO struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Title      string `json:"title"`
	Subject    string `json:"subject,omitempty"`
	CreatedISO string `json:"createdAt"`
}

// CellDTO is one day of a month grid.
type CellDTO struct {
	Date     string     `json:"date"`
	Outside  bool       `json:"outside"`
	Events   []EventDTO `json:"events"`
	Overflow int        `json:"overflow"`
}

// GridDTO is a 42-cell month grid.
type GridDTO struct {
	Month string    `json:"month"`
	Cells []CellDTO `json:"cells"`
}

// NewService builds a service wrapper around hub.
func NewService(hub *app.Service) *Service {
	return &Service{Hub: hub}
}

func (s *Service) ready() error {
	if s.Hub == nil {
		return errors.New("hub is not configured")
	}
	return nil
}

func (s *Service) today() calendar.Date {
	if s.Today != nil {
		return s.Today()
	}
	return calendar.Today(time.Now(), time.Local)
}

// ListMaterials returns the derived view for the given options.
func (s *Service) ListMaterials(ctx context.Context, opts ListOptions) ([]MaterialDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	c, err := criteria(opts)
	if err != nil {
		return nil, err
	}
	records, err := s.Hub.MaterialView(ctx, c)
	if err != nil {
		return nil, err
	}
	return toMaterialDTOs(records), nil
}

func criteria(opts ListOptions) (material.Criteria, error) {
	typ, err := material.ParseTypeFilter(opts.Type)
	if err != nil {
		return material.Criteria{}, err
	}
	sort, err := material.ParseSortOrder(opts.Sort)
	if err != nil {
		return material.Criteria{}, err
	}
	subject := strings.TrimSpace(opts.Subject)
	if subject == "" {
		subject = material.SubjectAll
	}
	return material.Criteria{Subject: subject, Type: typ, Query: opts.Query, Sort: sort}, nil
}

// UploadMaterial decodes the content and runs a simulated upload.
func (s *Service) UploadMaterial(ctx context.Context, opts UploadOptions) (MaterialDTO, error) {
	if err := s.ready(); err != nil {
		return MaterialDTO{}, err
	}
	var payload []byte
	switch strings.ToLower(strings.TrimSpace(opts.Encoding)) {
	case "", "text", "utf8", "utf-8":
		payload = []byte(opts.Content)
	case "base64":
		data, err := base64.StdEncoding.DecodeString(opts.Content)
		if err != nil {
			return MaterialDTO{}, fmt.Errorf("invalid base64 content: %w", err)
		}
		payload = data
	default:
		return MaterialDTO{}, fmt.Errorf("unsupported encoding %q", opts.Encoding)
	}
	r, err := s.Hub.Upload(ctx, app.UploadRequest{
		FileName:  opts.FileName,
		MediaType: opts.MediaType,
		Subject:   opts.Subject,
		Uploader:  opts.Uploader,
		Payload:   payload,
	})
	if err != nil {
		return MaterialDTO{}, err
	}
	return toMaterialDTO(r), nil
}

// DeleteMaterial removes a record. Unknown ids succeed silently.
func (s *Service) DeleteMaterial(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.Hub.Remove(ctx, id)
}

// PreviewMaterial resolves the preview for a record.
func (s *Service) PreviewMaterial(ctx context.Context, id string) (PreviewDTO, error) {
	if err := s.ready(); err != nil {
		return PreviewDTO{}, err
	}
	p, err := s.Hub.Preview(ctx, id)
	if err != nil {
		return PreviewDTO{}, err
	}
	dto := PreviewDTO{
		Material:  toMaterialDTO(p.Record),
		Kind:      string(p.Kind),
		MediaType: p.MediaType,
		URL:       p.URL,
		Message:   p.Message,
	}
	if len(p.Data) > 0 {
		dto.DataBase64 = base64.StdEncoding.EncodeToString(p.Data)
	}
	return dto, nil
}

// Stats returns the dashboard counters with the subject list.
func (s *Service) Stats(ctx context.Context) (material.Stats, []string, error) {
	if err := s.ready(); err != nil {
		return material.Stats{}, nil, err
	}
	stats, err := s.Hub.Stats(ctx)
	if err != nil {
		return material.Stats{}, nil, err
	}
	subjects, err := s.Hub.Subjects(ctx)
	if err != nil {
		return material.Stats{}, nil, err
	}
	return stats, subjects, nil
}

// AddEvent creates an event on a loosely parsed day.
func (s *Service) AddEvent(ctx context.Context, day, title, subject string) (EventDTO, error) {
	if err := s.ready(); err != nil {
		return EventDTO{}, err
	}
	date, err := timeutil.ParseDay(day, s.today())
	if err != nil {
		return EventDTO{}, err
	}
	e, err := s.Hub.AddEvent(ctx, date, app.EventInput{Title: title, Subject: subject})
	if err != nil {
		return EventDTO{}, err
	}
	return toEventDTO(e), nil
}

// EditEvent updates title and subject. A nil result means the id was unknown.
func (s *Service) EditEvent(ctx context.Context, id, title, subject string) (*EventDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, err := s.Hub.EditEvent(ctx, id, app.EventInput{Title: title, Subject: subject})
	if err != nil || e == nil {
		return nil, err
	}
	dto := toEventDTO(e)
	return &dto, nil
}

// DeleteEvent removes an event. Unknown ids succeed silently.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.Hub.DeleteEvent(ctx, id)
}

// EventsOn lists the events on a loosely parsed day.
func (s *Service) EventsOn(ctx context.Context, day string) (string, []EventDTO, error) {
	if err := s.ready(); err != nil {
		return "", nil, err
	}
	date, err := timeutil.ParseDay(day, s.today())
	if err != nil {
		return "", nil, err
	}
	events, err := s.Hub.EventsOn(ctx, date)
	if err != nil {
		return "", nil, err
	}
	return date.String(), toEventDTOs(events), nil
}

// MonthGrid projects the events onto a loosely parsed month.
func (s *Service) MonthGrid(ctx context.Context, month string) (GridDTO, error) {
	if err := s.ready(); err != nil {
		return GridDTO{}, err
	}
	focus, err := timeutil.ParseMonth(month, s.today())
	if err != nil {
		return GridDTO{}, err
	}
	g, err := s.Hub.MonthGrid(ctx, focus)
	if err != nil {
		return GridDTO{}, err
	}
	dto := GridDTO{
		Month: fmt.Sprintf("%04d-%02d", g.Month.Year, int(g.Month.Month)),
		Cells: make([]CellDTO, 0, len(g.Cells)),
	}
	for _, c := range g.Cells {
		dto.Cells = append(dto.Cells, CellDTO{
			Date:     c.Date.String(),
			Outside:  c.Outside,
			Events:   toEventDTOs(c.Events),
			Overflow: c.Overflow(),
		})
	}
	return dto, nil
}

func toMaterialDTO(r *material.Record) MaterialDTO {
	if r == nil {
		return MaterialDTO{}
	}
	dto := MaterialDTO{
		ID:         r.ID,
		Name:       r.Name,
		MediaType:  r.MediaType,
		Kind:       string(r.Kind()),
		Subject:    r.Subject,
		Uploader:   r.Uploader,
		CreatedISO: r.CreatedAt.Format(time.RFC3339),
		SizeBytes:  r.SizeBytes,
		IsProject:  material.IsProject(r),
	}
	if r.Resource.External() {
		dto.URL = string(r.Resource)
	}
	return dto
}

func toMaterialDTOs(records []*material.Record) []MaterialDTO {
	out := make([]MaterialDTO, 0, len(records))
	for _, r := range records {
		out = append(out, toMaterialDTO(r))
	}
	return out
}

func toEventDTO(e *calendar.Event) EventDTO {
	return EventDTO{
		ID:         e.ID,
		Date:       e.Date.String(),
		Title:      e.Title,
		Subject:    e.Subject,
		CreatedISO: e.CreatedAt.Format(time.RFC3339),
	}
}

func toEventDTOs(events []*calendar.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, toEventDTO(e))
	}
	return out
}
