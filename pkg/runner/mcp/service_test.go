package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/eduhub/pkg/app"
	"tableflip.dev/eduhub/pkg/calendar"
	"tableflip.dev/eduhub/pkg/material"
	"tableflip.dev/eduhub/pkg/store"
)

var today = calendar.NewDate(2025, time.October, 17)

func newTestService(t *testing.T) *Service {
	t.Helper()
	n := 0
	hub := &app.Service{
		Persistence: store.NewMemory(),
		Now:         func() time.Time { return time.Date(2025, time.October, 17, 9, 0, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("mcp-%d", n)
		},
		Sleep: func(time.Duration) {},
	}
	svc := NewService(hub)
	svc.Today = func() calendar.Date { return today }
	return svc
}

func TestServiceListMaterialsSeeded(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	all, err := svc.ListMaterials(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListMaterials failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 seeded materials, got %d", len(all))
	}

	zips, err := svc.ListMaterials(ctx, ListOptions{Subject: "Physics", Type: "zip"})
	if err != nil {
		t.Fatalf("ListMaterials failed: %v", err)
	}
	if len(zips) != 1 || zips[0].Name != "PID_Control_Project.zip" || !zips[0].IsProject {
		t.Fatalf("unexpected filtered view %+v", zips)
	}
	if zips[0].URL == "" {
		t.Fatalf("expected external url on seeded material")
	}

	if _, err := svc.ListMaterials(ctx, ListOptions{Sort: "size"}); err == nil {
		t.Fatalf("expected error for unknown sort")
	}
}

func TestServiceUploadPreviewDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	content := base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\n0000"))
	dto, err := svc.UploadMaterial(ctx, UploadOptions{FileName: "graph.png", Subject: "Mathematics", Content: content, Encoding: "base64"})
	if err != nil {
		t.Fatalf("UploadMaterial failed: %v", err)
	}
	if dto.MediaType != "image/png" || dto.Kind != "image" {
		t.Fatalf("expected sniffed png, got %+v", dto)
	}

	preview, err := svc.PreviewMaterial(ctx, dto.ID)
	if err != nil {
		t.Fatalf("PreviewMaterial failed: %v", err)
	}
	if preview.Kind != "image" || preview.DataBase64 != content {
		t.Fatalf("unexpected preview %+v", preview)
	}

	if err := svc.DeleteMaterial(ctx, dto.ID); err != nil {
		t.Fatalf("DeleteMaterial failed: %v", err)
	}
	if _, err := svc.PreviewMaterial(ctx, dto.ID); !app.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.DeleteMaterial(ctx, dto.ID); err != nil {
		t.Fatalf("second delete must be silent, got %v", err)
	}
}

func TestServiceUploadRequiresFile(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.UploadMaterial(context.Background(), UploadOptions{}); !errors.Is(err, app.ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}
	if _, err := svc.UploadMaterial(context.Background(), UploadOptions{FileName: "a.txt", Content: "%%", Encoding: "base64"}); err == nil {
		t.Fatalf("expected invalid base64 error")
	}
}

func TestServiceEventsAndGrid(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.AddEvent(ctx, "", "Quiz", "Physics")
	if err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}
	if first.Date != "2025-10-17" {
		t.Fatalf("expected today's date, got %s", first.Date)
	}
	if _, err := svc.AddEvent(ctx, "tomorrow", " ", ""); !errors.Is(err, app.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	_, _ = svc.AddEvent(ctx, "2025-10-17", "Lab", "")
	_, _ = svc.AddEvent(ctx, "2025-10-17", "Essay", "")

	date, events, err := svc.EventsOn(ctx, "today")
	if err != nil {
		t.Fatalf("EventsOn failed: %v", err)
	}
	if date != "2025-10-17" || len(events) != 3 || events[0].Title != "Quiz" {
		t.Fatalf("unexpected events %s %+v", date, events)
	}

	edited, err := svc.EditEvent(ctx, first.ID, "Quiz moved", "")
	if err != nil || edited == nil || edited.Date != first.Date || edited.Title != "Quiz moved" {
		t.Fatalf("unexpected edit %+v %v", edited, err)
	}
	if miss, err := svc.EditEvent(ctx, "missing", "x", ""); miss != nil || err != nil {
		t.Fatalf("expected silent miss, got %+v %v", miss, err)
	}

	grid, err := svc.MonthGrid(ctx, "2025-10")
	if err != nil {
		t.Fatalf("MonthGrid failed: %v", err)
	}
	if grid.Month != "2025-10" || len(grid.Cells) != calendar.GridCells {
		t.Fatalf("unexpected grid header %s / %d", grid.Month, len(grid.Cells))
	}
	if c := grid.Cells[3]; c.Date != "2025-10-01" || c.Outside {
		t.Fatalf("expected Oct 1 in cell 3, got %+v", c)
	}
	for _, c := range grid.Cells {
		if c.Date == "2025-10-17" && (len(c.Events) != 3 || c.Overflow != 1) {
			t.Fatalf("expected 3 events with overflow 1, got %+v", c)
		}
	}

	if err := svc.DeleteEvent(ctx, first.ID); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if _, events, _ = svc.EventsOn(ctx, "2025-10-17"); len(events) != 2 {
		t.Fatalf("expected 2 events after delete, got %d", len(events))
	}
}

func TestRouterServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	hub := newTestService(t).Hub
	hub.Metrics = app.NewMetrics(reg)
	if _, err := hub.Insert(context.Background(), material.Fields{Name: "notes.txt", MediaType: "text/plain"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	r := Runner{Hub: hub, Gatherer: reg}
	ts := httptest.NewServer(r.Router(r.newServer()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(body), "eduhub_materials_inserted_total") {
		t.Fatalf("expected hub metrics, got:\n%s", body)
	}

	health, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	health.Body.Close()
	if health.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from healthz, got %d", health.StatusCode)
	}
}

func TestRunnerLogsHubChanges(t *testing.T) {
	svc := newTestService(t)
	core, logs := observer.New(zapcore.DebugLevel)
	r := Runner{Hub: svc.Hub, Log: zap.New(core)}

	stop := r.observe()
	if _, err := svc.Hub.Insert(context.Background(), material.Fields{Name: "a.pdf"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	stop()
	if _, err := svc.Hub.Insert(context.Background(), material.Fields{Name: "b.pdf"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got := logs.FilterMessage("hub changed").All()
	if len(got) != 1 {
		t.Fatalf("expected 1 change logged while subscribed, got %d", len(got))
	}
	if kind := got[0].ContextMap()["kind"]; kind != string(app.ChangeMaterials) {
		t.Fatalf("expected materials change, got %v", kind)
	}
}
