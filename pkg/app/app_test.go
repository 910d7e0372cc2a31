package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"tableflip.dev/eduhub/pkg/calendar"
	"tableflip.dev/eduhub/pkg/material"
	"tableflip.dev/eduhub/pkg/resource"
	"tableflip.dev/eduhub/pkg/store"
)

var fixedNow = time.Date(2025, time.October, 17, 10, 0, 0, 0, time.UTC)

// flakyPersistence fails every Set while broken is true.
type flakyPersistence struct {
	*store.Memory
	broken bool
	writes int
}

func (f *flakyPersistence) Set(slot store.Slot, value []byte) error {
	f.writes++
	if f.broken {
		return errors.New("disk full")
	}
	return f.Memory.Set(slot, value)
}

type testClock struct {
	now time.Time
	ids int
}

func (c *testClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func (c *testClock) NewID() string {
	c.ids++
	return fmt.Sprintf("id-%d", c.ids)
}

func newService(t *testing.T, p store.Persistence) (*Service, *testClock) {
	t.Helper()
	clock := &testClock{now: fixedNow}
	svc := &Service{
		Persistence: p,
		Registry:    resource.NewRegistry(),
		Now:         clock.Now,
		NewID:       clock.NewID,
		Sleep:       func(time.Duration) {},
	}
	return svc, clock
}

func emptyMemory(t *testing.T) *store.Memory {
	t.Helper()
	m := store.NewMemory()
	if err := m.Set(store.SlotMaterials, []byte("[]")); err != nil {
		t.Fatalf("prime: %v", err)
	}
	return m
}

func TestInsertStampsAndPrepends(t *testing.T) {
	ctx := context.Background()
	svc, clock := newService(t, emptyMemory(t))

	first, err := svc.Insert(ctx, material.Fields{Name: "a.pdf"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !first.CreatedAt.Equal(clock.now) {
		t.Fatalf("expected createdAt %v, got %v", clock.now, first.CreatedAt)
	}
	if first.Subject != material.DefaultSubject || first.Uploader != material.DefaultUploader {
		t.Fatalf("expected defaults, got %+v", first)
	}
	second, _ := svc.Insert(ctx, material.Fields{Name: "b.pdf", Subject: "Physics"})

	all, err := svc.Materials(ctx)
	if err != nil {
		t.Fatalf("materials: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("expected most recent first, got %v", all)
	}
}

func TestInsertWritesThrough(t *testing.T) {
	ctx := context.Background()
	mem := emptyMemory(t)
	svc, _ := newService(t, mem)
	if _, err := svc.Insert(ctx, material.Fields{Name: "a.pdf"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	reloaded, _ := newService(t, mem)
	all, err := reloaded.Materials(ctx)
	if err != nil {
		t.Fatalf("materials: %v", err)
	}
	if len(all) != 1 || all[0].Name != "a.pdf" {
		t.Fatalf("expected persisted record, got %v", all)
	}
}

func TestRemoveReleasesHandle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, emptyMemory(t))

	r, err := svc.Upload(ctx, UploadRequest{FileName: "photo.png", MediaType: "image/png", Payload: []byte("png")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !r.Resource.Owned() || svc.Registry.Len() != 1 {
		t.Fatalf("expected one live owned handle, got %q / %d", r.Resource, svc.Registry.Len())
	}
	if err := svc.Remove(ctx, r.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.Registry.Open(r.Resource); !errors.Is(err, resource.ErrReleased) {
		t.Fatalf("expected ErrReleased, got %v", err)
	}
	if svc.Registry.Len() != 0 {
		t.Fatalf("expected no live handles, got %d", svc.Registry.Len())
	}
	if _, err := svc.Material(ctx, r.ID); !IsNotFound(err) {
		t.Fatalf("expected record gone, got %v", err)
	}
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc, _ := newService(t, mem)

	before, _ := svc.Materials(ctx)
	var notified int
	svc.Subscribe(func(Change) { notified++ })

	if err := svc.Remove(ctx, "missing"); err != nil {
		t.Fatalf("expected silent miss, got %v", err)
	}
	after, _ := svc.Materials(ctx)
	if len(after) != len(before) {
		t.Fatalf("expected unchanged collection, got %d -> %d", len(before), len(after))
	}
	if notified != 0 {
		t.Fatalf("expected no notification on miss")
	}
}

func TestPersistFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	flaky := &flakyPersistence{Memory: emptyMemory(t)}
	svc, _ := newService(t, flaky)
	svc.Metrics = NewMetrics(prometheus.NewRegistry())
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	flaky.broken = true
	r, err := svc.Insert(ctx, material.Fields{Name: "kept.pdf"})
	if err != nil {
		t.Fatalf("expected insert to succeed, got %v", err)
	}
	if _, err := svc.AddEvent(ctx, calendar.NewDate(2025, time.October, 20), EventInput{Title: "Quiz"}); err != nil {
		t.Fatalf("expected add event to succeed, got %v", err)
	}
	all, _ := svc.Materials(ctx)
	if len(all) != 1 || all[0].ID != r.ID {
		t.Fatalf("expected in-memory state to keep the record")
	}
	if got := testutil.ToFloat64(svc.Metrics.PersistFailures.WithLabelValues(string(store.SlotMaterials))); got != 1 {
		t.Fatalf("expected one materials failure, got %v", got)
	}
	if got := testutil.ToFloat64(svc.Metrics.PersistFailures.WithLabelValues(string(store.SlotEvents))); got != 1 {
		t.Fatalf("expected one events failure, got %v", got)
	}
}

func TestSeedOnlyWhenAbsent(t *testing.T) {
	ctx := context.Background()

	mem := store.NewMemory()
	svc, _ := newService(t, mem)
	seeded, err := svc.Materials(ctx)
	if err != nil {
		t.Fatalf("materials: %v", err)
	}
	if len(seeded) != 5 {
		t.Fatalf("expected 5 seed records, got %d", len(seeded))
	}
	if !mem.Has(store.SlotMaterials) {
		t.Fatalf("expected seed to be persisted")
	}

	empty, _ := newService(t, emptyMemory(t))
	if got, _ := empty.Materials(ctx); len(got) != 0 {
		t.Fatalf("an explicitly empty catalog must stay empty, got %d", len(got))
	}
}

func TestSeedScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, store.NewMemory())
	got, err := svc.MaterialView(ctx, material.Criteria{Subject: "Physics", Type: material.TypeZip, Sort: material.SortNewest})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(got) != 1 || got[0].Name != "PID_Control_Project.zip" {
		t.Fatalf("expected only the project archive, got %v", got)
	}
}

func TestEventsNotSeeded(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc, _ := newService(t, mem)
	events, err := svc.Events(ctx)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
	if mem.Has(store.SlotEvents) {
		t.Fatalf("events slot must not be written on load")
	}
}

func TestCorruptSlotsFallBack(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	_ = mem.Set(store.SlotMaterials, []byte("{oops"))
	_ = mem.Set(store.SlotEvents, []byte("{oops"))
	svc, _ := newService(t, mem)

	materials, _ := svc.Materials(ctx)
	events, _ := svc.Events(ctx)
	if len(materials) != 5 || len(events) != 0 {
		t.Fatalf("expected seed and empty events, got %d/%d", len(materials), len(events))
	}
}

func TestAddEventRejectsEmptyTitle(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc, _ := newService(t, mem)

	_, err := svc.AddEvent(ctx, calendar.NewDate(2025, time.October, 1), EventInput{Title: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	events, _ := svc.Events(ctx)
	if len(events) != 0 || mem.Has(store.SlotEvents) {
		t.Fatalf("rejected input must not change state")
	}
}

func TestEditEventKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, store.NewMemory())
	day := calendar.NewDate(2025, time.October, 3)

	e, err := svc.AddEvent(ctx, day, EventInput{Title: " Lab ", Subject: "Chemistry"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.Title != "Lab" {
		t.Fatalf("expected trimmed title, got %q", e.Title)
	}
	edited, err := svc.EditEvent(ctx, e.ID, EventInput{Title: "Lab report due"})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.ID != e.ID || edited.Date != day || !edited.CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("expected identity kept, got %+v from %+v", edited, e)
	}
	if edited.Title != "Lab report due" || edited.Subject != "" {
		t.Fatalf("expected new title and subject, got %+v", edited)
	}
	if _, err := svc.EditEvent(ctx, e.ID, EventInput{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if miss, err := svc.EditEvent(ctx, "missing", EventInput{Title: "x"}); miss != nil || err != nil {
		t.Fatalf("expected silent miss, got %v %v", miss, err)
	}
}

func TestEventsOnAndGrid(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, store.NewMemory())
	day := calendar.NewDate(2025, time.October, 17)
	for _, title := range []string{"one", "two", "three"} {
		if _, err := svc.AddEvent(ctx, day, EventInput{Title: title}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	on, err := svc.EventsOn(ctx, day)
	if err != nil {
		t.Fatalf("events on: %v", err)
	}
	if len(on) != 3 || on[0].Title != "one" || on[2].Title != "three" {
		t.Fatalf("expected creation order, got %v", on)
	}

	grid, err := svc.MonthGrid(ctx, day)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	for _, c := range grid.Cells {
		if c.Date == day && c.Overflow() != 1 {
			t.Fatalf("expected overflow 1, got %d", c.Overflow())
		}
	}

	if err := svc.DeleteEvent(ctx, on[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteEvent(ctx, "missing"); err != nil {
		t.Fatalf("expected silent miss, got %v", err)
	}
	if on, _ = svc.EventsOn(ctx, day); len(on) != 2 {
		t.Fatalf("expected 2 events after delete, got %d", len(on))
	}
}

func TestObserverSeesPersistedState(t *testing.T) {
	ctx := context.Background()
	mem := emptyMemory(t)
	svc, _ := newService(t, mem)

	var seen []Change
	var persisted []*material.Record
	unsubscribe := svc.Subscribe(func(c Change) {
		seen = append(seen, c)
		raw, _ := mem.Get(store.SlotMaterials)
		persisted, _ = material.UnmarshalList(raw)
	})

	r, _ := svc.Insert(ctx, material.Fields{Name: "x.zip"})
	if len(seen) != 1 || seen[0].Kind != ChangeMaterials || seen[0].ID != r.ID {
		t.Fatalf("expected one materials change, got %v", seen)
	}
	if len(persisted) != 1 || persisted[0].ID != r.ID {
		t.Fatalf("observer ran before the write-through")
	}

	unsubscribe()
	_, _ = svc.Insert(ctx, material.Fields{Name: "y.zip"})
	if len(seen) != 1 {
		t.Fatalf("expected no notification after unsubscribe")
	}
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, emptyMemory(t))
	svc.UploadMinDelay = DefaultUploadMinDelay
	var slept []time.Duration
	svc.Sleep = func(d time.Duration) { slept = append(slept, d) }

	if _, err := svc.Upload(ctx, UploadRequest{FileName: "  "}); !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}
	if len(slept) != 0 || svc.Registry.Len() != 0 {
		t.Fatalf("rejected upload must not wait or acquire")
	}

	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	r, err := svc.Upload(cancelled, UploadRequest{FileName: "notes.pdf", Payload: []byte("%PDF-1.4\n")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(slept) != 1 || slept[0] != DefaultUploadMinDelay {
		t.Fatalf("expected one %v wait, got %v", DefaultUploadMinDelay, slept)
	}
	if r.MediaType != "application/pdf" {
		t.Fatalf("expected sniffed media type, got %q", r.MediaType)
	}
	if r.SizeBytes != 9 || r.Subject != material.DefaultSubject {
		t.Fatalf("unexpected record %+v", r)
	}
}

func TestPreview(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, store.NewMemory())

	img, _ := svc.Upload(ctx, UploadRequest{FileName: "diagram.png", MediaType: "image/png", Payload: []byte("img")})
	p, err := svc.Preview(ctx, img.ID)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if p.Kind != material.PreviewImage || string(p.Data) != "img" {
		t.Fatalf("expected inline image, got %+v", p)
	}

	seeded, _ := svc.MaterialView(ctx, material.Criteria{Type: material.TypePDF})
	p, err = svc.Preview(ctx, seeded[0].ID)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if p.Kind != material.PreviewDocument || p.URL == "" {
		t.Fatalf("expected document url, got %+v", p)
	}

	zips, _ := svc.MaterialView(ctx, material.Criteria{Type: material.TypeZip})
	p, err = svc.Preview(ctx, zips[0].ID)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if p.Kind != material.PreviewUnavailable || p.Message != material.UnavailableMessage(zips[0].Name) {
		t.Fatalf("expected unavailable, got %+v", p)
	}

	if _, err := svc.Preview(ctx, "missing"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	svc.Registry.Release(img.Resource)
	if _, err := svc.Preview(ctx, img.ID); !errors.Is(err, resource.ErrReleased) {
		t.Fatalf("expected ErrReleased for a released handle, got %v", err)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, store.NewMemory())
	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalMaterials != 5 || stats.ProjectCount != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	subjects, _ := svc.Subjects(ctx)
	if len(subjects) != 3 {
		t.Fatalf("expected three subjects, got %v", subjects)
	}
}

func TestReloadKeepsLiveHandles(t *testing.T) {
	ctx := context.Background()
	mem := emptyMemory(t)
	svc, _ := newService(t, mem)
	kept, _ := svc.Upload(ctx, UploadRequest{FileName: "kept.png", MediaType: "image/png", Payload: []byte("a")})
	gone, _ := svc.Upload(ctx, UploadRequest{FileName: "gone.png", MediaType: "image/png", Payload: []byte("b")})

	// Another process removes "gone".
	other, _ := newService(t, mem)
	if err := other.Remove(ctx, gone.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	p, err := svc.Preview(ctx, kept.ID)
	if err != nil || string(p.Data) != "a" {
		t.Fatalf("expected kept payload, got %+v %v", p, err)
	}
	if _, err := svc.Registry.Open(gone.Resource); !errors.Is(err, resource.ErrReleased) {
		t.Fatalf("expected released handle for removed record, got %v", err)
	}
}

func TestPreferences(t *testing.T) {
	svc, _ := newService(t, store.NewMemory())
	if theme, err := svc.Theme(); err != nil || theme != ThemeLight {
		t.Fatalf("expected light default, got %q %v", theme, err)
	}
	if err := svc.SetTheme("Dark"); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if theme, _ := svc.Theme(); theme != ThemeDark {
		t.Fatalf("expected dark, got %q", theme)
	}
	if err := svc.SetTheme("blue"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := svc.SetDisplayName("  Ama  "); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if name, _ := svc.DisplayName(); name != "Ama" {
		t.Fatalf("expected trimmed name, got %q", name)
	}
}

func TestUploadDefaultsMediaTypeWhenSniffingIsInconclusive(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, emptyMemory(t))

	tests := map[string][]byte{
		"empty.bin":   nil,
		"slides.pptx": []byte("hello world"),
	}
	for name, payload := range tests {
		r, err := svc.Upload(ctx, UploadRequest{FileName: name, Payload: payload})
		if err != nil {
			t.Fatalf("%s: upload: %v", name, err)
		}
		if r.MediaType != material.DefaultMediaType {
			t.Fatalf("%s: expected %q, got %q", name, material.DefaultMediaType, r.MediaType)
		}
	}

	r, err := svc.Upload(ctx, UploadRequest{FileName: "notes.txt", MediaType: "text/plain", Payload: []byte("hi")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if r.MediaType != "text/plain" {
		t.Fatalf("expected caller media type to win, got %q", r.MediaType)
	}
}

func TestErrNoFileFollowsErrorConventions(t *testing.T) {
	if ErrNoFile.Error() != "app: no file selected" {
		t.Fatalf("unexpected error text %q", ErrNoFile.Error())
	}
}

func TestObserverMayReadService(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, emptyMemory(t))
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	var counts []int
	svc.Subscribe(func(Change) {
		all, err := svc.Materials(ctx)
		if err != nil {
			t.Errorf("Materials from observer: %v", err)
			return
		}
		counts = append(counts, len(all))
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Insert(ctx, material.Fields{Name: "a.pdf"})
		_, _ = svc.AddEvent(ctx, calendar.NewDate(2025, time.October, 20), EventInput{Title: "Quiz"})
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("observer calling back into the service deadlocked")
	}
	if len(counts) != 2 || counts[0] != 1 || counts[1] != 1 {
		t.Fatalf("expected observer to see the inserted record, got %v", counts)
	}
}

func TestReloadSeesWritesFromAnotherProcess(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	open := func() *Service {
		p, err := store.NewDiskv(dir)
		if err != nil {
			t.Fatalf("diskv: %v", err)
		}
		svc, _ := newService(t, p)
		return svc
	}
	cli, browser := open(), open()
	day := calendar.NewDate(2025, time.October, 20)

	if _, err := cli.AddEvent(ctx, day, EventInput{Title: "Seed"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got, _ := browser.EventsOn(ctx, day); len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	for _, title := range []string{"Quiz", "Lab"} {
		if _, err := cli.AddEvent(ctx, day, EventInput{Title: title}); err != nil {
			t.Fatalf("add %s: %v", title, err)
		}
	}
	if err := browser.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got, _ := browser.EventsOn(ctx, day); len(got) != 3 {
		t.Fatalf("expected 3 events after reload, got %d", len(got))
	}
}
