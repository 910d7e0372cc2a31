package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tableflip.dev/eduhub/pkg/calendar"
	"tableflip.dev/eduhub/pkg/material"
	"tableflip.dev/eduhub/pkg/resource"
	"tableflip.dev/eduhub/pkg/store"
)

var (
	// ErrValidation rejects input before any state is touched.
	ErrValidation = errors.New("app: invalid input")
	// ErrNoFile is returned by Upload when no file was chosen.
	ErrNoFile = errors.New("app: no file selected")
	// ErrNotFound is returned by lookups that must produce a value.
	ErrNotFound = errors.New("app: not found")
)

var validate = validator.New()

// Service owns the materials and events collections. Every operation runs
// under one lock, and each mutation writes through to Persistence and then
// notifies observers before returning.
//
// The zero value is not usable; set Persistence at minimum. Collections are
// loaded on first use.
type Service struct {
	Persistence store.Persistence
	Registry    *resource.Registry
	Log         *zap.Logger
	Metrics     *Metrics

	// Now and NewID are injectable for tests.
	Now   func() time.Time
	NewID func() string

	// Upload latency simulation.
	UploadMinDelay time.Duration
	UploadJitter   time.Duration
	Sleep          func(time.Duration)

	mu        sync.Mutex
	loaded    bool
	materials []*material.Record
	events    []*calendar.Event
	observers map[int]Observer
	nextObs   int
	pending   []Change
}

// Observer is told about every committed mutation.
type Observer func(Change)

// ChangeKind names the collection a Change touched.
type ChangeKind string

const (
	ChangeMaterials ChangeKind = "materials"
	ChangeEvents    ChangeKind = "events"
	ChangePrefs     ChangeKind = "prefs"
)

// Change describes a committed mutation.
type Change struct {
	Kind ChangeKind
	ID   string
}

// Load reads both collections from Persistence. It is called implicitly by
// every operation and is safe to call more than once.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoaded(ctx)
}

// Reload discards the in-memory collections and reads them again, used when
// the store reports a change made by another process. Owned handles of
// records that disappeared are released; surviving records keep theirs.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	previous := make(map[string]*material.Record, len(s.materials))
	for _, r := range s.materials {
		previous[r.ID] = r
	}
	s.loaded = false
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	for _, r := range s.materials {
		if old, ok := previous[r.ID]; ok {
			if r.Resource == "" {
				r.Resource = old.Resource
			}
			delete(previous, r.ID)
		}
	}
	for _, gone := range previous {
		s.release(gone)
	}
	s.notify(Change{Kind: ChangeMaterials})
	s.notify(Change{Kind: ChangeEvents})
	return nil
}

// Subscribe registers fn for change notifications and returns a function that
// removes it. Observers run on the mutating goroutine after the lock is
// released and before the mutation returns, so they may read the Service.
func (s *Service) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.observers == nil {
		s.observers = make(map[int]Observer)
	}
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if s.Registry == nil {
		s.Registry = resource.NewRegistry()
	}
	s.materials = s.loadMaterials()
	s.events = s.loadEvents()
	s.Metrics.eventsChanged(len(s.events))
	s.loaded = true
	return nil
}

func (s *Service) loadMaterials() []*material.Record {
	if !s.Persistence.Has(store.SlotMaterials) {
		seed := material.Seed(s.now(), s.newID)
		s.logger().Debug("seeding materials", zap.Int("count", len(seed)))
		s.persistMaterials(seed)
		return seed
	}
	raw, err := s.Persistence.Get(store.SlotMaterials)
	if err == nil {
		var records []*material.Record
		if records, err = material.UnmarshalList(raw); err == nil {
			return records
		}
	}
	s.logger().Warn("unreadable materials slot, seeding", zap.Error(err))
	return material.Seed(s.now(), s.newID)
}

func (s *Service) loadEvents() []*calendar.Event {
	raw, err := s.Persistence.Get(store.SlotEvents)
	if errors.Is(err, store.ErrNotFound) {
		return []*calendar.Event{}
	}
	if err == nil {
		var events []*calendar.Event
		if events, err = calendar.UnmarshalEvents(raw); err == nil {
			return events
		}
	}
	s.logger().Warn("unreadable events slot, starting empty", zap.Error(err))
	return []*calendar.Event{}
}

func (s *Service) persistMaterials(records []*material.Record) {
	data, err := material.MarshalList(records)
	if err == nil {
		err = s.Persistence.Set(store.SlotMaterials, data)
	}
	s.persisted(store.SlotMaterials, err)
}

func (s *Service) persistEvents() {
	data, err := calendar.MarshalEvents(s.events)
	if err == nil {
		err = s.Persistence.Set(store.SlotEvents, data)
	}
	s.persisted(store.SlotEvents, err)
}

// Write failures leave the in-memory collection authoritative.
func (s *Service) persisted(slot store.Slot, err error) {
	if err == nil {
		return
	}
	s.logger().Warn("persist failed", zap.String("slot", string(slot)), zap.Error(err))
	s.Metrics.persistFailed(slot)
}

// notify queues c for delivery by unlock.
func (s *Service) notify(c Change) {
	s.pending = append(s.pending, c)
}

// unlock releases s.mu and then delivers queued changes to a snapshot of the
// observers, in subscription order.
func (s *Service) unlock() {
	pending := s.pending
	s.pending = nil
	var observers []Observer
	if len(pending) > 0 {
		ids := make([]int, 0, len(s.observers))
		for id := range s.observers {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			observers = append(observers, s.observers[id])
		}
	}
	s.mu.Unlock()

	for _, c := range pending {
		for _, fn := range observers {
			fn(c)
		}
	}
}

func (s *Service) release(r *material.Record) {
	if r == nil || !r.Resource.Owned() || s.Registry == nil {
		return
	}
	if s.Registry.Release(r.Resource) {
		s.logger().Debug("released handle", zap.String("id", r.ID), zap.String("ref", string(r.Resource)))
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) logger() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}
