package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/eduhub/pkg/material"
	"tableflip.dev/eduhub/pkg/resource"
)

// Insert creates a record stamped with the current time and places it at the
// front of the collection.
func (s *Service) Insert(ctx context.Context, f material.Fields) (*material.Record, error) {
	s.mu.Lock()
	defer s.unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	r := material.New(s.newID(), f, s.now())
	s.materials = append([]*material.Record{r}, s.materials...)
	s.persistMaterials(s.materials)
	s.Metrics.inserted(r)
	s.notify(Change{Kind: ChangeMaterials, ID: r.ID})
	return r.Clone(), nil
}

// Remove deletes the record with id and releases the payload handle it owns.
// Unknown ids are ignored.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	idx := s.materialIndex(id)
	if idx < 0 {
		s.logger().Debug("remove: unknown material", zap.String("id", id))
		return nil
	}
	r := s.materials[idx]
	s.release(r)
	s.materials = append(s.materials[:idx:idx], s.materials[idx+1:]...)
	s.persistMaterials(s.materials)
	s.Metrics.removed()
	s.notify(Change{Kind: ChangeMaterials, ID: id})
	return nil
}

// Materials returns a copy of the collection in stored order.
func (s *Service) Materials(ctx context.Context) ([]*material.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return cloneRecords(s.materials), nil
}

// Material looks up one record.
func (s *Service) Material(ctx context.Context, id string) (*material.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	idx := s.materialIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("material %q: %w", id, ErrNotFound)
	}
	return s.materials[idx].Clone(), nil
}

// MaterialView returns the filtered and sorted projection of the collection.
func (s *Service) MaterialView(ctx context.Context, c material.Criteria) ([]*material.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return cloneRecords(material.View(s.materials, c)), nil
}

// Stats summarises the whole collection.
func (s *Service) Stats(ctx context.Context) (material.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return material.Stats{}, err
	}
	return material.Summarize(s.materials), nil
}

// Subjects lists distinct subjects in stored order.
func (s *Service) Subjects(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return material.Subjects(s.materials), nil
}

// Preview resolves how a record can be displayed. Unsupported kinds are not an
// error; they come back as PreviewUnavailable with a message.
func (s *Service) Preview(ctx context.Context, id string) (material.Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return material.Preview{}, err
	}
	idx := s.materialIndex(id)
	if idx < 0 {
		return material.Preview{}, fmt.Errorf("material %q: %w", id, ErrNotFound)
	}
	r := s.materials[idx].Clone()
	p := material.Preview{
		Record:    r,
		Kind:      material.PreviewKindOf(r.MediaType, r.Name),
		MediaType: r.MediaType,
	}
	if p.Kind == material.PreviewUnavailable {
		p.Message = material.UnavailableMessage(r.Name)
		return p, nil
	}

	switch {
	case r.Resource.Owned():
		if s.Registry == nil {
			return material.Preview{}, resource.ErrReleased
		}
		blob, err := s.Registry.Open(r.Resource)
		if err != nil {
			return material.Preview{}, err
		}
		p.Data = blob.Data
		p.MediaType = blob.MediaType
	case r.Resource.External():
		p.URL = string(r.Resource)
	default:
		// Payloads do not survive a restart.
		p.Kind = material.PreviewUnavailable
		p.Message = material.UnavailableMessage(r.Name)
	}
	return p, nil
}

func (s *Service) materialIndex(id string) int {
	for i, r := range s.materials {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func cloneRecords(in []*material.Record) []*material.Record {
	out := make([]*material.Record, 0, len(in))
	for _, r := range in {
		out = append(out, r.Clone())
	}
	return out
}

// IsNotFound reports whether err is an identity miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
