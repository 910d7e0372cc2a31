package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"tableflip.dev/eduhub/pkg/material"
)

const (
	DefaultUploadMinDelay = 600 * time.Millisecond
	DefaultUploadJitter   = 700 * time.Millisecond
)

// UploadRequest is a file chosen for upload.
type UploadRequest struct {
	FileName  string `validate:"required"`
	MediaType string `validate:"max=255"`
	Subject   string `validate:"max=120"`
	Uploader  string `validate:"max=120"`
	Payload   []byte
}

// Upload simulates a transfer: it takes a handle on the payload, waits the
// configured latency and then inserts the record. The wait ignores ctx; once
// started an upload always completes.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*material.Record, error) {
	req.FileName = strings.TrimSpace(req.FileName)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Uploader = strings.TrimSpace(req.Uploader)
	req.MediaType = strings.TrimSpace(req.MediaType)
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() == "FileName" {
					return nil, ErrNoFile
				}
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	ref := s.Registry.Acquire(req.Payload, req.MediaType)
	mediaType := req.MediaType
	if blob, err := s.Registry.Open(ref); err == nil && blob.MediaType != "" {
		mediaType = blob.MediaType
	}

	started := time.Now()
	s.sleep(s.uploadDelay())
	s.Metrics.uploadTook(time.Since(started))

	r, err := s.Insert(context.WithoutCancel(ctx), material.Fields{
		Name:      req.FileName,
		MediaType: mediaType,
		Subject:   req.Subject,
		Uploader:  req.Uploader,
		SizeBytes: int64(len(req.Payload)),
		Resource:  ref,
	})
	if err != nil {
		s.Registry.Release(ref)
		return nil, err
	}
	s.logger().Debug("uploaded", zap.String("id", r.ID), zap.String("name", r.Name))
	return r, nil
}

func (s *Service) uploadDelay() time.Duration {
	d := s.UploadMinDelay
	if s.UploadJitter > 0 {
		d += time.Duration(rand.Int63n(int64(s.UploadJitter)))
	}
	return d
}

func (s *Service) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}
