package app

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/eduhub/pkg/store"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme reads the stored theme. Anything other than "dark" is light.
func (s *Service) Theme() (string, error) {
	raw, err := s.readPref(store.SlotTheme)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(raw) == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

// SetTheme stores light or dark.
func (s *Service) SetTheme(theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("%w: theme must be %s or %s", ErrValidation, ThemeLight, ThemeDark)
	}
	return s.writePref(store.SlotTheme, theme)
}

// DisplayName reads the stored display name, empty when unset.
func (s *Service) DisplayName() (string, error) {
	return s.readPref(store.SlotDisplayName)
}

func (s *Service) SetDisplayName(name string) error {
	return s.writePref(store.SlotDisplayName, strings.TrimSpace(name))
}

func (s *Service) readPref(slot store.Slot) (string, error) {
	if s.Persistence == nil {
		return "", errors.New("app: no persistence configured")
	}
	raw, err := s.Persistence.Get(slot)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *Service) writePref(slot store.Slot, value string) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	s.mu.Lock()
	defer s.unlock()
	if err := s.Persistence.Set(slot, []byte(value)); err != nil {
		return fmt.Errorf("app: write %s: %w", slot, err)
	}
	s.notify(Change{Kind: ChangePrefs, ID: string(slot)})
	return nil
}
