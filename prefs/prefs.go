// Package prefs reads the two user preferences the scenes start from.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Store is a read-only view of saved preferences. A false second result
// means the value was never saved.
type Store interface {
	MandelbrotAccentColorIndex() (int, bool)
	MengerResolutionIndex() (int, bool)
}

// Values is the on-disk preference file. The zero value is an empty store.
type Values struct {
	AccentColor *int `json:"mandelbrotAccentColorIndex,omitempty"`
	Resolution  *int `json:"mengerResolutionIndex,omitempty"`
}

func (v *Values) MandelbrotAccentColorIndex() (int, bool) {
	if v == nil || v.AccentColor == nil {
		return 0, false
	}
	return *v.AccentColor, true
}

func (v *Values) MengerResolutionIndex() (int, bool) {
	if v == nil || v.Resolution == nil {
		return 0, false
	}
	return *v.Resolution, true
}

// SetMandelbrotAccentColorIndex records i for the next SaveFile.
func (v *Values) SetMandelbrotAccentColorIndex(i int) { v.AccentColor = &i }

// SetMengerResolutionIndex records i for the next SaveFile.
func (v *Values) SetMengerResolutionIndex(i int) { v.Resolution = &i }

// LoadFile reads preferences from a JSON file. A missing file is not an
// error and yields an empty store.
func LoadFile(path string) (*Values, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Values{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	v := &Values{}
	if err := json.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("failed to parse preferences %s: %w", path, err)
	}
	return v, nil
}

// SaveFile writes v as indented JSON.
func SaveFile(path string, v *Values) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
