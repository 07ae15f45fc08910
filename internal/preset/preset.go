// Package preset reads and writes full parameter snapshots as YAML.
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"voxel-terrain/internal/config"
)

// Preset is a named State.
type Preset struct {
	Name         string `yaml:"name,omitempty"`
	config.State `yaml:",inline"`
}

// Encode writes p as YAML.
func Encode(w io.Writer, p Preset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	return enc.Close()
}

// Marshal returns p as YAML.
func Marshal(p Preset) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a preset from r. Keys missing from the document keep their
// value from base; unknown keys are an error. The result is validated.
func Decode(r io.Reader, base config.State) (Preset, error) {
	p := Preset{State: base}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return p, nil
		}
		return Preset{}, fmt.Errorf("decode preset: %w", err)
	}
	if err := p.Terrain.Validate(); err != nil {
		return Preset{}, fmt.Errorf("preset terrain: %w", err)
	}
	if !p.Camera.Finite() {
		return Preset{}, errors.New("preset camera: parameters must be finite")
	}
	return p, nil
}

// Load reads a preset file over base.
func Load(path string, base config.State) (Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Preset{}, err
	}
	defer f.Close()
	return Decode(f, base)
}

// Save writes p to path.
func Save(path string, p Preset) error {
	b, err := Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Updates returns the updates that move from to p's state.
func (p Preset) Updates(from config.State) []config.Update {
	return config.Diff(from, p.State)
}
