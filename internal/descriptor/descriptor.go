// Package descriptor reads Unreal project descriptors (.uproject files).
//
// Decoding is tolerant: module entries that are not objects or carry no
// string Name are skipped, and non-string platform entries are ignored,
// so a partially malformed descriptor still yields every usable field.
package descriptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNotObject is returned when the descriptor is valid JSON but its top
// level is not an object.
var ErrNotObject = errors.New("descriptor is not a JSON object")

// Module is a single entry of the descriptor's Modules list.
type Module struct {
	Name         string `json:"Name"`
	Type         string `json:"Type"`
	LoadingPhase string `json:"LoadingPhase,omitempty"`
}

// Descriptor is the subset of a .uproject file the validator consumes.
// It is read-only once returned by Parse.
type Descriptor struct {
	EngineAssociation string
	Modules           []Module
	TargetPlatforms   []string

	byName map[string]Module
}

// rawDescriptor mirrors the JSON layout with loosely typed fields.
type rawDescriptor struct {
	EngineAssociation any               `json:"EngineAssociation"`
	Modules           []json.RawMessage `json:"Modules"`
	TargetPlatforms   []any             `json:"TargetPlatforms"`
}

// Load reads and parses the descriptor at path.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes descriptor JSON. A leading UTF-8 BOM is ignored.
func Parse(data []byte) (*Descriptor, error) {
	data = stripBOM(data)

	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}
	if _, ok := top.(map[string]any); !ok {
		return nil, ErrNotObject
	}

	var raw rawDescriptor
	if err := json.Unmarshal(data, &raw); err != nil {
		// Modules or TargetPlatforms has the wrong shape; fall back to
		// field-by-field decoding so the remaining fields still count.
		raw = decodeLoose(top.(map[string]any))
	}

	d := &Descriptor{
		byName: make(map[string]Module),
	}
	if s, ok := raw.EngineAssociation.(string); ok {
		d.EngineAssociation = s
	}

	for _, entry := range raw.Modules {
		var fields map[string]any
		if err := json.Unmarshal(entry, &fields); err != nil || fields == nil {
			continue
		}
		name, _ := fields["Name"].(string)
		if name == "" {
			continue
		}
		m := Module{Name: name}
		m.Type, _ = fields["Type"].(string)
		m.LoadingPhase, _ = fields["LoadingPhase"].(string)

		d.Modules = append(d.Modules, m)
		d.byName[name] = m
	}

	for _, p := range raw.TargetPlatforms {
		if s, ok := p.(string); ok {
			d.TargetPlatforms = append(d.TargetPlatforms, s)
		}
	}

	return d, nil
}

// decodeLoose builds a rawDescriptor from an already decoded object,
// dropping fields whose type does not match.
func decodeLoose(obj map[string]any) rawDescriptor {
	raw := rawDescriptor{EngineAssociation: obj["EngineAssociation"]}

	if mods, ok := obj["Modules"].([]any); ok {
		for _, m := range mods {
			b, err := json.Marshal(m)
			if err != nil {
				continue
			}
			raw.Modules = append(raw.Modules, b)
		}
	}
	if plats, ok := obj["TargetPlatforms"].([]any); ok {
		raw.TargetPlatforms = plats
	}
	return raw
}

// Module returns the module declared under name. When a name is declared
// more than once the last declaration wins.
func (d *Descriptor) Module(name string) (Module, bool) {
	m, ok := d.byName[name]
	return m, ok
}

// HasPlatform reports whether platform is in TargetPlatforms.
func (d *Descriptor) HasPlatform(platform string) bool {
	for _, p := range d.TargetPlatforms {
		if p == platform {
			return true
		}
	}
	return false
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}
