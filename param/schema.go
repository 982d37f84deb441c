// SPDX-License-Identifier: MIT
// Package: paramset/param
//
// schema.go — declarative registry construction from YAML documents.
//
// Design:
//   • The YAML document carries the declarative subset of Config; every
//     callback slot is referenced by name and resolved against a Library.
//   • Builtin vtype adapters and helpers are preregistered, so plain
//     schemas load with an empty Library.
//   • Unknown references abort loading with ErrUnknownReference; a schema
//     never half-loads.
//
// Example document:
//
//	complement: complement
//	groups:
//	  window: [width, height]
//	params:
//	  - name: width
//	    type: int
//	    max: 1
//	  - name: height
//	    use: width
//	  - name: tags
//	    composite: set
//	    complement_func: set

package param

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/paramset/vtype"
)

// Library resolves by-name callback references in YAML schemas. Zero
// value is usable; builtins are always consulted as a fallback.
type Library struct {
	Types       map[string]vtype.Adapter
	Composites  map[string]vtype.Adapter
	Formats     map[string]FormatFunc
	Defaults    map[string]DefaultFunc
	Consumers   map[string]ConsumerFunc
	Universes   map[string]UniverseFunc
	Complements map[string]ComplementFunc
	Unwinds     map[string]UnwindFunc
}

// Builtin resolution tables. Schema files may reference these names
// without registering anything.
var (
	builtinTypes = map[string]vtype.Adapter{
		"string": vtype.String,
		"int":    vtype.Int,
		"float":  vtype.Float,
		"bool":   vtype.Bool,
		"time":   vtype.Time,
	}
	builtinComposites = map[string]vtype.Adapter{
		"set":   vtype.StringSet,
		"range": vtype.IntRange,
	}
	builtinComplements = map[string]ComplementFunc{
		"set": vtype.SetComplement,
	}
)

// schemaDoc mirrors Config with by-name callback slots.
type schemaDoc struct {
	Complement string              `yaml:"complement"`
	Groups     map[string][]string `yaml:"groups"`
	Params     []schemaParam       `yaml:"params"`
}

type schemaParam struct {
	Name           string   `yaml:"name"`
	Use            string   `yaml:"use"`
	Type           string   `yaml:"type"`
	Composite      string   `yaml:"composite"`
	Format         string   `yaml:"format"`
	FormatFunc     string   `yaml:"format_func"`
	Min            int      `yaml:"min"`
	Max            int      `yaml:"max"`
	Shift          bool     `yaml:"shift"`
	Strict         bool     `yaml:"strict"`
	Empty          bool     `yaml:"empty"`
	Reverse        bool     `yaml:"reverse"`
	Depends        []string `yaml:"depends"`
	Conflicts      []string `yaml:"conflicts"`
	Consumes       []string `yaml:"consumes"`
	Groups         []string `yaml:"groups"`
	Default        string   `yaml:"default"`
	Consumer       string   `yaml:"consumer"`
	Universe       string   `yaml:"universe"`
	ComplementFunc string   `yaml:"complement_func"`
	Unwind         string   `yaml:"unwind"`
}

// LoadConfig unmarshals a YAML schema document and resolves its callback
// references against lib (builtins as fallback), producing a Config ready
// for New.
func LoadConfig(data []byte, lib Library) (Config, error) {
	var doc schemaDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("param: schema: %w", err)
	}

	cfg := Config{
		Complement: doc.Complement,
		Groups:     doc.Groups,
		Params:     make([]Descriptor, 0, len(doc.Params)),
	}
	for _, p := range doc.Params {
		d, err := lib.resolve(p)
		if err != nil {
			return Config{}, err
		}
		cfg.Params = append(cfg.Params, d)
	}
	return cfg, nil
}

// LoadRegistry is LoadConfig followed by New.
func LoadRegistry(data []byte, lib Library) (*Registry, error) {
	cfg, err := LoadConfig(data, lib)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// resolve maps one schema parameter onto a Descriptor, resolving every
// by-name slot.
func (l Library) resolve(p schemaParam) (Descriptor, error) {
	d := Descriptor{
		Name:      p.Name,
		Use:       p.Use,
		Format:    p.Format,
		Min:       p.Min,
		Max:       p.Max,
		Shift:     p.Shift,
		Strict:    p.Strict,
		Empty:     p.Empty,
		Reverse:   p.Reverse,
		Depends:   p.Depends,
		Conflicts: p.Conflicts,
		Consumes:  p.Consumes,
		Groups:    p.Groups,
	}

	if p.Type != "" {
		t, ok := l.Types[p.Type]
		if !ok {
			t, ok = builtinTypes[p.Type]
		}
		if !ok {
			return Descriptor{}, refError(p.Name, "type", p.Type)
		}
		d.Type = t
	}
	if p.Composite != "" {
		c, ok := l.Composites[p.Composite]
		if !ok {
			c, ok = builtinComposites[p.Composite]
		}
		if !ok {
			return Descriptor{}, refError(p.Name, "composite", p.Composite)
		}
		d.Composite = c
	}
	if p.FormatFunc != "" {
		f, ok := l.Formats[p.FormatFunc]
		if !ok {
			return Descriptor{}, refError(p.Name, "format_func", p.FormatFunc)
		}
		d.FormatFunc = f
	}
	if p.Default != "" {
		f, ok := l.Defaults[p.Default]
		if !ok {
			return Descriptor{}, refError(p.Name, "default", p.Default)
		}
		d.Default = f
	}
	if p.Consumer != "" {
		f, ok := l.Consumers[p.Consumer]
		if !ok {
			return Descriptor{}, refError(p.Name, "consumer", p.Consumer)
		}
		d.Consumer = f
	}
	if p.Universe != "" {
		f, ok := l.Universes[p.Universe]
		if !ok {
			return Descriptor{}, refError(p.Name, "universe", p.Universe)
		}
		d.Universe = f
	}
	if p.ComplementFunc != "" {
		f, ok := l.Complements[p.ComplementFunc]
		if !ok {
			f, ok = builtinComplements[p.ComplementFunc]
		}
		if !ok {
			return Descriptor{}, refError(p.Name, "complement_func", p.ComplementFunc)
		}
		d.Complement = f
	}
	if p.Unwind != "" {
		f, ok := l.Unwinds[p.Unwind]
		if !ok {
			return Descriptor{}, refError(p.Name, "unwind", p.Unwind)
		}
		d.Unwind = f
	}

	return d, nil
}

func refError(name, slot, ref string) error {
	return fmt.Errorf("param: %s: %s %q: %w", name, slot, ref, ErrUnknownReference)
}
