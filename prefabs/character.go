package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCharacter wraps every descriptor validation failure.
var ErrInvalidCharacter = errors.New("prefabs: invalid character")

// Vec2 decodes from `[x, y]` or `{x: .., y: ..}`.
type Vec2 struct {
	X float64
	Y float64
}

func (v *Vec2) UnmarshalYAML(node *yaml.Node) error {
	vals, err := decodeVector(node, 2, 2, "x", "y")
	if err != nil {
		return err
	}
	v.X, v.Y = vals[0], vals[1]
	return nil
}

// Vec3 decodes from `[x, y]`, `[x, y, z]` or a mapping of x/y/z. Missing
// components are zero.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v *Vec3) UnmarshalYAML(node *yaml.Node) error {
	vals, err := decodeVector(node, 2, 3, "x", "y", "z")
	if err != nil {
		return err
	}
	v.X, v.Y, v.Z = vals[0], vals[1], vals[2]
	return nil
}

func decodeVector(node *yaml.Node, minLen, maxLen int, keys ...string) ([]float64, error) {
	out := make([]float64, len(keys))
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) < minLen || len(node.Content) > maxLen {
			return nil, fmt.Errorf("line %d: vector needs %d to %d components, got %d", node.Line, minLen, maxLen, len(node.Content))
		}
		for i, item := range node.Content {
			f, err := parseFloat(item)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			idx := -1
			for k, name := range keys {
				if key == name {
					idx = k
					break
				}
			}
			if idx < 0 {
				return nil, fmt.Errorf("line %d: field %s not found in vector", node.Content[i].Line, key)
			}
			f, err := parseFloat(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[idx] = f
		}
	default:
		return nil, fmt.Errorf("line %d: vector must be a sequence or mapping", node.Line)
	}
	return out, nil
}

func parseFloat(node *yaml.Node) (float64, error) {
	if node.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("line %d: vector component must be a number", node.Line)
	}
	f, err := strconv.ParseFloat(node.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: vector component %q: %w", node.Line, node.Value, err)
	}
	return f, nil
}

// SpriteSheetSpec locates a sprite sheet and its uniform cell grid.
type SpriteSheetSpec struct {
	Path     string `yaml:"path"`
	GridSize Vec2   `yaml:"grid-size"`
	Rows     int    `yaml:"rows"`
	Columns  int    `yaml:"columns"`
}

func (s SpriteSheetSpec) validate() error {
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("sprite-sheet: path is required")
	}
	if s.GridSize.X <= 0 || s.GridSize.Y <= 0 {
		return fmt.Errorf("sprite-sheet %s: grid-size must be positive, got [%g, %g]", s.Path, s.GridSize.X, s.GridSize.Y)
	}
	if s.GridSize.X != math.Trunc(s.GridSize.X) || s.GridSize.Y != math.Trunc(s.GridSize.Y) {
		return fmt.Errorf("sprite-sheet %s: grid-size must be whole pixels, got [%g, %g]", s.Path, s.GridSize.X, s.GridSize.Y)
	}
	if s.Rows <= 0 || s.Columns <= 0 {
		return fmt.Errorf("sprite-sheet %s: rows and columns must be positive", s.Path)
	}
	return nil
}

// LayerSpec is a sub-layer composited over the base sprite.
type LayerSpec struct {
	SpriteSheet *SpriteSheetSpec    `yaml:"sprite-sheet"`
	Anims       map[string][]uint32 `yaml:"anims"`
	Offset      Vec3                `yaml:"offset"`
}

// CharacterSpec is a parsed `*.character.yaml` descriptor. It is shared
// read-only by every instance of the character.
type CharacterSpec struct {
	Name        string              `yaml:"name"`
	SpriteSheet *SpriteSheetSpec    `yaml:"sprite-sheet"`
	Anims       map[string][]uint32 `yaml:"anims"`
	Layers      []LayerSpec         `yaml:"layers"`
}

// Validate checks the fields the schema marks as required.
func (c *CharacterSpec) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil spec", ErrInvalidCharacter)
	}
	if c.SpriteSheet == nil {
		return fmt.Errorf("%w: sprite-sheet is required", ErrInvalidCharacter)
	}
	if err := c.SpriteSheet.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCharacter, err)
	}
	if c.Anims == nil {
		return fmt.Errorf("%w: anims is required", ErrInvalidCharacter)
	}
	for i, layer := range c.Layers {
		if layer.SpriteSheet == nil {
			return fmt.Errorf("%w: layers[%d]: sprite-sheet is required", ErrInvalidCharacter, i)
		}
		if err := layer.SpriteSheet.validate(); err != nil {
			return fmt.Errorf("%w: layers[%d]: %v", ErrInvalidCharacter, i, err)
		}
		if layer.Anims == nil {
			return fmt.Errorf("%w: layers[%d]: anims is required", ErrInvalidCharacter, i)
		}
	}
	return nil
}

// ParseCharacterSpec decodes a descriptor. Unknown fields are rejected.
func ParseCharacterSpec(data []byte) (*CharacterSpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var spec CharacterSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCharacter, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadCharacterSpec reads and parses a descriptor from disk or the embedded
// prefabs.
func LoadCharacterSpec(name string) (*CharacterSpec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	spec, err := ParseCharacterSpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: parse %s: %w", name, err)
	}
	return spec, nil
}

// IsCharacterFile reports whether path uses a character descriptor
// extension.
func IsCharacterFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(base, ".character.yaml") || strings.HasSuffix(base, ".character.yml")
}
