package scenario

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/collide/internal/collision"
	"github.com/vovakirdan/collide/internal/core"
)

// ErrInvalidShape is returned for shapes that cannot be evaluated.
var ErrInvalidShape = errors.New("invalid shape")

// YAMLSet represents the YAML structure of a scenario file.
type YAMLSet struct {
	ID    string     `yaml:"id"`
	Title string     `yaml:"title,omitempty"`
	Cases []YAMLCase `yaml:"cases"`
}

// YAMLCase represents a single case in YAML format.
type YAMLCase struct {
	Name   string    `yaml:"name"`
	A      YAMLShape `yaml:"a"`
	B      YAMLShape `yaml:"b"`
	Expect *bool     `yaml:"expect,omitempty"`
}

// YAMLShape represents one operand in YAML format.
type YAMLShape struct {
	Kind     string   `yaml:"kind,omitempty"`
	X        float64  `yaml:"x"`
	Y        float64  `yaml:"y"`
	W        float64  `yaml:"w"`
	H        float64  `yaml:"h"`
	Angle    float64  `yaml:"angle,omitempty"`
	AngleDeg *float64 `yaml:"angle_deg,omitempty"`
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

// ParseYAML parses a scenario file. fallbackID is used when the document has
// no id of its own.
func ParseYAML(data []byte, fallbackID string) (Set, error) {
	var ys YAMLSet
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Set{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	set := Set{
		ID:    ys.ID,
		Title: ys.Title,
		Cases: make([]Case, 0, len(ys.Cases)),
	}
	if set.ID == "" {
		set.ID = fallbackID
	}

	for i, yc := range ys.Cases {
		name := yc.Name
		if name == "" {
			name = "case " + strconv.Itoa(i+1)
		}
		a, err := yc.A.shape()
		if err != nil {
			return Set{}, fmt.Errorf("case %q shape a: %w", name, err)
		}
		b, err := yc.B.shape()
		if err != nil {
			return Set{}, fmt.Errorf("case %q shape b: %w", name, err)
		}
		set.Cases = append(set.Cases, Case{Name: name, A: a, B: b, Expect: yc.Expect})
	}

	return set, nil
}

func (ys YAMLShape) shape() (Shape, error) {
	r := core.NewRect(ys.X, ys.Y, ys.W, ys.H)
	if err := r.Validate(); err != nil {
		return Shape{}, err
	}

	kind, ok := collision.ParseKind(ys.Kind)
	s := Shape{Kind: kind, Rect: r, Angle: ys.Angle}
	if !ok {
		s.RawKind = ys.Kind
	}
	if ys.AngleDeg != nil {
		s.Angle = *ys.AngleDeg * math.Pi / 180
	}
	if math.IsNaN(s.Angle) || math.IsInf(s.Angle, 0) {
		return Shape{}, fmt.Errorf("%w: angle %v", ErrInvalidShape, s.Angle)
	}
	return s, nil
}

// EncodeYAML writes the set in canonical form: radians only, axis-aligned
// shapes without an angle.
func EncodeYAML(set Set) ([]byte, error) {
	ys := YAMLSet{
		ID:    set.ID,
		Title: set.Title,
		Cases: make([]YAMLCase, len(set.Cases)),
	}
	for i, c := range set.Cases {
		ys.Cases[i] = YAMLCase{
			Name:   c.Name,
			A:      toYAMLShape(c.A),
			B:      toYAMLShape(c.B),
			Expect: c.Expect,
		}
	}
	return yaml.Marshal(ys)
}

func toYAMLShape(s Shape) YAMLShape {
	ys := YAMLShape{
		Kind: s.KindName(),
		X:    s.Rect.X,
		Y:    s.Rect.Y,
		W:    s.Rect.W,
		H:    s.Rect.H,
	}
	if s.Kind != collision.KindAxisAlignedBox {
		ys.Angle = s.Angle
	}
	return ys
}

// Digest fingerprints the cases of a set. Two sets with the same cases share a
// digest however their files were formatted.
func Digest(set Set) string {
	// Identity is the case list; the id and title are labels.
	set.ID, set.Title, set.Source = "", "", ""
	data, err := EncodeYAML(set)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
