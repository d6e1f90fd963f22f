package physics

// color.go: CSS-style colour round-trip for the Snapshot drawing hints
// consumed by the excluded rendering collaborator (§6's Snapshot
// contract). Grounded on gazed-vu/texture.go's use of simple textual
// asset descriptors rather than a binary colour type, generalized to the
// "rgb()"/"rgba()" form the spec names explicitly.

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Color is an sRGB colour with an optional alpha channel, serialized as
// the CSS textual forms "rgb(r,g,b)" and "rgba(r,g,b,a)".
type Color struct {
	R, G, B int
	A       *float64 // nil selects the "rgb(...)" form (fully opaque).
}

// RGB returns an opaque Color.
func RGB(r, g, b int) Color { return Color{R: r, G: g, B: b} }

// RGBA returns a Color with an explicit alpha in [0,1].
func RGBA(r, g, b int, a float64) Color { return Color{R: r, G: g, B: b, A: &a} }

// String renders the colour in its CSS textual form.
func (c Color) String() string {
	if c.A != nil {
		return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, trimFloat(*c.A))
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func trimFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	return s
}

// ParseColor parses the CSS textual forms "rgb(r,g,b)" and
// "rgba(r,g,b,a)" produced by String.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	var alpha bool
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		alpha = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "rgba("), ")")
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		s = strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")")
	default:
		return Color{}, fmt.Errorf("physics: invalid colour %q", s)
	}

	parts := strings.Split(s, ",")
	want := 3
	if alpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("physics: invalid colour %q", s)
	}

	ints := make([]int, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return Color{}, fmt.Errorf("physics: invalid colour %q: %w", s, err)
		}
		ints[i] = v
	}
	c := Color{R: ints[0], G: ints[1], B: ints[2]}
	if alpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Color{}, fmt.Errorf("physics: invalid colour %q: %w", s, err)
		}
		c.A = &a
	}
	return c, nil
}

// MarshalJSON renders the colour as its CSS textual form, so persisted
// snapshots carry colours the way the excluded storage collaborator
// expects them (§6).
func (c Color) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

// UnmarshalJSON parses the CSS textual form produced by MarshalJSON.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
