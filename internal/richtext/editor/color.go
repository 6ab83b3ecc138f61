package editor

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

var ErrUnsupportedColor = errors.New("unsupported color format")

var namedColors = map[string]Color{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"orange":      {255, 165, 0, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"transparent": {0, 0, 0, 0},
}

type Color color.RGBA

// ParseColor разбирает цвет CSS: #rgb, #rrggbb, #rrggbbaa, rgb(), rgba(), hsl(), hsla() и основные имена цветов.
// Палитра редактора по умолчанию задает цвета в hsl.
func ParseColor(raw string) (Color, error) {
	raw = strings.ToLower(strings.Trim(strings.TrimSpace(raw), `"`))
	if raw == "" {
		return Color{}, ErrUnsupportedColor
	}

	if c, ok := namedColors[raw]; ok {
		return c, nil
	}

	if strings.HasPrefix(raw, "#") {
		return parseHex(raw[1:])
	}

	name, args, ok := splitFunc(raw)
	if !ok {
		return Color{}, ErrUnsupportedColor
	}

	switch name {
	case "rgb", "rgba":
		if len(args) < 3 {
			return Color{}, ErrUnsupportedColor
		}
		c := Color{A: 255}
		for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
			v, err := parseChannel(args[i])
			if err != nil {
				return Color{}, err
			}
			*dst = v
		}
		if len(args) > 3 {
			a, err := parseAlpha(args[3])
			if err != nil {
				return Color{}, err
			}
			c.A = a
		}
		return c, nil
	case "hsl", "hsla":
		if len(args) < 3 {
			return Color{}, ErrUnsupportedColor
		}
		h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
		if err != nil {
			return Color{}, err
		}
		s, err := parsePercent(args[1])
		if err != nil {
			return Color{}, err
		}
		l, err := parsePercent(args[2])
		if err != nil {
			return Color{}, err
		}
		c := hslToRGB(h, s, l)
		if len(args) > 3 {
			a, err := parseAlpha(args[3])
			if err != nil {
				return Color{}, err
			}
			c.A = a
		}
		return c, nil
	}
	return Color{}, ErrUnsupportedColor
}

func parseHex(raw string) (Color, error) {
	if len(raw) == 3 || len(raw) == 4 {
		var sb strings.Builder
		for _, r := range raw {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		raw = sb.String()
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return Color{}, err
	}
	if len(b) != 3 && len(b) != 4 {
		return Color{}, ErrUnsupportedColor
	}
	c := Color{R: b[0], G: b[1], B: b[2], A: 255}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// splitFunc разбирает запись вида name(a, b, c) и name(a b c / d).
func splitFunc(raw string) (string, []string, bool) {
	open := strings.IndexByte(raw, '(')
	if open <= 0 || !strings.HasSuffix(raw, ")") {
		return "", nil, false
	}
	name := strings.TrimSpace(raw[:open])
	body := raw[open+1 : len(raw)-1]
	body = strings.NewReplacer(",", " ", "/", " ").Replace(body)
	return name, strings.Fields(body), true
}

func parseChannel(raw string) (uint8, error) {
	if strings.HasSuffix(raw, "%") {
		p, err := parsePercent(raw)
		if err != nil {
			return 0, err
		}
		return uint8(math.Round(p * 255)), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return clamp8(v), nil
}

func parseAlpha(raw string) (uint8, error) {
	if strings.HasSuffix(raw, "%") {
		p, err := parsePercent(raw)
		if err != nil {
			return 0, err
		}
		return uint8(math.Round(p * 255)), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return clamp8(v * 255), nil
}

func parsePercent(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
	if err != nil {
		return 0, err
	}
	return math.Max(0, math.Min(1, v/100)), nil
}

func clamp8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

func hslToRGB(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return Color{
		R: clamp8((r + m) * 255),
		G: clamp8((g + m) * 255),
		B: clamp8((b + m) * 255),
		A: 255,
	}
}

// Hex возвращает цвет в виде rrggbb без прозрачности.
func (c Color) Hex() string {
	return hex.EncodeToString([]byte{c.R, c.G, c.B})
}

func (c Color) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, "\"#%s\"", hex.EncodeToString([]byte{c.R, c.G, c.B, c.A})), nil
}

func (c *Color) UnmarshalJSON(data []byte) error {
	if string(data) == "null" || string(data) == `""` {
		return nil
	}

	cc, err := ParseColor(string(data))
	*c = cc

	return err
}
