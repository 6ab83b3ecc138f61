// Пакет экспорта содержимого редактора в PDF и Word (DOCX).
// Параметры страницы берутся из converterOptions конфигурации экспорта редактора.
//
// Основные возможности:
//   - Разбор формата страницы, ориентации и полей (mm, cm, in, pt, px).
//   - Генерация PDF с заголовками, списками, цитатами, кодом, изображениями и таблицами.
//   - Генерация DOCX (WordprocessingML) с теми же элементами и параметрами страницы.
//   - Загрузка изображений документа по HTTP с повторными попытками или из хранилища файлов.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aisa-it/richtext/internal/richtext/editorconfig"
)

const (
	Portrait  = "portrait"
	Landscape = "landscape"

	defaultFormat = "A4"
	defaultMargin = 20.0
)

// pageFormats - размеры страниц в миллиметрах в книжной ориентации.
var pageFormats = map[string][2]float64{
	"A3":      {297, 420},
	"A4":      {210, 297},
	"A5":      {148, 210},
	"LETTER":  {215.9, 279.4},
	"LEGAL":   {215.9, 355.6},
	"TABLOID": {279.4, 431.8},
}

type Margins struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// PageSetup - параметры страницы в миллиметрах.
type PageSetup struct {
	Format      string
	Orientation string
	// Размер страницы с учетом ориентации
	Width   float64
	Height  float64
	Margins Margins
}

// ContentWidth - ширина области текста.
func (p PageSetup) ContentWidth() float64 {
	return p.Width - p.Margins.Left - p.Margins.Right
}

type OptionError struct {
	Option string
	Value  string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid converter option %s: %q", e.Option, e.Value)
}

// NewPageSetup переводит converterOptions в параметры страницы. Пустые значения заменяются на A4, 20mm и книжную ориентацию.
func NewPageSetup(o editorconfig.ConverterOptions) (PageSetup, error) {
	setup := PageSetup{
		Format:      strings.ToUpper(strings.TrimSpace(o.Format)),
		Orientation: strings.ToLower(strings.TrimSpace(o.GetOrientation())),
	}
	if setup.Format == "" {
		setup.Format = defaultFormat
	}
	size, ok := pageFormats[setup.Format]
	if !ok {
		return PageSetup{}, &OptionError{Option: "format", Value: o.Format}
	}

	switch setup.Orientation {
	case "":
		setup.Orientation = Portrait
		fallthrough
	case Portrait:
		setup.Width, setup.Height = size[0], size[1]
	case Landscape:
		setup.Width, setup.Height = size[1], size[0]
	default:
		return PageSetup{}, &OptionError{Option: "orientation", Value: o.GetOrientation()}
	}

	margins := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"margin_top", o.MarginTop, &setup.Margins.Top},
		{"margin_bottom", o.MarginBottom, &setup.Margins.Bottom},
		{"margin_left", o.MarginLeft, &setup.Margins.Left},
		{"margin_right", o.MarginRight, &setup.Margins.Right},
	}
	for _, m := range margins {
		if strings.TrimSpace(m.raw) == "" {
			*m.dst = defaultMargin
			continue
		}
		v, err := ParseLength(m.raw)
		if err != nil || v < 0 {
			return PageSetup{}, &OptionError{Option: m.name, Value: m.raw}
		}
		*m.dst = v
	}

	if setup.ContentWidth() <= 0 || setup.Height-setup.Margins.Top-setup.Margins.Bottom <= 0 {
		return PageSetup{}, &OptionError{Option: "margins", Value: fmt.Sprintf("%+v", setup.Margins)}
	}

	return setup, nil
}

var lengthUnits = []struct {
	suffix string
	mm     float64
}{
	{"mm", 1},
	{"cm", 10},
	{"in", 25.4},
	{"pt", 25.4 / 72},
	{"px", 25.4 / 96},
}

// ParseLength переводит длину CSS в миллиметры. Число без единиц считается миллиметрами.
func ParseLength(raw string) (float64, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	k := 1.0
	for _, u := range lengthUnits {
		if v, ok := strings.CutSuffix(raw, u.suffix); ok {
			raw, k = strings.TrimSpace(v), u.mm
			break
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("length %q is not finite", raw)
	}
	return v * k, nil
}

// PxToMM переводит CSS-пиксели (96 dpi) в миллиметры.
func PxToMM(px float64) float64 {
	return px * 25.4 / 96
}
