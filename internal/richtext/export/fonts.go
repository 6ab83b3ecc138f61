package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Fonts - TrueType шрифты для PDF. Без них используются встроенные шрифты PDF (только cp1252).
type Fonts struct {
	Regular    []byte
	Bold       []byte
	Italic     []byte
	BoldItalic []byte
	Mono       []byte
}

var fontFiles = []struct {
	name     string
	required bool
	dst      func(f *Fonts) *[]byte
}{
	{"Regular.ttf", true, func(f *Fonts) *[]byte { return &f.Regular }},
	{"Bold.ttf", false, func(f *Fonts) *[]byte { return &f.Bold }},
	{"Italic.ttf", false, func(f *Fonts) *[]byte { return &f.Italic }},
	{"BoldItalic.ttf", false, func(f *Fonts) *[]byte { return &f.BoldItalic }},
	{"Mono.ttf", false, func(f *Fonts) *[]byte { return &f.Mono }},
}

// LoadFonts читает шрифты из каталога: Regular.ttf (обязательный), Bold.ttf, Italic.ttf, BoldItalic.ttf, Mono.ttf.
// Для пустого dir возвращает nil без ошибки.
func LoadFonts(dir string) (*Fonts, error) {
	if dir == "" {
		return nil, nil
	}

	f := &Fonts{}
	for _, ff := range fontFiles {
		data, err := os.ReadFile(filepath.Join(dir, ff.name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && !ff.required {
				continue
			}
			return nil, fmt.Errorf("load font %s: %w", ff.name, err)
		}
		*ff.dst(f) = data
	}

	if f.Bold == nil {
		f.Bold = f.Regular
	}
	if f.Italic == nil {
		f.Italic = f.Regular
	}
	if f.BoldItalic == nil {
		f.BoldItalic = f.Bold
	}
	return f, nil
}
