package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/aisa-it/richtext/internal/richtext/editor"
	"github.com/aisa-it/richtext/internal/richtext/editorconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImages struct {
	data   []byte
	opened []string
}

func newFakeImages(t *testing.T) *fakeImages {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := range 40 {
		for y := range 20 {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &fakeImages{data: buf.Bytes()}
}

func (f *fakeImages) OpenImage(_ context.Context, src *url.URL) (io.ReadCloser, string, error) {
	f.opened = append(f.opened, src.String())
	if strings.Contains(src.Path, "missing") {
		return nil, "", errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(f.data)), "image/png", nil
}

const sampleHTML = `<h1>Отчет</h1>` +
	`<p>Plain <strong>bold</strong> <a href="https://example.com">link</a><sup>2</sup></p>` +
	`<ul><li>one<ul><li>nested</li></ul></li><li>two</li></ul>` +
	`<ol style="list-style-type:lower-roman;" start="3"><li>three</li></ol>` +
	`<ul class="todo-list"><li><label class="todo-list__label"><input type="checkbox" checked="checked"></label>done</li></ul>` +
	`<blockquote><p>quoted</p></blockquote>` +
	`<pre><code class="language-go">a := 1
b := 2</code></pre>` +
	`<hr>` +
	`<figure class="image"><img src="/api/file/pic.png" alt="pic"><figcaption>Caption</figcaption></figure>` +
	`<figure class="image"><img src="/api/file/missing.png" alt="gone"></figure>` +
	`<figure class="table"><table><thead><tr><th>A</th><th>B</th></tr></thead>` +
	`<tbody><tr><td rowspan="2">x</td><td>y</td></tr><tr><td>z</td></tr><tr><td colspan="2">wide</td></tr></tbody></table></figure>`

func sampleDocument(t *testing.T) *editor.Document {
	doc, err := editor.ParseString(sampleHTML)
	require.NoError(t, err)
	return doc
}

func TestNewPageSetup(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setup, err := NewPageSetup(editorconfig.ConverterOptions{})
		require.NoError(t, err)
		assert.Equal(t, "A4", setup.Format)
		assert.Equal(t, Portrait, setup.Orientation)
		assert.Equal(t, 210.0, setup.Width)
		assert.Equal(t, 297.0, setup.Height)
		assert.Equal(t, Margins{Left: 20, Top: 20, Right: 20, Bottom: 20}, setup.Margins)
		assert.Equal(t, 170.0, setup.ContentWidth())
	})

	t.Run("landscape", func(t *testing.T) {
		setup, err := NewPageSetup(editorconfig.ConverterOptions{
			Format:          "a5",
			PageOrientation: "Landscape",
			MarginLeft:      "1cm",
			MarginTop:       "72pt",
		})
		require.NoError(t, err)
		assert.Equal(t, "A5", setup.Format)
		assert.Equal(t, Landscape, setup.Orientation)
		assert.Equal(t, 210.0, setup.Width)
		assert.Equal(t, 148.0, setup.Height)
		assert.InDelta(t, 10, setup.Margins.Left, 1e-9)
		assert.InDelta(t, 25.4, setup.Margins.Top, 1e-9)
		assert.Equal(t, 20.0, setup.Margins.Right)
	})

	t.Run("orientation field", func(t *testing.T) {
		setup, err := NewPageSetup(editorconfig.ConverterOptions{Orientation: "landscape"})
		require.NoError(t, err)
		assert.Equal(t, 297.0, setup.Width)
	})

	invalid := []struct {
		name   string
		opts   editorconfig.ConverterOptions
		option string
	}{
		{"format", editorconfig.ConverterOptions{Format: "B7"}, "format"},
		{"orientation", editorconfig.ConverterOptions{Orientation: "diagonal"}, "orientation"},
		{"margin", editorconfig.ConverterOptions{MarginTop: "abc"}, "margin_top"},
		{"negative margin", editorconfig.ConverterOptions{MarginLeft: "-5mm"}, "margin_left"},
		{"nan margin", editorconfig.ConverterOptions{MarginLeft: "NaN"}, "margin_left"},
		{"infinite margin", editorconfig.ConverterOptions{MarginBottom: "+Inf mm"}, "margin_bottom"},
		{"no content area", editorconfig.ConverterOptions{MarginLeft: "110mm", MarginRight: "110mm"}, "margins"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPageSetup(tt.opts)
			var optErr *OptionError
			require.ErrorAs(t, err, &optErr)
			assert.Equal(t, tt.option, optErr.Option)
		})
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"20mm", 20},
		{"2cm", 20},
		{"1in", 25.4},
		{"72pt", 25.4},
		{"96px", 25.4},
		{" 15 ", 15},
		{"1.5 CM", 15},
	}
	for _, tt := range tests {
		got, err := ParseLength(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.InDelta(t, tt.want, got, 1e-9, tt.raw)
	}

	for _, raw := range []string{"wide", "NaN", "nanmm", "Inf", "-infinity cm", "1e400mm"} {
		_, err := ParseLength(raw)
		assert.Error(t, err, raw)
	}
}

func TestListMarker(t *testing.T) {
	items := make([]editor.ListElement, 4)

	assert.Equal(t, "•", listMarker(editor.List{Elements: items}, 0, items[0]))
	assert.Equal(t, "-", listMarker(editor.List{StyleType: "square"}, 0, items[0]))
	assert.Equal(t, "3.", listMarker(editor.List{Numbered: true}, 2, items[2]))
	assert.Equal(t, "6.", listMarker(editor.List{Numbered: true, Start: 5}, 1, items[1]))
	assert.Equal(t, "4.", listMarker(editor.List{Numbered: true, Reversed: true, Elements: items}, 0, items[0]))
	assert.Equal(t, "iv.", listMarker(editor.List{Numbered: true, StyleType: "lower-roman"}, 3, items[3]))
	assert.Equal(t, "B.", listMarker(editor.List{Numbered: true, StyleType: "upper-latin"}, 1, items[1]))
	assert.Equal(t, "01.", listMarker(editor.List{Numbered: true, StyleType: "decimal-leading-zero"}, 0, items[0]))
	assert.Equal(t, "[x]", listMarker(editor.List{TaskList: true}, 0, editor.ListElement{Checked: true}))
	assert.Equal(t, "[ ]", listMarker(editor.List{TaskList: true}, 0, editor.ListElement{}))
}

func TestToRoman(t *testing.T) {
	assert.Equal(t, "XIV", toRoman(14))
	assert.Equal(t, "MCMXCIX", toRoman(1999))
	assert.Equal(t, "0", toRoman(0))
	assert.Equal(t, "z", toLatin(26))
	assert.Equal(t, "aa", toLatin(27))
}

func TestTableLayout(t *testing.T) {
	doc := sampleDocument(t)
	var table editor.Table
	for _, el := range doc.Elements {
		if tbl, ok := el.(editor.Table); ok {
			table = tbl
		}
	}
	require.Len(t, table.Rows, 4)

	cells, cols := tableLayout(table)
	assert.Equal(t, 2, cols)

	var positions [][2]int
	for _, c := range cells {
		positions = append(positions, [2]int{c.row, c.col})
	}
	// z сдвигается вправо ячейкой с rowspan
	assert.Equal(t, [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 1}, {3, 0}}, positions)

	widths := columnWidths(table, cols, 170)
	assert.InDeltaSlice(t, []float64{85, 85}, widths, 1e-9)

	widths = columnWidths(editor.Table{ColWidth: []float64{25}}, 3, 100)
	assert.InDeltaSlice(t, []float64{25, 37.5, 37.5}, widths, 1e-9)
}

func TestPDF(t *testing.T) {
	images := newFakeImages(t)
	setup, err := NewPageSetup(editorconfig.ConverterOptions{})
	require.NoError(t, err)

	var out bytes.Buffer
	err = NewExporter(images, nil).PDF(context.Background(), sampleDocument(t), setup, "Report", &out)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
	assert.Contains(t, images.opened, "/api/file/pic.png")
	assert.Contains(t, images.opened, "/api/file/missing.png")
}

func TestPDFEmptyDocument(t *testing.T) {
	setup, err := NewPageSetup(editorconfig.ConverterOptions{Orientation: Landscape})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, NewExporter(nil, nil).PDF(context.Background(), &editor.Document{}, setup, "", &out))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
}

func readZip(t *testing.T, data []byte) map[string]string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := map[string]string{}
	for _, f := range zr.File {
		r, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(r)
		require.NoError(t, err)
		r.Close()
		files[f.Name] = string(content)
	}
	return files
}

func TestWord(t *testing.T) {
	images := newFakeImages(t)
	setup, err := NewPageSetup(editorconfig.ConverterOptions{PageOrientation: Landscape})
	require.NoError(t, err)

	var out bytes.Buffer
	err = NewExporter(images, nil).Word(context.Background(), sampleDocument(t), setup, "Q&A", &out)
	require.NoError(t, err)

	files := readZip(t, out.Bytes())
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"word/document.xml",
		"word/styles.xml",
		"word/numbering.xml",
		"word/_rels/document.xml.rels",
		"word/media/image1.png",
	} {
		assert.Contains(t, files, name)
	}
	assert.NotContains(t, files, "word/media/image2.png")

	doc := files["word/document.xml"]
	assert.Contains(t, doc, `<w:pgSz w:w="16838" w:h="11906" w:orient="landscape"/>`)
	assert.Contains(t, doc, `<w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134"`)
	assert.Contains(t, doc, `<w:pStyle w:val="Heading1"/>`)
	assert.Contains(t, doc, `<w:pStyle w:val="Quote"/>`)
	assert.Contains(t, doc, `<w:vertAlign w:val="superscript"/>`)
	assert.Contains(t, doc, `<w:vMerge w:val="restart"/>`)
	assert.Contains(t, doc, `<w:gridSpan w:val="2"/>`)
	assert.Contains(t, doc, `<w:tblHeader/>`)
	assert.Contains(t, doc, `☑ `)
	assert.Contains(t, doc, `[gone]`)
	assert.Contains(t, doc, `<w:ilvl w:val="1"/>`)

	rels := files["word/_rels/document.xml.rels"]
	assert.Contains(t, rels, `Target="https://example.com" TargetMode="External"`)
	assert.Contains(t, rels, `Target="media/image1.png"`)

	assert.Contains(t, files["word/numbering.xml"], `<w:numFmt w:val="lowerRoman"/>`)
	assert.Contains(t, files["word/numbering.xml"], `<w:start w:val="3"/>`)
	assert.Contains(t, files["docProps/core.xml"], `<dc:title>Q&amp;A</dc:title>`)
}

func TestWordPortraitDefaults(t *testing.T) {
	setup, err := NewPageSetup(editorconfig.ConverterOptions{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, NewExporter(nil, nil).Word(context.Background(), &editor.Document{}, setup, "", &out))

	doc := readZip(t, out.Bytes())["word/document.xml"]
	assert.Contains(t, doc, `<w:pgSz w:w="11906" w:h="16838"/>`)
	assert.Contains(t, doc, `<w:body><w:p/><w:sectPr>`)
}
