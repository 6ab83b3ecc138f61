package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlocks(t *testing.T) {
	doc, err := ParseString(`<h2>Title</h2>` +
		`<p style="text-align:center;margin-left:80px;">Hello <strong>bold <i>world</i></strong><br>next</p>` +
		`<blockquote><p>Quote</p></blockquote>` +
		`<pre><code class="language-go">fmt.Println("hi")</code></pre>` +
		`<hr>`)
	require.NoError(t, err)
	require.Len(t, doc.Elements, 5)

	h := doc.Elements[0].(Heading)
	assert.Equal(t, 2, h.Level)
	assert.Equal(t, "Title", h.Content[0].(Text).Content)

	p := doc.Elements[1].(Paragraph)
	assert.Equal(t, CenterAlign, p.Align)
	assert.Equal(t, 2, p.Indent)
	require.Len(t, p.Content, 5)
	assert.Equal(t, Text{Content: "Hello "}, p.Content[0])
	assert.Equal(t, Text{Content: "bold ", Strong: true}, p.Content[1])
	assert.Equal(t, Text{Content: "world", Strong: true, Italic: true}, p.Content[2])
	assert.Equal(t, HardBreak{}, p.Content[3])
	assert.Equal(t, "next", p.Content[4].(Text).Content)

	q := doc.Elements[2].(Quote)
	require.Len(t, q.Content, 1)
	assert.IsType(t, Paragraph{}, q.Content[0])

	assert.Equal(t, CodeBlock{Language: "go", Content: `fmt.Println("hi")`}, doc.Elements[3])
	assert.Equal(t, HorizontalLine{}, doc.Elements[4])
}

func TestParseTextStyles(t *testing.T) {
	doc, err := ParseString(`<p><span class="text-big" style="color:hsl(0, 100%, 50%);background-color:#ffff00;font-family:'Courier New', Courier, monospace;">styled</span>` +
		`<mark class="marker-yellow">marked</mark><a href="https://example.com/a">link</a><code>x</code><sub>2</sub><s>old</s></p>`)
	require.NoError(t, err)

	p := doc.Elements[0].(Paragraph)
	require.Len(t, p.Content, 6)

	styled := p.Content[0].(Text)
	assert.Equal(t, 22, styled.Size)
	assert.Equal(t, "Courier New", styled.Family)
	require.NotNil(t, styled.Color)
	assert.Equal(t, Color{R: 255, G: 0, B: 0, A: 255}, *styled.Color)
	require.NotNil(t, styled.BgColor)
	assert.Equal(t, "ffff00", styled.BgColor.Hex())

	assert.Equal(t, "marker-yellow", p.Content[1].(Text).Highlight)
	assert.Equal(t, "https://example.com/a", p.Content[2].(Text).URL.String())
	assert.True(t, p.Content[3].(Text).Code)
	assert.True(t, p.Content[4].(Text).Sub)
	assert.True(t, p.Content[5].(Text).Strikethrough)
}

func TestParseLists(t *testing.T) {
	doc, err := ParseString(`<ol style="list-style-type:lower-roman;" start="3"><li>one<ul><li>nested</li></ul></li><li><p>two</p></li></ol>` +
		`<ul class="todo-list"><li><label class="todo-list__label"><input type="checkbox" disabled="disabled" checked="checked"><span class="todo-list__label__description">done</span></label></li>` +
		`<li><label class="todo-list__label"><input type="checkbox" disabled="disabled"><span class="todo-list__label__description">todo</span></label></li></ul>`)
	require.NoError(t, err)
	require.Len(t, doc.Elements, 2)

	ol := doc.Elements[0].(List)
	assert.True(t, ol.Numbered)
	assert.Equal(t, "lower-roman", ol.StyleType)
	assert.Equal(t, 3, ol.Start)
	require.Len(t, ol.Elements, 2)
	require.Len(t, ol.Elements[0].Content, 2)
	assert.Equal(t, "one", ol.Elements[0].Content[0].(Paragraph).Content[0].(Text).Content)
	nested := ol.Elements[0].Content[1].(List)
	assert.False(t, nested.Numbered)
	assert.Equal(t, "nested", nested.Elements[0].Content[0].(Paragraph).Content[0].(Text).Content)

	todo := doc.Elements[1].(List)
	assert.True(t, todo.TaskList)
	require.Len(t, todo.Elements, 2)
	assert.True(t, todo.Elements[0].Checked)
	assert.False(t, todo.Elements[1].Checked)
	assert.Equal(t, "done", todo.Elements[0].Content[0].(Paragraph).Content[0].(Text).Content)
}

func TestParseFigures(t *testing.T) {
	doc, err := ParseString(`<figure class="image image-style-side image_resized" style="width:50%;"><img src="/api/file/a.png" alt="cat" width="800"><figcaption>Caption</figcaption></figure>` +
		`<figure class="table"><table><colgroup><col style="width:30%;"><col style="width:70%;"></colgroup>` +
		`<thead><tr><th>A</th><th>B</th></tr></thead><tbody><tr><td colspan="2" style="background-color:rgb(255,0,0);">wide</td></tr></tbody></table></figure>` +
		`<figure class="media"><oembed url="https://www.youtube.com/watch?v=1"></oembed></figure>` +
		`<p>inline <img src="https://example.com/b.png" style="width:120px;"></p>`)
	require.NoError(t, err)
	require.Len(t, doc.Elements, 4)

	img := doc.Elements[0].(*Image)
	assert.Equal(t, "/api/file/a.png", img.Src.String())
	assert.Equal(t, "cat", img.Alt)
	assert.Equal(t, 800, img.Width)
	assert.Equal(t, 50.0, img.WidthPercent)
	assert.Equal(t, ImageSide, img.Style)
	assert.Equal(t, RightAlign, img.Align)
	assert.Equal(t, "Caption", img.Caption[0].(Text).Content)

	table := doc.Elements[1].(Table)
	assert.Equal(t, []float64{30, 70}, table.ColWidth)
	assert.Equal(t, 1, table.HeaderRows)
	require.Len(t, table.Rows, 2)
	assert.True(t, table.Rows[0][0].Header)
	assert.Equal(t, 2, table.Rows[1][0].ColSpan)
	assert.Equal(t, 1, table.Rows[1][0].RowSpan)
	require.NotNil(t, table.Rows[1][0].BgColor)
	assert.Equal(t, "ff0000", table.Rows[1][0].BgColor.Hex())

	assert.Equal(t, Media{URL: "https://www.youtube.com/watch?v=1"}, doc.Elements[2])

	p := doc.Elements[3].(Paragraph)
	inline := p.Content[1].(*Image)
	assert.Equal(t, ImageInline, inline.Style)
	assert.Equal(t, 120, inline.Width)
}

func TestParseEmpty(t *testing.T) {
	doc, err := ParseString("")
	require.NoError(t, err)
	assert.Empty(t, doc.Elements)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", Color{255, 255, 255, 255}},
		{"#FFE4CC6B", Color{255, 228, 204, 107}},
		{"rgb(0, 245, 123)", Color{0, 245, 123, 255}},
		{"rgba(0,0,0,0.5)", Color{0, 0, 0, 128}},
		{"hsl(240, 100%, 50%)", Color{0, 0, 255, 255}},
		{"hsl(0,0%,100%)", Color{255, 255, 255, 255}},
		{"Black", Color{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}

	for _, bad := range []string{"", "#12", "cmyk(1,2,3,4)", "rgb(1,2)"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestColorJSON(t *testing.T) {
	c := Color{R: 244, G: 244, B: 255, A: 100}
	d, err := json.Marshal(c)
	require.NoError(t, err)

	var newC Color
	require.NoError(t, json.Unmarshal(d, &newC))
	assert.Equal(t, c, newC)
}

func TestStripSuggestionHighlights(t *testing.T) {
	raw := `<p>Keep <span class="ck-suggestion-marker-insertion ck-suggestion-marker" data-suggestion="e1:u1">added</span>` +
		`<suggestion-start name="insertion:e2:u1"></suggestion-start>text<suggestion-end name="insertion:e2:u1"></suggestion-end></p>`

	assert.True(t, HasSuggestionHighlights(raw))

	out, err := StripSuggestionHighlights(raw)
	require.NoError(t, err)
	assert.Equal(t, `<p>Keep addedtext</p>`, out)
	assert.False(t, HasSuggestionHighlights(out))
}
