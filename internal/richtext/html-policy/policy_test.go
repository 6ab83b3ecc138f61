package policy

import (
	"testing"

	"github.com/aisa-it/richtext/internal/richtext/editorconfig"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy(t *testing.T) {
	out := Default.Sanitize(`<p onclick="steal()" class="lead" style="text-align:center;position:fixed">text<script>alert(1)</script></p>`)
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "position")
	assert.Contains(t, out, `class="lead"`)
	assert.Contains(t, out, "text-align")
	assert.Contains(t, out, "text")

	out = Default.Sanitize(`<span data-mention="@user" style="color:hsl(0,100%,50%)">x</span>`)
	assert.Contains(t, out, `data-mention="@user"`)
	assert.Contains(t, out, "color")

	out = Default.Sanitize(`<a href="javascript:alert(1)">bad</a>`)
	assert.NotContains(t, out, "javascript")
}

func TestEditorMarkupSurvivesStrictSupport(t *testing.T) {
	p := New(editorconfig.HtmlSupport{})

	out := p.Sanitize(`<figure class="image image-style-side"><img src="/api/file/a.png" alt="a"><figcaption>cap</figcaption></figure>`)
	assert.Contains(t, out, `class="image image-style-side"`)
	assert.Contains(t, out, `src="/api/file/a.png"`)
	assert.Contains(t, out, "<figcaption>cap</figcaption>")

	out = p.Sanitize(`<ol start="3" style="list-style-type:lower-roman;"><li>x</li></ol>`)
	assert.Contains(t, out, `start="3"`)
	assert.Contains(t, out, "lower-roman")

	out = p.Sanitize(`<p class="custom" data-x="1">t</p>`)
	assert.NotContains(t, out, "custom")
	assert.NotContains(t, out, "data-x")
}

func TestAllowByName(t *testing.T) {
	p := New(editorconfig.HtmlSupport{
		Allow: []editorconfig.MatcherPattern{
			{Name: editorconfig.Literal("section"), Classes: true},
			{Name: editorconfig.Regexp("^h[1-6]$"), Attributes: true},
		},
	})

	out := p.Sanitize(`<section class="box"><h3 title="t" class="x">H</h3></section>`)
	assert.Contains(t, out, `<section class="box">`)
	assert.Contains(t, out, `title="t"`)
	assert.NotContains(t, out, `class="x"`)
}

func TestDisallow(t *testing.T) {
	hs := *editorconfig.Default().HtmlSupport
	hs.Disallow = []editorconfig.MatcherPattern{
		{Name: editorconfig.Literal("u")},
		{Name: editorconfig.Regexp("^h[1-6]$"), Styles: true},
	}
	p := New(hs)

	out := p.Sanitize(`<p><u>under <u>nested</u></u></p><h2 style="text-align:right" class="t">Title</h2>`)
	assert.NotContains(t, out, "<u>")
	assert.Contains(t, out, "under nested")
	assert.NotContains(t, out, "text-align")
	assert.Contains(t, out, `class="t"`)

	// исходные фильтры не меняются
	assert.Len(t, hs.Disallow, 2)
	assert.Len(t, p.HtmlSupport().Disallow, 2)
}

func TestSanitizeEmpty(t *testing.T) {
	assert.Equal(t, "", Default.Sanitize("  \n"))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Hello world", StripTagsPolicy.Sanitize(`<p>Hello <b>world</b></p>`))
}
