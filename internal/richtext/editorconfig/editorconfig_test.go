package editorconfig

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aisa-it/richtext/internal/richtext/plugins"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	got  *SerializeOptions
	data string
	err  error
}

func (f *fakeSource) Serialize(opts SerializeOptions) ([]byte, error) {
	f.got = &opts
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.data), nil
}

func TestDefaultToolbarResolves(t *testing.T) {
	assert.Empty(t, Check(Default(), plugins.ClassicBuild()))
}

func TestArticleToolbarDegrades(t *testing.T) {
	cfg := Article()
	m := plugins.ClassicBuild()

	unresolved := Check(cfg, m)
	require.Len(t, unresolved, 1)
	assert.Equal(t, "specialCharacters", unresolved[0].Command)
	assert.Equal(t, "toolbar.items[22]", unresolved[0].Path)

	resolved := Resolve(cfg, m)
	assert.Empty(t, Check(resolved, m))
	assert.NotContains(t, resolved.Toolbar.Leaves(), "specialCharacters")
	assert.Len(t, resolved.Toolbar.Items, len(cfg.Toolbar.Items)-1)

	// исходная конфигурация не изменилась
	assert.Contains(t, cfg.Toolbar.Leaves(), "specialCharacters")
}

func TestResolveCollapsesSeparators(t *testing.T) {
	cfg := Config{Toolbar: Toolbar{Items: []ToolbarItem{
		Cmd("unknownA"),
		Cmd(Separator),
		Cmd("bold"),
		Cmd(Separator),
		Cmd("unknownB"),
		Cmd(Separator),
		Group("More", "threeVerticalDots", Cmd("unknownC"), Cmd(Separator)),
		Cmd("italic"),
		Cmd(Separator),
	}}}

	resolved := Resolve(cfg, plugins.ClassicBuild())
	b, err := json.Marshal(resolved.Toolbar)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":["bold","|","italic"]}`, string(b))
}

func TestDefaultLanguage(t *testing.T) {
	assert.Equal(t, "zh-cn", Default().Language)
	assert.Equal(t, "en", Article().Language)
}

func TestBuilds(t *testing.T) {
	assert.Equal(t, []string{BuildArticle, BuildClassic}, BuildNames())
	assert.True(t, HasBuild(BuildClassic))
	assert.False(t, HasBuild("inline"))

	_, ok := Build("inline")
	assert.False(t, ok)

	// каждая сборка создается заново, изменения не видны следующему вызову
	ec, ok := Build(BuildClassic)
	require.True(t, ok)
	ec.Language = "ru"
	ec.Toolbar.Items[0] = Cmd("bold")

	again, _ := Build(BuildClassic)
	assert.Equal(t, LanguageDefault, again.Language)
	assert.Equal(t, Default().Toolbar, again.Toolbar)
}

func TestMergePrecedence(t *testing.T) {
	base := Default()
	o := Overrides{
		LicenseKey:   Ptr("license"),
		Language:     Ptr("ru"),
		SimpleUpload: &SimpleUpload{UploadURL: "https://example.com/upload/"},
		Image:        &ImageConfig{Toolbar: Cmds("toggleImageCaption")},
	}

	merged := Merge(base, o)

	assert.Equal(t, "license", merged.LicenseKey)
	assert.Equal(t, "ru", merged.Language)
	assert.Equal(t, "https://example.com/upload/", merged.SimpleUpload.UploadURL)
	assert.Equal(t, Cmds("toggleImageCaption"), merged.Image.Toolbar)

	assert.Equal(t, base.Toolbar, merged.Toolbar)
	assert.Equal(t, base.Heading, merged.Heading)
	assert.Equal(t, base.Table, merged.Table)
	assert.Equal(t, base.HtmlSupport, merged.HtmlSupport)
	assert.Equal(t, base.ExportPdf.ConverterOptions, merged.ExportPdf.ConverterOptions)
	assert.Equal(t, base.ExportWord.ConverterOptions, merged.ExportWord.ConverterOptions)

	// без переопределений получаем значение по умолчанию
	b1, err := Merge(base, Overrides{}).JSON()
	require.NoError(t, err)
	b2, err := base.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(b2), string(b1))
}

func TestMergeDoesNotAlias(t *testing.T) {
	base := Default()
	o := Overrides{Image: &ImageConfig{Toolbar: Cmds("toggleImageCaption")}}
	merged := Merge(base, o)

	merged.Toolbar.Items[0] = Cmd("changed")
	merged.Heading.Options[0].Title = "changed"
	merged.Image.Toolbar[0] = Cmd("changed")

	assert.Equal(t, "undo", base.Toolbar.Items[0].Command)
	assert.Equal(t, "Paragraph", base.Heading.Options[0].Title)
	assert.Equal(t, "toggleImageCaption", o.Image.Toolbar[0].Command)
	assert.Equal(t, "undo", Default().Toolbar.Items[0].Command)
}

func TestOverridesThen(t *testing.T) {
	o := ArticleOverrides().Then(Overrides{SimpleUpload: &SimpleUpload{UploadURL: "/api/editor/upload/"}})
	cfg := Merge(Default(), o)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "/api/editor/upload/", cfg.SimpleUpload.UploadURL)
}

func TestHeadingPresets(t *testing.T) {
	cfg := Default()
	b, err := json.Marshal(cfg.Heading)
	require.NoError(t, err)

	var back HeadingConfig
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, cfg.Heading.Options, back.Options)

	require.Len(t, back.Options, 7)
	assert.Equal(t, HeadingOption{Model: "paragraph", Title: "Paragraph", Class: "ck-heading_paragraph"}, back.Options[0])
	for i := 1; i <= 6; i++ {
		opt := back.Options[i]
		assert.Equal(t, "heading"+string(rune('0'+i)), opt.Model)
		assert.Equal(t, "h"+string(rune('0'+i)), opt.View)
		assert.Equal(t, "ck-heading_heading"+string(rune('0'+i)), opt.Class)
	}

	assert.NotContains(t, string(b), `"view":""`)
}

func TestExportConfigsAgree(t *testing.T) {
	cfg := Default()
	pdf := cfg.ExportPdf.ConverterOptions
	word := cfg.ExportWord.ConverterOptions

	for _, o := range []ConverterOptions{pdf, word} {
		assert.Equal(t, "A4", o.Format)
		assert.Equal(t, "20mm", o.MarginTop)
		assert.Equal(t, "20mm", o.MarginBottom)
		assert.Equal(t, "20mm", o.MarginLeft)
		assert.Equal(t, "20mm", o.MarginRight)
		assert.Equal(t, "portrait", o.GetOrientation())
	}

	pb, err := json.Marshal(pdf)
	require.NoError(t, err)
	wb, err := json.Marshal(word)
	require.NoError(t, err)
	assert.Contains(t, string(pb), `"page_orientation":"portrait"`)
	assert.NotContains(t, string(pb), `"orientation"`)
	assert.Contains(t, string(wb), `"orientation":"portrait"`)
	assert.NotContains(t, string(wb), `page_orientation`)

	pdf.PageOrientation, word.Orientation = "", ""
	assert.Equal(t, pdf, word)
}

func TestExportDataCallback(t *testing.T) {
	cfg := Default()
	for _, e := range []*ExportConfig{cfg.ExportPdf, cfg.ExportWord} {
		src := &fakeSource{data: "<p>Hello</p>"}
		data, err := e.Data(src)
		require.NoError(t, err)
		assert.Equal(t, "<p>Hello</p>", string(data))
		require.NotNil(t, src.got)
		assert.True(t, src.got.ShowSuggestionHighlights)
	}
}

func TestExportDataCallbackError(t *testing.T) {
	srcErr := errors.New("invalid document state")
	_, err := Default().ExportPdf.Data(&fakeSource{err: srcErr})
	assert.ErrorIs(t, err, srcErr)

	_, err = Default().ExportWord.Data(nil)
	assert.ErrorIs(t, err, ErrNoDocumentSource)
}

func TestEmptyUploadURL(t *testing.T) {
	cfg := Merge(Article(), Overrides{SimpleUpload: &SimpleUpload{UploadURL: ""}})
	require.NotNil(t, cfg.SimpleUpload)
	assert.Equal(t, "", cfg.SimpleUpload.UploadURL)

	b, err := cfg.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"uploadUrl":""`)
}

func TestDefaultJSONShape(t *testing.T) {
	b, err := Default().JSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))

	assert.Equal(t, "zh-cn", raw["language"])
	toolbar := raw["toolbar"].(map[string]any)
	items := toolbar["items"].([]any)
	group := items[11].(map[string]any)
	assert.Equal(t, "Basic styles", group["label"])
	assert.Equal(t, "text", group["icon"])

	exportPdf := raw["exportPdf"].(map[string]any)
	assert.Equal(t, false, exportPdf["tokenUrl"])
	assert.Equal(t, []any{"EDITOR_STYLES"}, exportPdf["stylesheets"])
	assert.NotContains(t, exportPdf, "dataCallback")

	hs := raw["htmlSupport"].(map[string]any)
	allow := hs["allow"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"regexp": ".*"}, allow["name"])
	assert.Equal(t, true, allow["styles"])
	assert.Equal(t, []any{}, hs["disallow"])

	assert.NotContains(t, raw, "simpleUpload")
}

func TestToolbarArrayForm(t *testing.T) {
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(`{"toolbar":["bold","|",{"label":"More","items":["italic"]}]}`), &cfg))
	require.Len(t, cfg.Toolbar.Items, 3)
	assert.True(t, cfg.Toolbar.Items[1].IsSeparator())
	assert.True(t, cfg.Toolbar.Items[2].IsGroup())
	assert.Equal(t, []string{"bold", "italic"}, cfg.Toolbar.Leaves())

	var obj Config
	require.NoError(t, json.Unmarshal([]byte(`{"toolbar":{"items":["bold"],"shouldNotGroupWhenFull":true}}`), &obj))
	assert.True(t, obj.Toolbar.ShouldNotGroupWhenFull)
	assert.Equal(t, []string{"bold"}, obj.Toolbar.Leaves())
}

func TestPatternJSON(t *testing.T) {
	var hs HtmlSupport
	require.NoError(t, json.Unmarshal([]byte(`{"allow":[{"name":{"regexp":"^h[1-6]$"},"classes":true},{"name":"div"}],"disallow":[]}`), &hs))
	require.Len(t, hs.Allow, 2)
	assert.True(t, hs.Allow[0].Name.Match("h2"))
	assert.False(t, hs.Allow[0].Name.Match("p"))
	assert.True(t, hs.Allow[1].Name.Match("div"))
	assert.False(t, hs.Allow[1].Name.IsRegexp())
	assert.True(t, Default().HtmlSupport.Allow[0].Name.MatchAll())
}
