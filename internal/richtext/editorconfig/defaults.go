package editorconfig

import (
	"maps"
	"slices"
)

const (
	LanguageDefault = "zh-cn"
	LanguageArticle = "en"

	// Адрес загрузки экрана статьи в окружении разработки. В рабочем окружении переопределяется через EDITOR_UPLOAD_URL.
	ArticleDevUploadURL = "http://localhost:8888/philoenglish-server/v1.0.0/article/uploadCover"

	BuildClassic = "classic"
	BuildArticle = "article"
)

// builders - фабрики конфигураций по имени сборки.
var builders = map[string]func() Config{
	BuildClassic: Default,
	BuildArticle: Article,
}

// Build возвращает новую конфигурацию сборки name.
func Build(name string) (Config, bool) {
	builder, ok := builders[name]
	if !ok {
		return Config{}, false
	}
	return builder(), true
}

func HasBuild(name string) bool {
	_, ok := builders[name]
	return ok
}

// BuildNames возвращает имена сборок по алфавиту.
func BuildNames() []string {
	return slices.Sorted(maps.Keys(builders))
}

// HeadingPresets возвращает пресеты paragraph, heading1..heading6.
func HeadingPresets() []HeadingOption {
	return []HeadingOption{
		{Model: "paragraph", Title: "Paragraph", Class: "ck-heading_paragraph"},
		{Model: "heading1", View: "h1", Title: "Heading 1", Class: "ck-heading_heading1"},
		{Model: "heading2", View: "h2", Title: "Heading 2", Class: "ck-heading_heading2"},
		{Model: "heading3", View: "h3", Title: "Heading 3", Class: "ck-heading_heading3"},
		{Model: "heading4", View: "h4", Title: "Heading 4", Class: "ck-heading_heading4"},
		{Model: "heading5", View: "h5", Title: "Heading 5", Class: "ck-heading_heading5"},
		{Model: "heading6", View: "h6", Title: "Heading 6", Class: "ck-heading_heading6"},
	}
}

func defaultConverterOptions() ConverterOptions {
	return ConverterOptions{
		Format:       "A4",
		MarginTop:    "20mm",
		MarginBottom: "20mm",
		MarginRight:  "20mm",
		MarginLeft:   "20mm",
	}
}

// PdfExport - параметры экспорта в PDF.
func PdfExport() ExportConfig {
	opts := defaultConverterOptions()
	opts.PageOrientation = "portrait"
	return ExportConfig{
		DataCallback:     SuggestionHighlights,
		Stylesheets:      []string{EditorStyles},
		ConverterOptions: opts,
	}
}

// WordExport - параметры экспорта в Word. Отличается от PDF только именем поля ориентации.
func WordExport() ExportConfig {
	opts := defaultConverterOptions()
	opts.Orientation = "portrait"
	return ExportConfig{
		DataCallback:     SuggestionHighlights,
		Stylesheets:      []string{EditorStyles},
		ConverterOptions: opts,
	}
}

// Default - конфигурация основной сборки. Каждый вызов возвращает новое значение.
func Default() Config {
	pdf := PdfExport()
	word := WordExport()

	return Config{
		Language: LanguageDefault,
		Toolbar: Toolbar{Items: []ToolbarItem{
			Cmd("undo"),
			Cmd("redo"),
			Cmd(Separator),
			Cmd("sourceEditing"),
			Cmd(Separator),
			Cmd("heading"),
			Cmd(Separator),
			Cmd("alignment"),
			Cmd("outdent"),
			Cmd("indent"),
			Cmd(Separator),
			Group("Basic styles", "text",
				Cmd("fontSize"),
				Cmd("fontFamily"),
				Cmd("fontColor"),
				Cmd("fontBackgroundColor"),
				Cmd("highlight"),
				Cmd("superscript"),
				Cmd("subscript"),
				Cmd("code"),
				Cmd(Separator),
				Cmd("removeFormat"),
			),
			Cmd("bold"),
			Cmd("italic"),
			Cmd("strikethrough"),
			Cmd(Separator),
			Cmd("bulletedList"),
			Cmd("numberedList"),
			Cmd("todoList"),
			Cmd(Separator),
			Cmd("insertTable"),
			Cmd(Separator),
			Cmd("link"),
			Cmd("imageUpload"),
			Cmd("mediaEmbed"),
			Cmd("codeBlock"),
			Cmd("blockQuote"),
			Cmd("horizontalLine"),
			Cmd(Separator),
			Cmd("exportPdf"),
			Cmd("exportWord"),
			Cmd("importWord"),
		}},
		Heading:    &HeadingConfig{Options: HeadingPresets()},
		ExportPdf:  &pdf,
		ExportWord: &word,
		HtmlSupport: &HtmlSupport{
			// Разрешены все вставленные теги и стили
			Allow: []MatcherPattern{
				{Name: Regexp(".*"), Attributes: true, Classes: true, Styles: true},
			},
			Disallow: []MatcherPattern{},
		},
		Image: &ImageConfig{Toolbar: Cmds("imageTextAlternative")},
		Table: &TableConfig{ContentToolbar: Cmds("tableColumn", "tableRow", "mergeTableCells")},
	}
}

// ArticleOverrides - переопределения экрана редактирования статьи.
func ArticleOverrides() Overrides {
	return Overrides{
		LicenseKey: Ptr(""),
		Language:   Ptr(LanguageArticle),
		Toolbar: &Toolbar{Items: Cmds(
			"undo",
			"redo",
			Separator,
			"sourceEditing",
			Separator,
			"heading",
			Separator,
			"bold",
			"italic",
			"strikethrough",
			"code",
			Separator,
			"bulletedList",
			"numberedList",
			"todoList",
			Separator,
			"link",
			"imageUpload",
			"insertTable",
			"blockQuote",
			"codeBlock",
			"horizontalLine",
			"specialCharacters",
		)},
		Heading:      &HeadingConfig{Options: HeadingPresets()},
		SimpleUpload: &SimpleUpload{UploadURL: ArticleDevUploadURL},
		Image: &ImageConfig{Toolbar: Cmds(
			"imageTextAlternative",
			"toggleImageCaption",
			"imageStyle:inline",
			"imageStyle:block",
			"imageStyle:side",
		)},
		Table: &TableConfig{ContentToolbar: Cmds("tableColumn", "tableRow", "mergeTableCells")},
	}
}

// Article - конфигурация экрана статьи: основная сборка с переопределениями экрана.
func Article() Config {
	return Merge(Default(), ArticleOverrides())
}

func Ptr[T any](v T) *T {
	return &v
}
