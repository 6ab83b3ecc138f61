// Пакет описывает набор плагинов сборки редактора (Plugin Manifest).
// Манифест задается один раз при загрузке пакета и далее используется только на чтение: по нему фронтенд регистрирует плагины на классе редактора, а бэкенд проверяет, что каждая кнопка панели инструментов ссылается на зарегистрированную возможность.
//
// Основные возможности:
//   - Каталог известных плагинов с npm-пакетом и списком предоставляемых команд.
//   - Построение упорядоченного манифеста без дубликатов.
//   - Множество команд (capabilities), предоставляемых манифестом.
package plugins

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
)

// Plugin - модуль возможностей редактора. Commands - идентификаторы команд и элементов панели инструментов, которые плагин регистрирует.
type Plugin struct {
	Name     string   `json:"name"`
	Package  string   `json:"package"`
	Commands []string `json:"commands,omitempty"`
}

const (
	pkgAlignment      = "@ckeditor/ckeditor5-alignment"
	pkgAutoformat     = "@ckeditor/ckeditor5-autoformat"
	pkgBasicStyles    = "@ckeditor/ckeditor5-basic-styles"
	pkgBlockQuote     = "@ckeditor/ckeditor5-block-quote"
	pkgCloudServices  = "@ckeditor/ckeditor5-cloud-services"
	pkgCodeBlock      = "@ckeditor/ckeditor5-code-block"
	pkgEssentials     = "@ckeditor/ckeditor5-essentials"
	pkgExportPdf      = "@ckeditor/ckeditor5-export-pdf"
	pkgExportWord     = "@ckeditor/ckeditor5-export-word"
	pkgFont           = "@ckeditor/ckeditor5-font"
	pkgHeading        = "@ckeditor/ckeditor5-heading"
	pkgHighlight      = "@ckeditor/ckeditor5-highlight"
	pkgHorizontalLine = "@ckeditor/ckeditor5-horizontal-line"
	pkgHtmlSupport    = "@ckeditor/ckeditor5-html-support"
	pkgImage          = "@ckeditor/ckeditor5-image"
	pkgImportWord     = "@ckeditor/ckeditor5-import-word"
	pkgIndent         = "@ckeditor/ckeditor5-indent"
	pkgLink           = "@ckeditor/ckeditor5-link"
	pkgList           = "@ckeditor/ckeditor5-list"
	pkgMarkdown       = "@ckeditor/ckeditor5-markdown-gfm"
	pkgMediaEmbed     = "@ckeditor/ckeditor5-media-embed"
	pkgMention        = "@ckeditor/ckeditor5-mention"
	pkgParagraph      = "@ckeditor/ckeditor5-paragraph"
	pkgPasteFromOff   = "@ckeditor/ckeditor5-paste-from-office"
	pkgRemoveFormat   = "@ckeditor/ckeditor5-remove-format"
	pkgSourceEditing  = "@ckeditor/ckeditor5-source-editing"
	pkgSpecialChars   = "@ckeditor/ckeditor5-special-characters"
	pkgTable          = "@ckeditor/ckeditor5-table"
	pkgTyping         = "@ckeditor/ckeditor5-typing"
	pkgUndo           = "@ckeditor/ckeditor5-undo"
	pkgUpload         = "@ckeditor/ckeditor5-upload"
	pkgFindAndReplace = "@ckeditor/ckeditor5-find-and-replace"
)

// catalog - все плагины, о которых знает сборка. В манифест попадает только часть из них.
var catalog = map[string]Plugin{
	"Alignment":           {"Alignment", pkgAlignment, []string{"alignment", "alignment:left", "alignment:right", "alignment:center", "alignment:justify"}},
	"Autoformat":          {"Autoformat", pkgAutoformat, nil},
	"SimpleUploadAdapter": {"SimpleUploadAdapter", pkgUpload, nil},
	"Bold":                {"Bold", pkgBasicStyles, []string{"bold"}},
	"Code":                {"Code", pkgBasicStyles, []string{"code"}},
	"Italic":              {"Italic", pkgBasicStyles, []string{"italic"}},
	"Strikethrough":       {"Strikethrough", pkgBasicStyles, []string{"strikethrough"}},
	"Subscript":           {"Subscript", pkgBasicStyles, []string{"subscript"}},
	"Superscript":         {"Superscript", pkgBasicStyles, []string{"superscript"}},
	"Underline":           {"Underline", pkgBasicStyles, []string{"underline"}},
	"BlockQuote":          {"BlockQuote", pkgBlockQuote, []string{"blockQuote"}},
	"CloudServices":       {"CloudServices", pkgCloudServices, nil},
	"CodeBlock":           {"CodeBlock", pkgCodeBlock, []string{"codeBlock"}},
	"Essentials":          {"Essentials", pkgEssentials, []string{"undo", "redo", "selectAll"}},
	"ExportPdf":           {"ExportPdf", pkgExportPdf, []string{"exportPdf"}},
	"ExportWord":          {"ExportWord", pkgExportWord, []string{"exportWord"}},
	"FindAndReplace":      {"FindAndReplace", pkgFindAndReplace, []string{"findAndReplace"}},
	"FontBackgroundColor": {"FontBackgroundColor", pkgFont, []string{"fontBackgroundColor"}},
	"FontColor":           {"FontColor", pkgFont, []string{"fontColor"}},
	"FontFamily":          {"FontFamily", pkgFont, []string{"fontFamily"}},
	"FontSize":            {"FontSize", pkgFont, []string{"fontSize"}},
	"Heading":             {"Heading", pkgHeading, []string{"heading"}},
	"Highlight":           {"Highlight", pkgHighlight, []string{"highlight"}},
	"HorizontalLine":      {"HorizontalLine", pkgHorizontalLine, []string{"horizontalLine"}},
	"GeneralHtmlSupport":  {"GeneralHtmlSupport", pkgHtmlSupport, nil},
	"Image":               {"Image", pkgImage, []string{"imageTextAlternative"}},
	"ImageCaption":        {"ImageCaption", pkgImage, []string{"toggleImageCaption"}},
	"ImageStyle": {"ImageStyle", pkgImage, []string{
		"imageStyle:inline", "imageStyle:block", "imageStyle:side",
		"imageStyle:alignLeft", "imageStyle:alignRight", "imageStyle:alignCenter",
		"imageStyle:alignBlockLeft", "imageStyle:alignBlockRight",
		"imageStyle:wrapText", "imageStyle:breakText",
	}},
	"ImageToolbar":       {"ImageToolbar", pkgImage, nil},
	"ImageUpload":        {"ImageUpload", pkgImage, []string{"imageUpload", "uploadImage"}},
	"ImportWord":         {"ImportWord", pkgImportWord, []string{"importWord"}},
	"Indent":             {"Indent", pkgIndent, []string{"indent", "outdent"}},
	"IndentBlock":        {"IndentBlock", pkgIndent, nil},
	"Link":               {"Link", pkgLink, []string{"link"}},
	"List":               {"List", pkgList, []string{"bulletedList", "numberedList"}},
	"ListProperties":     {"ListProperties", pkgList, nil},
	"TodoList":           {"TodoList", pkgList, []string{"todoList"}},
	"Markdown":           {"Markdown", pkgMarkdown, nil},
	"MediaEmbed":         {"MediaEmbed", pkgMediaEmbed, []string{"mediaEmbed"}},
	"Mention":            {"Mention", pkgMention, nil},
	"Paragraph":          {"Paragraph", pkgParagraph, []string{"paragraph"}},
	"PasteFromOffice":    {"PasteFromOffice", pkgPasteFromOff, nil},
	"RemoveFormat":       {"RemoveFormat", pkgRemoveFormat, []string{"removeFormat"}},
	"SourceEditing":      {"SourceEditing", pkgSourceEditing, []string{"sourceEditing"}},
	"SpecialCharacters":  {"SpecialCharacters", pkgSpecialChars, []string{"specialCharacters"}},
	"Table":              {"Table", pkgTable, []string{"insertTable", "tableColumn", "tableRow", "mergeTableCells"}},
	"TableToolbar":       {"TableToolbar", pkgTable, nil},
	"TextTransformation": {"TextTransformation", pkgTyping, nil},
	"Undo":               {"Undo", pkgUndo, []string{"undo", "redo"}},
}

// classicBuild - порядок плагинов основной сборки. Порядок влияет только на группировку кнопок, но не на корректность.
var classicBuild = []string{
	"Code",
	"CodeBlock",
	"HorizontalLine",
	"GeneralHtmlSupport",
	"Markdown",
	"Mention",
	"Strikethrough",
	"TodoList",
	"SimpleUploadAdapter",
	"ExportPdf",
	"ExportWord",
	"ImportWord",
	"Autoformat",
	"BlockQuote",
	"Alignment",
	"Subscript",
	"Superscript",
	"FontBackgroundColor",
	"FontColor",
	"FontFamily",
	"FontSize",
	"Highlight",
	"RemoveFormat",
	"Bold",
	"CloudServices",
	"Essentials",
	"Heading",
	"MediaEmbed",
	"Image",
	"ImageCaption",
	"ImageStyle",
	"ImageToolbar",
	"ImageUpload",
	"Indent",
	"IndentBlock",
	"Italic",
	"Link",
	"List",
	"ListProperties",
	"Paragraph",
	"PasteFromOffice",
	"SourceEditing",
	"Table",
	"TableToolbar",
	"TextTransformation",
	"Undo",
}

// Lookup возвращает копию плагина каталога по имени.
func Lookup(name string) (Plugin, bool) {
	p, ok := catalog[name]
	p.Commands = slices.Clone(p.Commands)
	return p, ok
}

// Manifest - упорядоченный набор плагинов без повторов. После создания не изменяется.
type Manifest struct {
	plugins      []Plugin
	capabilities map[string]struct{}
}

// NewManifest собирает манифест из имен плагинов каталога.
// Повторное имя игнорируется, плагин остается на позиции первого упоминания.
//
// Возвращает:
//   - error: если имя отсутствует в каталоге.
func NewManifest(names ...string) (*Manifest, error) {
	m := &Manifest{capabilities: make(map[string]struct{})}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		p, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown plugin %q", name)
		}
		seen[name] = struct{}{}
		m.plugins = append(m.plugins, p)
		for _, cmd := range p.Commands {
			m.capabilities[cmd] = struct{}{}
		}
	}
	return m, nil
}

// MustManifest как NewManifest, но паникует на неизвестном плагине. Для манифестов, объявленных в коде.
func MustManifest(names ...string) *Manifest {
	m, err := NewManifest(names...)
	if err != nil {
		panic(err)
	}
	return m
}

var classic = MustManifest(classicBuild...)

// ClassicBuild возвращает манифест основной сборки редактора.
func ClassicBuild() *Manifest {
	return classic
}

func (m *Manifest) Len() int {
	return len(m.plugins)
}

// Names возвращает имена плагинов в порядке регистрации.
func (m *Manifest) Names() []string {
	res := make([]string, len(m.plugins))
	for i, p := range m.plugins {
		res[i] = p.Name
	}
	return res
}

// Plugins возвращает копию списка плагинов.
func (m *Manifest) Plugins() []Plugin {
	res := make([]Plugin, len(m.plugins))
	for i, p := range m.plugins {
		p.Commands = slices.Clone(p.Commands)
		res[i] = p
	}
	return res
}

func (m *Manifest) Contains(name string) bool {
	return slices.ContainsFunc(m.plugins, func(p Plugin) bool {
		return p.Name == name
	})
}

// Has сообщает, регистрирует ли какой-либо плагин манифеста команду cmd.
func (m *Manifest) Has(cmd string) bool {
	_, ok := m.capabilities[cmd]
	return ok
}

// Capabilities возвращает отсортированный список всех команд манифеста.
func (m *Manifest) Capabilities() []string {
	res := make([]string, 0, len(m.capabilities))
	for cmd := range m.capabilities {
		res = append(res, cmd)
	}
	sort.Strings(res)
	return res
}

// Provider возвращает имя плагина, регистрирующего команду.
func (m *Manifest) Provider(cmd string) (string, bool) {
	for _, p := range m.plugins {
		if slices.Contains(p.Commands, cmd) {
			return p.Name, true
		}
	}
	return "", false
}

// MarshalJSON отдает манифест в виде builtinPlugins: упорядоченный список имен.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Names())
}

func (m *Manifest) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	mm, err := NewManifest(names...)
	if err != nil {
		return err
	}
	*m = *mm
	return nil
}
