// Пакет разбирает HTML, который отдает редактор (getData), в типизированную модель документа для экспорта.
// Модель намеренно плоская: блоки документа и текстовые фрагменты с уже вычисленными стилями.
//
// Основные возможности:
//   - Парсинг HTML-документа из io.Reader.
//   - Заголовки, параграфы с выравниванием и отступом, цитаты, блоки кода, горизонтальные линии.
//   - Маркированные, нумерованные списки и списки задач, включая вложенные списки и свойства списка.
//   - Изображения (встроенные и блочные с подписью), таблицы с заголовками и объединением ячеек, медиа.
//   - Стили текста: жирный, курсив, подчеркнутый, зачеркнутый, код, индексы, ссылки, шрифт, цвета, маркер.
//   - Удаление разметки предложений правок.
package editor

import (
	"io"
	"log/slog"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const (
	defaultFontSize = 16
	indentStep      = 40
)

// Размеры шрифта для классов плагина FontSize (tiny, small, big, huge).
var fontSizeClasses = map[string]float64{
	"text-tiny":  0.7,
	"text-small": 0.85,
	"text-big":   1.4,
	"text-huge":  1.8,
}

func ParseDocument(r io.Reader) (*Document, error) {
	rootNode, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	body := findElementByTagName(rootNode, "body")
	if body == nil {
		return &Document{}, nil
	}

	return &Document{Elements: parseBlocks(body)}, nil
}

func ParseString(s string) (*Document, error) {
	return ParseDocument(strings.NewReader(s))
}

func isBlock(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "p", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "blockquote", "pre", "hr", "figure", "table", "div":
		return true
	}
	return false
}

// parseBlocks разбирает дочерние узлы как последовательность блоков.
// Встроенное содержимое между блоками собирается в неявный параграф.
func parseBlocks(root *html.Node) []any {
	var res []any
	var inline []*html.Node

	flush := func() {
		if len(inline) == 0 {
			return
		}
		var p Paragraph
		for _, n := range inline {
			p.Content = parseInline(n, Text{}, p.Content)
		}
		inline = nil
		if !isBlank(p.Content) {
			res = append(res, p)
		}
	}

	for el := root.FirstChild; el != nil; el = el.NextSibling {
		if !isBlock(el) {
			if el.Type == html.ElementNode || el.Type == html.TextNode {
				inline = append(inline, el)
			}
			continue
		}
		flush()

		switch el.Data {
		case "p":
			res = append(res, parseParagraph(el))
		case "h1", "h2", "h3", "h4", "h5", "h6":
			res = append(res, parseHeading(el))
		case "ul", "ol":
			res = append(res, parseList(el))
		case "blockquote":
			res = append(res, Quote{Content: parseBlocks(el)})
		case "pre":
			res = append(res, parseCodeBlock(el))
		case "hr":
			res = append(res, HorizontalLine{})
		case "figure":
			if b := parseFigure(el); b != nil {
				res = append(res, b)
			}
		case "table":
			res = append(res, parseTable(el))
		case "div":
			if u := getAttrValue("data-oembed-url", el.Attr); u != "" {
				res = append(res, Media{URL: u})
				continue
			}
			res = append(res, parseBlocks(el)...)
		}
	}
	flush()

	return res
}

func parseParagraph(root *html.Node) Paragraph {
	styles := parseStyles(getAttrValue("style", root.Attr))
	p := Paragraph{
		Align:  toTextAlign(styles["text-align"]),
		Indent: parseIndent(styles["margin-left"]),
	}
	for el := root.FirstChild; el != nil; el = el.NextSibling {
		p.Content = parseInline(el, Text{}, p.Content)
	}
	return p
}

func parseHeading(root *html.Node) Heading {
	level, _ := strconv.Atoi(strings.TrimPrefix(root.Data, "h"))
	h := Heading{
		Level: level,
		Align: toTextAlign(parseStyles(getAttrValue("style", root.Attr))["text-align"]),
	}
	for el := root.FirstChild; el != nil; el = el.NextSibling {
		h.Content = parseInline(el, Text{}, h.Content)
	}
	return h
}

// parseInline добавляет в acc текстовые фрагменты узла n, унаследовав стиль mark.
func parseInline(n *html.Node, mark Text, acc []any) []any {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" || (strings.TrimSpace(n.Data) == "" && strings.Contains(n.Data, "\n")) {
			return acc
		}
		t := mark
		t.Content = n.Data
		return append(acc, t)
	case html.ElementNode:
	default:
		return acc
	}

	switch n.Data {
	case "br":
		return append(acc, HardBreak{})
	case "img":
		if img := parseImage(n); img != nil {
			img.Style = ImageInline
			return append(acc, img)
		}
		return acc
	case "input", "script", "style", "suggestion-start", "suggestion-end", "comment-start", "comment-end":
		return acc
	case "strong", "b":
		mark.Strong = true
	case "i", "em":
		mark.Italic = true
	case "u":
		mark.Underlined = true
	case "s", "del", "strike":
		mark.Strikethrough = true
	case "code":
		mark.Code = true
	case "sub":
		mark.Sub = true
	case "sup":
		mark.Sup = true
	case "a":
		if u, err := url.Parse(getAttrValue("href", n.Attr)); err == nil {
			mark.URL = u
		}
	case "mark":
		for _, class := range classes(n) {
			if strings.HasPrefix(class, "marker-") || strings.HasPrefix(class, "pen-") {
				mark.Highlight = class
			}
		}
	}

	parseTextStyles(n, &mark)

	for el := n.FirstChild; el != nil; el = el.NextSibling {
		if isBlock(el) {
			// блок внутри встроенного элемента (например, <p> в ячейке) разбирается как текст
			for c := el.FirstChild; c != nil; c = c.NextSibling {
				acc = parseInline(c, mark, acc)
			}
			continue
		}
		acc = parseInline(el, mark, acc)
	}
	return acc
}

func parseTextStyles(node *html.Node, text *Text) {
	for _, class := range classes(node) {
		if k, ok := fontSizeClasses[class]; ok {
			text.Size = int(math.Round(defaultFontSize * k))
		}
	}

	for key, val := range parseStyles(getAttrValue("style", node.Attr)) {
		if val == "inherit" {
			continue
		}

		switch key {
		case "font-size":
			if size, ok := cssLengthPx(val); ok {
				text.Size = int(math.Round(size))
			} else {
				slog.Warn("Parse font size", "input", val)
			}
		case "font-family":
			text.Family = strings.Trim(strings.TrimSpace(strings.Split(val, ",")[0]), `'"`)
		case "color":
			if c, err := ParseColor(val); err == nil {
				text.Color = &c
			}
		case "background-color":
			if c, err := ParseColor(val); err == nil {
				text.BgColor = &c
			}
		}
	}
}

func parseList(root *html.Node) List {
	styles := parseStyles(getAttrValue("style", root.Attr))
	list := List{
		Numbered:  root.Data == "ol",
		TaskList:  slices.Contains(classes(root), "todo-list"),
		StyleType: styles["list-style-type"],
		Reversed:  attrExists("reversed", root.Attr),
	}
	if start, err := strconv.Atoi(getAttrValue("start", root.Attr)); err == nil {
		list.Start = start
	}

	for li := root.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		list.Elements = append(list.Elements, ListElement{
			Content: parseBlocks(li),
			Checked: isChecked(li),
		})
	}

	return list
}

// isChecked ищет отмеченный чекбокс задачи, не заходя во вложенные списки.
func isChecked(li *html.Node) bool {
	checked := false
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil && !checked; c = c.NextSibling {
			if c.Type != html.ElementNode || c.Data == "ul" || c.Data == "ol" {
				continue
			}
			if c.Data == "input" && attrExists("checked", c.Attr) {
				checked = true
				return
			}
			walk(c)
		}
	}
	walk(li)
	return checked
}

func parseCodeBlock(root *html.Node) CodeBlock {
	var cb CodeBlock
	var sb strings.Builder
	iterNodes(root, func(child *html.Node) bool {
		switch {
		case child.Type == html.TextNode:
			sb.WriteString(child.Data)
		case child.Type == html.ElementNode && child.Data == "br":
			sb.WriteByte('\n')
		case child.Type == html.ElementNode && child.Data == "code":
			for _, class := range classes(child) {
				if lang, ok := strings.CutPrefix(class, "language-"); ok {
					cb.Language = lang
				}
			}
		}
		return false
	})
	cb.Content = sb.String()
	return cb
}

func parseFigure(root *html.Node) any {
	cls := classes(root)
	switch {
	case slices.Contains(cls, "table"):
		tableNode := findElementByTagName(root, "table")
		if tableNode == nil {
			return nil
		}
		t := parseTable(tableNode)
		t.Caption = parseCaption(root)
		return t
	case slices.Contains(cls, "media"):
		if o := findElementByTagName(root, "oembed"); o != nil {
			return Media{URL: getAttrValue("url", o.Attr)}
		}
		return nil
	default:
		imgNode := findElementByTagName(root, "img")
		if imgNode == nil {
			return nil
		}
		img := parseImage(imgNode)
		if img == nil {
			return nil
		}
		img.Style = ImageBlock
		img.Align = CenterAlign
		for _, class := range cls {
			switch {
			case class == "image-style-side":
				img.Style = ImageSide
				img.Align = RightAlign
			case strings.HasSuffix(class, "align-left"):
				img.Align = LeftAlign
			case strings.HasSuffix(class, "align-right"):
				img.Align = RightAlign
			}
		}
		if w, ok := parsePercentWidth(parseStyles(getAttrValue("style", root.Attr))["width"]); ok {
			img.WidthPercent = w
		}
		img.Caption = parseCaption(root)
		return img
	}
}

func parseCaption(figure *html.Node) []any {
	caption := findElementByTagName(figure, "figcaption")
	if caption == nil {
		return nil
	}
	var res []any
	for el := caption.FirstChild; el != nil; el = el.NextSibling {
		res = parseInline(el, Text{}, res)
	}
	return res
}

func parseImage(el *html.Node) *Image {
	imgUrl, err := url.Parse(getAttrValue("src", el.Attr))
	if err != nil {
		return nil
	}
	i := &Image{
		Src: imgUrl,
		Alt: getAttrValue("alt", el.Attr),
	}

	i.Width, _ = strconv.Atoi(getAttrValue("width", el.Attr))

	styles := parseStyles(getAttrValue("style", el.Attr))
	if w, ok := parsePercentWidth(styles["width"]); ok {
		i.WidthPercent = w
	} else if px, ok := cssLengthPx(styles["width"]); ok {
		i.Width = int(px)
	}
	switch styles["float"] {
	case "left":
		i.Align = LeftAlign
	case "right":
		i.Align = RightAlign
	}

	return i
}

func parseTable(root *html.Node) Table {
	var table Table

	if colgroup := findElementByTagName(root, "colgroup"); colgroup != nil {
		table.ColWidth = parseColGroup(colgroup)
	}

	for section := root.FirstChild; section != nil; section = section.NextSibling {
		if section.Type != html.ElementNode {
			continue
		}
		switch section.Data {
		case "thead":
			rows := parseRows(section, true)
			table.HeaderRows += len(rows)
			table.Rows = append(table.Rows, rows...)
		case "tbody", "tfoot":
			table.Rows = append(table.Rows, parseRows(section, false)...)
		case "tr":
			table.Rows = append(table.Rows, parseRow(section, false))
		}
	}

	return table
}

func parseRows(section *html.Node, header bool) [][]TableCell {
	var rows [][]TableCell
	for tr := section.FirstChild; tr != nil; tr = tr.NextSibling {
		if tr.Type == html.ElementNode && tr.Data == "tr" {
			rows = append(rows, parseRow(tr, header))
		}
	}
	return rows
}

func parseRow(tr *html.Node, header bool) []TableCell {
	var row []TableCell
	for td := tr.FirstChild; td != nil; td = td.NextSibling {
		if td.Type != html.ElementNode || (td.Data != "td" && td.Data != "th") {
			continue
		}

		cell := TableCell{
			ColSpan: 1,
			RowSpan: 1,
			Header:  header || td.Data == "th",
			Content: parseBlocks(td),
		}
		if v, err := strconv.Atoi(getAttrValue("colspan", td.Attr)); err == nil && v > 0 {
			cell.ColSpan = v
		}
		if v, err := strconv.Atoi(getAttrValue("rowspan", td.Attr)); err == nil && v > 0 {
			cell.RowSpan = v
		}
		if c, err := ParseColor(parseStyles(getAttrValue("style", td.Attr))["background-color"]); err == nil {
			cell.BgColor = &c
		}

		row = append(row, cell)
	}
	return row
}

func parseColGroup(root *html.Node) []float64 {
	var res []float64
	for col := root.FirstChild; col != nil; col = col.NextSibling {
		if col.Type != html.ElementNode || col.Data != "col" {
			continue
		}
		w, _ := parsePercentWidth(parseStyles(getAttrValue("style", col.Attr))["width"])
		res = append(res, w)
	}
	return res
}

func findElementByTagName(rootNode *html.Node, tagName string) *html.Node {
	var el *html.Node
	iterNodes(rootNode, func(child *html.Node) bool {
		if el != nil {
			return true
		}
		if child.Type == html.ElementNode && child.Data == tagName {
			el = child
			return true
		}
		return false
	})
	return el
}

func iterNodes(node *html.Node, f func(child *html.Node) bool) {
	if f(node) {
		return
	}
	for p := node.FirstChild; p != nil; p = p.NextSibling {
		iterNodes(p, f)
	}
}

func getAttrValue(key string, attrs []html.Attribute) string {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func attrExists(key string, attrs []html.Attribute) bool {
	return slices.ContainsFunc(attrs, func(attr html.Attribute) bool {
		return attr.Key == key
	})
}

func classes(n *html.Node) []string {
	return strings.Fields(getAttrValue("class", n.Attr))
}

func toTextAlign(raw string) TextAlign {
	switch strings.TrimSpace(raw) {
	case "center":
		return CenterAlign
	case "right":
		return RightAlign
	case "justify":
		return JustifyAlign
	}
	return LeftAlign
}

// parseStyles разбирает атрибут style. Значение отделяется по первому двоеточию, чтобы не ломать url(...).
func parseStyles(raw string) map[string]string {
	res := make(map[string]string)
	for styleRaw := range strings.SplitSeq(raw, ";") {
		key, val, ok := strings.Cut(styleRaw, ":")
		if !ok {
			continue
		}
		res[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(val)
	}
	return res
}

func parseIndent(raw string) int {
	px, ok := cssLengthPx(raw)
	if !ok || px <= 0 {
		return 0
	}
	return int(math.Round(px / indentStep))
}

func parsePercentWidth(raw string) (float64, bool) {
	v, ok := strings.CutSuffix(strings.TrimSpace(raw), "%")
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// cssLengthPx переводит длину CSS (px, pt, em, rem) в пиксели.
func cssLengthPx(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	units := []struct {
		suffix string
		k      float64
	}{
		{"px", 1},
		{"pt", 4.0 / 3.0},
		{"rem", defaultFontSize},
		{"em", defaultFontSize},
	}
	for _, u := range units {
		if v, ok := strings.CutSuffix(raw, u.suffix); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return 0, false
			}
			return f * u.k, true
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isBlank(content []any) bool {
	for _, c := range content {
		switch t := c.(type) {
		case Text:
			if strings.TrimSpace(t.Content) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
