package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/url"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/aisa-it/richtext/internal/richtext/editor"
)

const (
	defaultFontSizePt = 11.0
	codeFontSizePt    = 9.5
	lineHeightK       = 1.35
	listIndent        = 6.0
	quoteIndent       = 6.0
	cellPadding       = 1.5
)

var headingSizes = map[int]float64{1: 22, 2: 18, 3: 15, 4: 13, 5: 12, 6: 11}

// Цвета плагина Highlight
var highlightColors = map[string]editor.Color{
	"marker-yellow": {R: 0xfd, G: 0xfd, B: 0x77, A: 255},
	"marker-green":  {R: 0x62, G: 0xf9, B: 0x62, A: 255},
	"marker-pink":   {R: 0xfc, G: 0x78, B: 0x99, A: 255},
	"marker-blue":   {R: 0x72, G: 0xcc, B: 0xfd, A: 255},
	"pen-red":       {R: 0xe7, G: 0x13, B: 0x13, A: 255},
	"pen-green":     {R: 0x12, G: 0x8a, B: 0x00, A: 255},
}

// Exporter формирует PDF и DOCX из документа редактора.
type Exporter struct {
	images ImageSource
	fonts  *Fonts
}

func NewExporter(images ImageSource, fonts *Fonts) *Exporter {
	return &Exporter{images: images, fonts: fonts}
}

type pdfWriter struct {
	ctx    context.Context
	pdf    *fpdf.Fpdf
	setup  PageSetup
	images ImageSource

	tr     func(string) string
	family string
	mono   string

	failedImages  map[string]bool
	bookmarkLevel int
}

// PDF записывает документ в out в формате PDF.
func (e *Exporter) PDF(ctx context.Context, doc *editor.Document, setup PageSetup, title string, out io.Writer) error {
	orientation := "P"
	if setup.Orientation == Landscape {
		orientation = "L"
	}
	w, h := setup.Width, setup.Height
	if setup.Orientation == Landscape {
		w, h = h, w
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})

	pw := &pdfWriter{
		ctx:           ctx,
		pdf:           pdf,
		setup:         setup,
		images:        e.images,
		failedImages:  make(map[string]bool),
		bookmarkLevel: -1,
	}
	pw.loadFonts(e.fonts)

	pdf.SetMargins(setup.Margins.Left, setup.Margins.Top, setup.Margins.Right)
	pdf.SetAutoPageBreak(true, setup.Margins.Bottom)
	pdf.SetTitle(title, true)
	pdf.SetCreator("richtext", true)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-(setup.Margins.Bottom / 2) - 3)
		pdf.SetFont(pw.family, "", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d / {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.SetFont(pw.family, "", defaultFontSizePt)
	pdf.AddPage()

	pw.writeBlocks(doc.Elements)

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.Output(out)
}

func (w *pdfWriter) loadFonts(fonts *Fonts) {
	if fonts == nil {
		w.family = "Helvetica"
		w.mono = "Courier"
		w.tr = w.pdf.UnicodeTranslatorFromDescriptor("")
		return
	}

	w.family = "Main"
	w.pdf.AddUTF8FontFromBytes(w.family, "", fonts.Regular)
	w.pdf.AddUTF8FontFromBytes(w.family, "B", fonts.Bold)
	w.pdf.AddUTF8FontFromBytes(w.family, "I", fonts.Italic)
	w.pdf.AddUTF8FontFromBytes(w.family, "BI", fonts.BoldItalic)

	w.mono = w.family
	if fonts.Mono != nil {
		w.mono = "Mono"
		w.pdf.AddUTF8FontFromBytes(w.mono, "", fonts.Mono)
	}

	w.tr = func(s string) string { return cleanUnsupportedSymbols(s) }
}

func (w *pdfWriter) left() float64 {
	l, _, _, _ := w.pdf.GetMargins()
	return l
}

func (w *pdfWriter) right() float64 {
	_, _, r, _ := w.pdf.GetMargins()
	return r
}

func (w *pdfWriter) contentWidth() float64 {
	pW, _ := w.pdf.GetPageSize()
	return pW - w.left() - w.right()
}

func (w *pdfWriter) lineHeight() float64 {
	_, s := w.pdf.GetFontSize()
	return s * lineHeightK
}

func (w *pdfWriter) writeBlocks(blocks []any) {
	for _, rawElement := range blocks {
		w.writeBlock(rawElement)
	}
}

func (w *pdfWriter) writeBlock(rawElement any) {
	switch el := rawElement.(type) {
	case editor.Heading:
		w.writeHeading(el)
	case editor.Paragraph:
		w.writeParagraph(el)
	case editor.List:
		w.writeList(el, 0)
	case editor.Quote:
		w.writeQuote(el)
	case editor.CodeBlock:
		w.writeCodeBlock(el)
	case editor.HorizontalLine:
		w.writeHorizontalLine()
	case *editor.Image:
		w.writeBlockImage(el)
	case editor.Table:
		w.writeTable(el)
	case editor.Media:
		w.resetText(editor.Text{})
		w.pdf.WriteLinkString(w.lineHeight(), w.tr(el.URL), el.URL)
		w.pdf.Ln(-1)
	}
}

func (w *pdfWriter) writeHeading(h editor.Heading) {
	size := headingSizes[h.Level]
	if size == 0 {
		size = defaultFontSizePt
	}

	level := min(h.Level-1, w.bookmarkLevel+1)
	w.bookmarkLevel = max(level, 0)
	if text := plainText(h.Content); text != "" {
		w.pdf.Bookmark(text, max(level, 0), -1)
	}

	w.pdf.Ln(size * 0.2)
	w.writeInline(h.Content, h.Align, editor.Text{Strong: true}, size)
	w.pdf.Ln(size * 0.15)
}

func (w *pdfWriter) writeParagraph(p editor.Paragraph) {
	if p.Indent > 0 {
		l := w.left()
		w.pdf.SetLeftMargin(l + float64(p.Indent)*PxToMM(40))
		w.pdf.SetX(w.left())
		defer w.pdf.SetLeftMargin(l)
	}
	w.writeInline(p.Content, p.Align, editor.Text{}, defaultFontSizePt)
	w.pdf.Ln(1.5)
}

// writeInline выводит текстовые фрагменты и встроенные изображения и завершает строку.
func (w *pdfWriter) writeInline(content []any, align editor.TextAlign, base editor.Text, sizePt float64) {
	w.pdf.SetFontSize(sizePt)

	if align == editor.CenterAlign || align == editor.RightAlign {
		if text, ok := onlyText(content); ok {
			style := base
			if len(content) > 0 {
				style = mergeStyle(content[0].(editor.Text), base)
			}
			w.resetText(style)
			w.setFontSize(style, sizePt)
			alignStr := "C"
			if align == editor.RightAlign {
				alignStr = "R"
			}
			w.pdf.WriteAligned(0, w.lineHeight(), w.tr(text), alignStr)
			w.pdf.Ln(w.lineHeight())
			return
		}
	}

	for _, c := range content {
		switch tt := c.(type) {
		case editor.Text:
			w.writeText(mergeStyle(tt, base), sizePt)
		case editor.HardBreak:
			w.pdf.Ln(w.lineHeight())
		case *editor.Image:
			w.writeInlineImage(tt)
		}
	}
	w.pdf.Ln(w.lineHeight())
}

func (w *pdfWriter) writeText(t editor.Text, sizePt float64) {
	w.resetText(t)
	size := w.setFontSize(t, sizePt)

	text := w.tr(t.Content)
	h := w.lineHeight()
	link := ""
	if t.URL != nil {
		link = t.URL.String()
	}

	if t.Sub || t.Sup {
		offset := size * 0.35
		if t.Sub {
			offset = -size * 0.2
		}
		w.pdf.SubWrite(h, text, size*0.7, offset, 0, link)
		return
	}

	if bg := backgroundColor(t); bg != nil {
		x := w.pdf.GetX()
		_, s := w.pdf.GetFontSize()
		w.pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
		width := w.pdf.GetStringWidth(text)
		pW, _ := w.pdf.GetPageSize()
		if x+width <= pW-w.right() {
			w.pdf.Rect(x, w.pdf.GetY()+(h-s)/2-0.3, width, s+0.6, "F")
		}
	}

	w.pdf.WriteLinkString(h, text, link)
}

// resetText выставляет шрифт и цвет фрагмента.
func (w *pdfWriter) resetText(t editor.Text) {
	family := w.family
	style := ""
	if t.Code {
		family = w.mono
	} else {
		if t.Strong {
			style += "B"
		}
		if t.Italic {
			style += "I"
		}
	}
	if t.Underlined || t.URL != nil {
		style += "U"
	}
	if t.Strikethrough {
		style += "S"
	}
	ptSize, _ := w.pdf.GetFontSize()
	w.pdf.SetFont(family, style, ptSize)

	switch {
	case t.Color != nil:
		w.pdf.SetTextColor(int(t.Color.R), int(t.Color.G), int(t.Color.B))
	case strings.HasPrefix(t.Highlight, "pen-"):
		c := highlightColors[t.Highlight]
		w.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	case t.URL != nil:
		w.pdf.SetTextColor(0x1a, 0x5f, 0xb4)
	default:
		w.pdf.SetTextColor(0, 0, 0)
	}
}

func (w *pdfWriter) setFontSize(t editor.Text, sizePt float64) float64 {
	if t.Size > 0 {
		sizePt = float64(t.Size) * 0.75
	}
	w.pdf.SetFontSize(sizePt)
	return sizePt
}

func backgroundColor(t editor.Text) *editor.Color {
	if t.BgColor != nil && t.BgColor.A > 0 {
		return t.BgColor
	}
	if c, ok := highlightColors[t.Highlight]; ok && strings.HasPrefix(t.Highlight, "marker-") {
		return &c
	}
	return nil
}

func mergeStyle(t editor.Text, base editor.Text) editor.Text {
	t.Strong = t.Strong || base.Strong
	t.Italic = t.Italic || base.Italic
	return t
}

func (w *pdfWriter) writeList(l editor.List, level int) {
	baseLeft := w.left()
	defer func() {
		w.pdf.SetLeftMargin(baseLeft)
		w.pdf.SetX(baseLeft)
	}()

	for i, item := range l.Elements {
		w.pdf.SetLeftMargin(baseLeft)
		w.pdf.SetX(baseLeft)
		w.resetText(editor.Text{})
		w.pdf.SetFontSize(defaultFontSizePt)
		w.pdf.Write(w.lineHeight(), w.tr(listMarker(l, i, item)))

		w.pdf.SetLeftMargin(baseLeft + listIndent)
		w.pdf.SetX(baseLeft + listIndent)
		if len(item.Content) == 0 {
			w.pdf.Ln(-1)
		}
		for _, c := range item.Content {
			switch cc := c.(type) {
			case editor.Paragraph:
				w.writeInline(cc.Content, cc.Align, editor.Text{}, defaultFontSizePt)
			case editor.List:
				w.writeList(cc, level+1)
			default:
				w.writeBlock(cc)
			}
		}
	}
	w.pdf.Ln(1)
}

func listMarker(l editor.List, i int, item editor.ListElement) string {
	if l.TaskList {
		if item.Checked {
			return "[x]"
		}
		return "[ ]"
	}
	if !l.Numbered {
		switch l.StyleType {
		case "circle":
			return "o"
		case "square":
			return "-"
		}
		return "•"
	}

	n := i + 1
	if l.Start > 0 {
		n = l.Start + i
	}
	if l.Reversed {
		start := l.Start
		if start == 0 {
			start = len(l.Elements)
		}
		n = start - i
	}

	switch l.StyleType {
	case "lower-roman":
		return strings.ToLower(toRoman(n)) + "."
	case "upper-roman":
		return toRoman(n) + "."
	case "lower-latin", "lower-alpha":
		return toLatin(n) + "."
	case "upper-latin", "upper-alpha":
		return strings.ToUpper(toLatin(n)) + "."
	case "decimal-leading-zero":
		return fmt.Sprintf("%02d.", n)
	}
	return fmt.Sprintf("%d.", n)
}

func toRoman(n int) string {
	if n <= 0 {
		return fmt.Sprint(n)
	}
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	var sb strings.Builder
	for i, v := range values {
		for n >= v {
			sb.WriteString(symbols[i])
			n -= v
		}
	}
	return sb.String()
}

func toLatin(n int) string {
	if n <= 0 {
		return fmt.Sprint(n)
	}
	var res []byte
	for n > 0 {
		n--
		res = append([]byte{byte('a' + n%26)}, res...)
		n /= 26
	}
	return string(res)
}

func (w *pdfWriter) writeQuote(q editor.Quote) {
	baseLeft := w.left()
	w.pdf.Ln(1)
	y1 := w.pdf.GetY()

	w.pdf.SetLeftMargin(baseLeft + quoteIndent)
	w.pdf.SetX(baseLeft + quoteIndent)
	w.writeBlocks(q.Content)
	w.pdf.SetLeftMargin(baseLeft)
	w.pdf.SetX(baseLeft)

	y2 := w.pdf.GetY()
	if y2 > y1 {
		w.pdf.SetLineWidth(0.8)
		w.pdf.SetDrawColor(204, 204, 204)
		w.pdf.Line(baseLeft+1.5, y1, baseLeft+1.5, y2)
		w.pdf.SetLineWidth(0.2)
	}
	w.pdf.Ln(1)
}

func (w *pdfWriter) writeCodeBlock(c editor.CodeBlock) {
	w.pdf.SetFont(w.mono, "", codeFontSizePt)
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.SetFillColor(245, 245, 245)
	w.pdf.Ln(1)
	w.pdf.MultiCell(0, w.lineHeight(), w.tr(strings.TrimRight(c.Content, "\n")), "", "L", true)
	w.pdf.Ln(2)
}

func (w *pdfWriter) writeHorizontalLine() {
	w.pdf.Ln(2)
	y := w.pdf.GetY()
	pW, _ := w.pdf.GetPageSize()
	w.pdf.SetLineWidth(0.3)
	w.pdf.SetDrawColor(200, 200, 200)
	w.pdf.Line(w.left(), y, pW-w.right(), y)
	w.pdf.SetLineWidth(0.2)
	w.pdf.Ln(3)
}

// registerImage загружает изображение и регистрирует его в документе. Возвращает nil, если изображение недоступно.
func (w *pdfWriter) registerImage(img *editor.Image) *fpdf.ImageInfoType {
	if img.Src == nil {
		return nil
	}
	name := img.Src.String()
	if info := w.pdf.GetImageInfo(name); info != nil {
		return info
	}
	if w.failedImages[name] || w.images == nil {
		return nil
	}

	body, mime, err := w.images.OpenImage(w.ctx, img.Src)
	if err != nil {
		slog.Warn("Export image unavailable", "src", name, "err", err)
		w.failedImages[name] = true
		return nil
	}
	defer body.Close()

	options := fpdf.ImageOptions{ImageType: w.pdf.ImageTypeFromMime(mime), ReadDpi: true}
	// unsupported image type
	if options.ImageType == "" || w.pdf.Err() {
		w.pdf.ClearError()
		w.failedImages[name] = true
		return nil
	}

	info := w.pdf.RegisterImageOptionsReader(name, options, body)
	if w.pdf.Err() {
		slog.Warn("Export image decode", "src", name, "err", w.pdf.Error())
		w.pdf.ClearError()
		w.failedImages[name] = true
		return nil
	}
	return info
}

func (w *pdfWriter) imageWidth(img *editor.Image, info *fpdf.ImageInfoType, maxWidth float64) float64 {
	var width float64
	switch {
	case img.WidthPercent > 0:
		width = maxWidth * img.WidthPercent / 100
	case img.Width > 0:
		width = PxToMM(float64(img.Width))
	default:
		width = info.Width()
	}
	return math.Min(width, maxWidth)
}

func (w *pdfWriter) writeImageFallback(img *editor.Image) {
	w.resetText(editor.Text{Italic: true})
	label := img.Alt
	if label == "" {
		label = img.Src.String()
	}
	w.pdf.WriteLinkString(w.lineHeight(), w.tr("["+label+"]"), linkOf(img.Src))
}

func (w *pdfWriter) writeBlockImage(img *editor.Image) {
	info := w.registerImage(img)
	if info == nil {
		w.writeImageFallback(img)
		w.pdf.Ln(-1)
		return
	}

	cw := w.contentWidth()
	width := w.imageWidth(img, info, cw)
	x := w.left()
	switch img.Align {
	case editor.CenterAlign:
		x += (cw - width) / 2
	case editor.RightAlign:
		x += cw - width
	}

	w.pdf.Ln(1)
	w.pdf.ImageOptions(img.Src.String(), x, -1, width, 0, true, fpdf.ImageOptions{ReadDpi: true}, 0, linkOf(img.Src))

	if len(img.Caption) > 0 {
		w.writeInline(img.Caption, editor.CenterAlign, editor.Text{Italic: true}, defaultFontSizePt-1)
	}
	w.pdf.Ln(1)
}

func (w *pdfWriter) writeInlineImage(img *editor.Image) {
	info := w.registerImage(img)
	if info == nil {
		w.writeImageFallback(img)
		return
	}
	pW, _ := w.pdf.GetPageSize()
	maxWidth := pW - w.right() - w.pdf.GetX()
	if maxWidth < 10 {
		w.pdf.Ln(-1)
		maxWidth = w.contentWidth()
	}
	width := w.imageWidth(img, info, maxWidth)
	w.pdf.ImageOptions(img.Src.String(), -1, -1, width, 0, true, fpdf.ImageOptions{ReadDpi: true}, 0, linkOf(img.Src))
}

func linkOf(u *url.URL) string {
	if u == nil || !u.IsAbs() {
		return ""
	}
	return u.String()
}

type tableCellPos struct {
	cell editor.TableCell
	row  int
	col  int
}

// tableLayout раскладывает ячейки по сетке с учетом colspan и rowspan.
func tableLayout(t editor.Table) ([]tableCellPos, int) {
	var res []tableCellPos
	occupied := map[[2]int]bool{}
	cols := 0
	for r, row := range t.Rows {
		c := 0
		for _, cell := range row {
			for occupied[[2]int{r, c}] {
				c++
			}
			res = append(res, tableCellPos{cell: cell, row: r, col: c})
			for dr := 0; dr < max(cell.RowSpan, 1); dr++ {
				for dc := 0; dc < max(cell.ColSpan, 1); dc++ {
					occupied[[2]int{r + dr, c + dc}] = true
				}
			}
			c += max(cell.ColSpan, 1)
			cols = max(cols, c)
		}
	}
	return res, cols
}

func columnWidths(t editor.Table, cols int, total float64) []float64 {
	res := make([]float64, cols)
	sum := 0.0
	auto := 0
	for i := range cols {
		if i < len(t.ColWidth) && t.ColWidth[i] > 0 {
			res[i] = t.ColWidth[i]
			sum += t.ColWidth[i]
		} else {
			auto++
		}
	}
	free := 0.0
	if auto > 0 {
		free = math.Max(100-sum, 0) / float64(auto)
		if free == 0 {
			free = 100 / float64(cols)
		}
	}
	sum = 0
	for i := range res {
		if res[i] == 0 {
			res[i] = free
		}
		sum += res[i]
	}
	for i := range res {
		res[i] = total * res[i] / sum
	}
	return res
}

func (w *pdfWriter) writeTable(t editor.Table) {
	cells, cols := tableLayout(t)
	if cols == 0 {
		return
	}
	colWidth := columnWidths(t, cols, w.contentWidth())

	spanWidth := func(p tableCellPos) float64 {
		width := 0.0
		for c := p.col; c < p.col+max(p.cell.ColSpan, 1) && c < cols; c++ {
			width += colWidth[c]
		}
		return width
	}

	rowHeight := make([]float64, len(t.Rows))
	for _, p := range cells {
		if p.cell.RowSpan > 1 {
			continue
		}
		rowHeight[p.row] = max(rowHeight[p.row], w.measureBlocks(p.cell.Content, spanWidth(p)-cellPadding*2)+cellPadding*2)
	}

	baseLeft, _, baseRight, _ := w.pdf.GetMargins()
	pW, pH := w.pdf.GetPageSize()
	_, _, _, bottom := w.pdf.GetMargins()

	rowY := make([]float64, len(t.Rows))
	w.pdf.Ln(1)
	y := w.pdf.GetY()
	ci := 0
	for r := range t.Rows {
		if y+rowHeight[r] > pH-bottom && y > w.setup.Margins.Top+1 {
			w.pdf.AddPage()
			y = w.pdf.GetY()
		}
		rowY[r] = y

		for ; ci < len(cells) && cells[ci].row == r; ci++ {
			p := cells[ci]
			x := baseLeft
			for c := 0; c < p.col; c++ {
				x += colWidth[c]
			}
			width := spanWidth(p)
			height := rowHeight[r]
			for rr := r + 1; rr < r+p.cell.RowSpan && rr < len(t.Rows); rr++ {
				height += rowHeight[rr]
			}

			fill := ""
			switch {
			case p.cell.BgColor != nil:
				w.pdf.SetFillColor(int(p.cell.BgColor.R), int(p.cell.BgColor.G), int(p.cell.BgColor.B))
				fill = "F"
			case p.cell.Header:
				w.SetHexFillColor("#e5edfa")
				fill = "F"
			}
			w.pdf.SetDrawColor(191, 191, 191)
			w.pdf.SetLineWidth(0.2)
			w.pdf.Rect(x, y, width, height, "D"+fill)

			w.pdf.SetLeftMargin(x + cellPadding)
			w.pdf.SetRightMargin(pW - (x + width - cellPadding))
			w.pdf.SetXY(x+cellPadding, y+cellPadding)
			w.pdf.SetAutoPageBreak(false, bottom)
			for _, b := range p.cell.Content {
				if para, ok := b.(editor.Paragraph); ok && p.cell.Header {
					w.writeInline(para.Content, para.Align, editor.Text{Strong: true}, defaultFontSizePt)
					continue
				}
				w.writeBlock(b)
			}
			w.pdf.SetAutoPageBreak(true, bottom)
			w.pdf.SetLeftMargin(baseLeft)
			w.pdf.SetRightMargin(baseRight)
		}
		y += rowHeight[r]
	}

	w.pdf.SetXY(baseLeft, y)
	if len(t.Caption) > 0 {
		w.pdf.Ln(1)
		w.writeInline(t.Caption, editor.CenterAlign, editor.Text{Italic: true}, defaultFontSizePt-1)
	}
	w.pdf.Ln(2)
}

// measureBlocks оценивает высоту блоков при заданной ширине.
func (w *pdfWriter) measureBlocks(blocks []any, width float64) float64 {
	if width <= 0 {
		return 0
	}
	height := 0.0
	for _, b := range blocks {
		switch el := b.(type) {
		case editor.Paragraph:
			height += w.measureInline(el.Content, width, defaultFontSizePt)
		case editor.Heading:
			height += w.measureInline(el.Content, width, headingSizes[el.Level])
		case editor.List:
			for _, item := range el.Elements {
				height += w.measureBlocks(item.Content, width-listIndent)
			}
		case editor.Quote:
			height += w.measureBlocks(el.Content, width-quoteIndent)
		case *editor.Image:
			if info := w.registerImage(el); info != nil && info.Width() > 0 {
				height += w.imageWidth(el, info, width) * info.Height() / info.Width()
			}
		default:
			w.pdf.SetFontSize(defaultFontSizePt)
			height += w.lineHeight()
		}
	}
	return height
}

func (w *pdfWriter) measureInline(content []any, width float64, sizePt float64) float64 {
	if sizePt == 0 {
		sizePt = defaultFontSizePt
	}
	w.pdf.SetFontSize(sizePt)
	lineH := w.lineHeight()

	lines := 1.0
	lineWidth := 0.0
	extra := 0.0
	for _, c := range content {
		switch tt := c.(type) {
		case editor.Text:
			w.resetText(tt)
			size := w.setFontSize(tt, sizePt)
			lineWidth += w.pdf.GetStringWidth(w.tr(tt.Content))
			w.pdf.SetFontSize(sizePt)
			lineH = math.Max(lineH, size*lineHeightK*25.4/72)
		case editor.HardBreak:
			lines += math.Max(math.Ceil(lineWidth/width), 1)
			lineWidth = 0
		case *editor.Image:
			if info := w.registerImage(tt); info != nil && info.Width() > 0 {
				extra += w.imageWidth(tt, info, width) * info.Height() / info.Width()
			}
		}
	}
	lines += math.Max(math.Ceil(lineWidth/width), 1) - 1
	return lines*lineH + extra
}

func (w *pdfWriter) SetHexFillColor(hex string) {
	c, err := editor.ParseColor(hex)
	if err != nil {
		return
	}
	w.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

// cleanUnsupportedSymbols убирает символы вне базовой многоязычной плоскости, которые не поддерживает генератор PDF.
func cleanUnsupportedSymbols(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, s := range text {
		if s < 65536 {
			sb.WriteRune(s)
		}
	}
	return sb.String()
}

func onlyText(content []any) (string, bool) {
	var sb strings.Builder
	for _, c := range content {
		t, ok := c.(editor.Text)
		if !ok {
			return "", false
		}
		sb.WriteString(t.Content)
	}
	return sb.String(), true
}

func plainText(content []any) string {
	var sb strings.Builder
	for _, c := range content {
		if t, ok := c.(editor.Text); ok {
			sb.WriteString(t.Content)
		}
	}
	return strings.TrimSpace(sb.String())
}
