package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/aisa-it/richtext/internal/richtext/editor"
)

const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"

	relHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relImage     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumbering = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"

	emuPerMM = 36000
)

var wordHighlights = map[string]string{
	"marker-yellow": "yellow",
	"marker-green":  "green",
	"marker-pink":   "magenta",
	"marker-blue":   "cyan",
}

var imageExt = map[string]string{
	"png":  "png",
	"jpeg": "jpeg",
	"gif":  "gif",
}

type docxRel struct {
	ID       string
	Type     string
	Target   string
	External bool
}

type docxMedia struct {
	name string
	data []byte
}

type docxNum struct {
	format string
	text   string
	start  int
}

type docxWriter struct {
	ctx    context.Context
	images ImageSource
	setup  PageSetup

	body  strings.Builder
	rels  []docxRel
	media []docxMedia
	nums  []docxNum

	imageRels map[string]imageRef
	drawingID int
}

type imageRef struct {
	relID         string
	width, height int
}

func twips(mm float64) int {
	return int(math.Round(mm / 25.4 * 1440))
}

func esc(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// Word записывает документ в out в формате DOCX.
func (e *Exporter) Word(ctx context.Context, doc *editor.Document, setup PageSetup, title string, out io.Writer) error {
	w := &docxWriter{
		ctx:       ctx,
		images:    e.images,
		setup:     setup,
		imageRels: make(map[string]imageRef),
		rels: []docxRel{
			{ID: "rId1", Type: relStyles, Target: "styles.xml"},
			{ID: "rId2", Type: relNumbering, Target: "numbering.xml"},
		},
	}

	w.writeBlocks(doc.Elements, 0)
	if len(doc.Elements) == 0 {
		w.body.WriteString(`<w:p/>`)
	} else if _, ok := doc.Elements[len(doc.Elements)-1].(editor.Table); ok {
		w.body.WriteString(`<w:p/>`)
	}

	return w.writePackage(out, title)
}

func (w *docxWriter) addRel(typ, target string, external bool) string {
	id := fmt.Sprintf("rId%d", len(w.rels)+1)
	w.rels = append(w.rels, docxRel{ID: id, Type: typ, Target: target, External: external})
	return id
}

func (w *docxWriter) writeBlocks(blocks []any, listLevel int) {
	for _, b := range blocks {
		w.writeBlock(b, listLevel)
	}
}

func (w *docxWriter) writeBlock(rawElement any, listLevel int) {
	switch el := rawElement.(type) {
	case editor.Heading:
		w.paragraph(fmt.Sprintf(`<w:pStyle w:val="Heading%d"/>`, min(max(el.Level, 1), 6))+jc(el.Align), el.Content, editor.Text{})
	case editor.Paragraph:
		ppr := ""
		if el.Indent > 0 {
			ppr += fmt.Sprintf(`<w:ind w:left="%d"/>`, el.Indent*720)
		}
		w.paragraph(ppr+jc(el.Align), el.Content, editor.Text{})
	case editor.List:
		w.writeList(el, listLevel)
	case editor.Quote:
		for _, b := range el.Content {
			if p, ok := b.(editor.Paragraph); ok {
				w.paragraph(`<w:pStyle w:val="Quote"/>`+jc(p.Align), p.Content, editor.Text{})
				continue
			}
			w.writeBlock(b, listLevel)
		}
	case editor.CodeBlock:
		w.body.WriteString(`<w:p><w:pPr><w:pStyle w:val="Code"/></w:pPr>`)
		for i, line := range strings.Split(strings.TrimRight(el.Content, "\n"), "\n") {
			if i > 0 {
				w.body.WriteString(`<w:r><w:br/></w:r>`)
			}
			fmt.Fprintf(&w.body, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, esc(line))
		}
		w.body.WriteString(`</w:p>`)
	case editor.HorizontalLine:
		w.body.WriteString(`<w:p><w:pPr><w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="BFBFBF"/></w:pBdr></w:pPr></w:p>`)
	case *editor.Image:
		w.body.WriteString(`<w:p><w:pPr>` + jc(el.Align) + `</w:pPr>`)
		w.image(el, w.setup.ContentWidth())
		w.body.WriteString(`</w:p>`)
		if len(el.Caption) > 0 {
			w.paragraph(`<w:pStyle w:val="Caption"/>`, el.Caption, editor.Text{})
		}
	case editor.Table:
		w.writeTable(el)
	case editor.Media:
		link := editor.Text{Content: el.URL}
		if u, err := url.Parse(el.URL); err == nil {
			link.URL = u
		}
		w.paragraph("", []any{link}, editor.Text{})
	}
}

func jc(a editor.TextAlign) string {
	switch a {
	case editor.CenterAlign:
		return `<w:jc w:val="center"/>`
	case editor.RightAlign:
		return `<w:jc w:val="right"/>`
	case editor.JustifyAlign:
		return `<w:jc w:val="both"/>`
	}
	return ""
}

// paragraph пишет абзац с заданными свойствами pPr и содержимым.
func (w *docxWriter) paragraph(ppr string, content []any, base editor.Text) {
	w.body.WriteString(`<w:p>`)
	if ppr != "" {
		w.body.WriteString(`<w:pPr>` + ppr + `</w:pPr>`)
	}
	w.runs(content, base)
	w.body.WriteString(`</w:p>`)
}

func (w *docxWriter) runs(content []any, base editor.Text) {
	for _, c := range content {
		switch t := c.(type) {
		case editor.Text:
			t = mergeStyle(t, base)
			run := fmt.Sprintf(`<w:r>%s<w:t xml:space="preserve">%s</w:t></w:r>`, runProps(t), esc(t.Content))
			if t.URL != nil && t.URL.IsAbs() {
				id := w.addRel(relHyperlink, t.URL.String(), true)
				run = fmt.Sprintf(`<w:hyperlink r:id="%s">%s</w:hyperlink>`, id, run)
			}
			w.body.WriteString(run)
		case editor.HardBreak:
			w.body.WriteString(`<w:r><w:br/></w:r>`)
		case *editor.Image:
			w.image(t, w.setup.ContentWidth())
		}
	}
}

func runProps(t editor.Text) string {
	var sb strings.Builder
	if t.URL != nil {
		sb.WriteString(`<w:rStyle w:val="Hyperlink"/>`)
	}
	family := t.Family
	if t.Code {
		family = "Consolas"
	}
	if family != "" {
		fmt.Fprintf(&sb, `<w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:cs="%[1]s"/>`, esc(family))
	}
	if t.Strong {
		sb.WriteString(`<w:b/>`)
	}
	if t.Italic {
		sb.WriteString(`<w:i/>`)
	}
	if t.Strikethrough {
		sb.WriteString(`<w:strike/>`)
	}
	switch {
	case t.Color != nil:
		fmt.Fprintf(&sb, `<w:color w:val="%s"/>`, strings.ToUpper(t.Color.Hex()))
	case strings.HasPrefix(t.Highlight, "pen-"):
		c := highlightColors[t.Highlight]
		fmt.Fprintf(&sb, `<w:color w:val="%s"/>`, strings.ToUpper(c.Hex()))
	}
	if t.Size > 0 {
		// половины пунктов
		fmt.Fprintf(&sb, `<w:sz w:val="%d"/>`, int(math.Round(float64(t.Size)*0.75*2)))
	}
	if h, ok := wordHighlights[t.Highlight]; ok {
		fmt.Fprintf(&sb, `<w:highlight w:val="%s"/>`, h)
	}
	if t.Underlined {
		sb.WriteString(`<w:u w:val="single"/>`)
	}
	if t.BgColor != nil && t.BgColor.A > 0 {
		fmt.Fprintf(&sb, `<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, strings.ToUpper(t.BgColor.Hex()))
	}
	switch {
	case t.Sup:
		sb.WriteString(`<w:vertAlign w:val="superscript"/>`)
	case t.Sub:
		sb.WriteString(`<w:vertAlign w:val="subscript"/>`)
	}
	if sb.Len() == 0 {
		return ""
	}
	return "<w:rPr>" + sb.String() + "</w:rPr>"
}

func (w *docxWriter) newNum(l editor.List) int {
	n := docxNum{format: "bullet", text: "•", start: 1}
	if l.Numbered {
		n.format, n.text = "decimal", "%1."
		switch l.StyleType {
		case "lower-roman":
			n.format = "lowerRoman"
		case "upper-roman":
			n.format = "upperRoman"
		case "lower-latin", "lower-alpha":
			n.format = "lowerLetter"
		case "upper-latin", "upper-alpha":
			n.format = "upperLetter"
		case "decimal-leading-zero":
			n.format = "decimalZero"
		}
		if l.Start > 0 {
			n.start = l.Start
		}
	} else {
		switch l.StyleType {
		case "circle":
			n.text = "◦"
		case "square":
			n.text = "▪"
		}
	}
	w.nums = append(w.nums, n)
	return len(w.nums)
}

func (w *docxWriter) writeList(l editor.List, level int) {
	numID := 0
	if !l.TaskList {
		numID = w.newNum(l)
	}

	for _, item := range l.Elements {
		first := true
		for _, c := range item.Content {
			p, ok := c.(editor.Paragraph)
			if !ok {
				if nested, isList := c.(editor.List); isList {
					w.writeList(nested, level+1)
				} else {
					w.writeBlock(c, level+1)
				}
				continue
			}

			var ppr string
			switch {
			case l.TaskList:
				ppr = fmt.Sprintf(`<w:ind w:left="%d" w:hanging="360"/>`, 720*(level+1))
				if first {
					mark := "☐ "
					if item.Checked {
						mark = "☑ "
					}
					p.Content = append([]any{editor.Text{Content: mark}}, p.Content...)
				}
			case first:
				ppr = fmt.Sprintf(`<w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%d"/></w:numPr>`, min(level, 8), numID)
			default:
				ppr = fmt.Sprintf(`<w:ind w:left="%d"/>`, 720*(level+1))
			}
			w.paragraph(`<w:pStyle w:val="ListParagraph"/>`+ppr+jc(p.Align), p.Content, editor.Text{})
			first = false
		}
	}
}

func (w *docxWriter) loadImage(img *editor.Image) (imageRef, bool) {
	if img.Src == nil || w.images == nil {
		return imageRef{}, false
	}
	key := img.Src.String()
	if ref, ok := w.imageRels[key]; ok {
		return ref, ref.relID != ""
	}

	ref := imageRef{}
	defer func() { w.imageRels[key] = ref }()

	body, _, err := w.images.OpenImage(w.ctx, img.Src)
	if err != nil {
		slog.Warn("Export image unavailable", "src", key, "err", err)
		return ref, false
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		slog.Warn("Export image read", "src", key, "err", err)
		return ref, false
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		slog.Warn("Export image decode", "src", key, "err", err)
		return ref, false
	}
	ext, ok := imageExt[format]
	if !ok {
		return ref, false
	}

	name := fmt.Sprintf("image%d.%s", len(w.media)+1, ext)
	w.media = append(w.media, docxMedia{name: name, data: data})
	ref = imageRef{
		relID:  w.addRel(relImage, "media/"+name, false),
		width:  cfg.Width,
		height: cfg.Height,
	}
	return ref, true
}

func (w *docxWriter) image(img *editor.Image, maxWidth float64) {
	ref, ok := w.loadImage(img)
	if !ok {
		label := img.Alt
		if label == "" && img.Src != nil {
			label = img.Src.String()
		}
		if label == "" {
			label = "image"
		}
		w.runs([]any{editor.Text{Content: "[" + label + "]", Italic: true, URL: img.Src}}, editor.Text{})
		return
	}

	var width float64
	switch {
	case img.WidthPercent > 0:
		width = maxWidth * img.WidthPercent / 100
	case img.Width > 0:
		width = PxToMM(float64(img.Width))
	default:
		width = PxToMM(float64(ref.width))
	}
	width = math.Min(width, maxWidth)
	height := width * float64(ref.height) / float64(max(ref.width, 1))

	w.drawingID++
	cx, cy := int(width*emuPerMM), int(height*emuPerMM)
	fmt.Fprintf(&w.body, `<w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%[1]d" cy="%[2]d"/><wp:docPr id="%[3]d" name="Picture %[3]d" descr="%[4]s"/>`+
		`<a:graphic><a:graphicData uri="%[5]s"><pic:pic><pic:nvPicPr><pic:cNvPr id="%[3]d" name="Picture %[3]d"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%[6]s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%[1]d" cy="%[2]d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`,
		cx, cy, w.drawingID, esc(img.Alt), nsPic, ref.relID)
}

func (w *docxWriter) writeTable(t editor.Table) {
	cells, cols := tableLayout(t)
	if cols == 0 {
		return
	}
	total := w.setup.ContentWidth()
	colWidth := columnWidths(t, cols, total)

	w.body.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="5000" w:type="pct"/></w:tblPr><w:tblGrid>`)
	for _, cw := range colWidth {
		fmt.Fprintf(&w.body, `<w:gridCol w:w="%d"/>`, twips(cw))
	}
	w.body.WriteString(`</w:tblGrid>`)

	// ячейки-продолжения объединения по вертикали
	continued := map[[2]int]tableCellPos{}
	for _, p := range cells {
		for r := p.row + 1; r < p.row+p.cell.RowSpan && r < len(t.Rows); r++ {
			continued[[2]int{r, p.col}] = p
		}
	}

	ci := 0
	for r := range t.Rows {
		w.body.WriteString(`<w:tr>`)
		if r < t.HeaderRows {
			w.body.WriteString(`<w:trPr><w:tblHeader/></w:trPr>`)
		}
		for c := 0; c < cols; {
			if p, ok := continued[[2]int{r, c}]; ok {
				fmt.Fprintf(&w.body, `<w:tc><w:tcPr>%s<w:vMerge/></w:tcPr><w:p/></w:tc>`, gridSpan(p.cell))
				c += max(p.cell.ColSpan, 1)
				continue
			}
			if ci < len(cells) && cells[ci].row == r && cells[ci].col == c {
				p := cells[ci]
				ci++
				w.writeCell(p, colWidth)
				c += max(p.cell.ColSpan, 1)
				continue
			}
			// строка короче сетки
			w.body.WriteString(`<w:tc><w:p/></w:tc>`)
			c++
		}
		w.body.WriteString(`</w:tr>`)
	}
	w.body.WriteString(`</w:tbl>`)

	if len(t.Caption) > 0 {
		w.paragraph(`<w:pStyle w:val="Caption"/>`, t.Caption, editor.Text{})
	}
}

func gridSpan(c editor.TableCell) string {
	if c.ColSpan > 1 {
		return fmt.Sprintf(`<w:gridSpan w:val="%d"/>`, c.ColSpan)
	}
	return ""
}

func (w *docxWriter) writeCell(p tableCellPos, colWidth []float64) {
	width := 0.0
	for c := p.col; c < p.col+max(p.cell.ColSpan, 1) && c < len(colWidth); c++ {
		width += colWidth[c]
	}

	fmt.Fprintf(&w.body, `<w:tc><w:tcPr><w:tcW w:w="%d" w:type="dxa"/>%s`, twips(width), gridSpan(p.cell))
	if p.cell.RowSpan > 1 {
		w.body.WriteString(`<w:vMerge w:val="restart"/>`)
	}
	switch {
	case p.cell.BgColor != nil:
		fmt.Fprintf(&w.body, `<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, strings.ToUpper(p.cell.BgColor.Hex()))
	case p.cell.Header:
		w.body.WriteString(`<w:shd w:val="clear" w:color="auto" w:fill="E5EDFA"/>`)
	}
	w.body.WriteString(`</w:tcPr>`)

	base := editor.Text{Strong: p.cell.Header}
	if len(p.cell.Content) == 0 {
		w.body.WriteString(`<w:p/>`)
	}
	for _, b := range p.cell.Content {
		if para, ok := b.(editor.Paragraph); ok {
			w.paragraph(jc(para.Align), para.Content, base)
			continue
		}
		w.writeBlock(b, 0)
	}
	w.body.WriteString(`</w:tc>`)
}

func (w *docxWriter) writePackage(out io.Writer, title string) error {
	zw := zip.NewWriter(out)

	files := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"docProps/core.xml", coreXML(title)},
		{"word/document.xml", w.documentXML()},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", w.numberingXML()},
		{"word/_rels/document.xml.rels", w.relsXML()},
	}
	for _, f := range files {
		fw, err := zw.Create(f.name)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(fw, f.content); err != nil {
			return err
		}
	}
	for _, m := range w.media {
		fw, err := zw.Create("word/media/" + m.name)
		if err != nil {
			return err
		}
		if _, err := fw.Write(m.data); err != nil {
			return err
		}
	}
	return zw.Close()
}

func (w *docxWriter) documentXML() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	fmt.Fprintf(&sb, `<w:document xmlns:w="%s" xmlns:r="%s" xmlns:wp="%s" xmlns:a="%s" xmlns:pic="%s"><w:body>`, nsW, nsR, nsWP, nsA, nsPic)
	sb.WriteString(w.body.String())

	orient := ""
	if w.setup.Orientation == Landscape {
		orient = ` w:orient="landscape"`
	}
	m := w.setup.Margins
	fmt.Fprintf(&sb, `<w:sectPr><w:pgSz w:w="%d" w:h="%d"%s/><w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr>`,
		twips(w.setup.Width), twips(w.setup.Height), orient, twips(m.Top), twips(m.Right), twips(m.Bottom), twips(m.Left))
	sb.WriteString(`</w:body></w:document>`)
	return sb.String()
}

func (w *docxWriter) relsXML() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range w.rels {
		mode := ""
		if r.External {
			mode = ` TargetMode="External"`
		}
		fmt.Fprintf(&sb, `<Relationship Id="%s" Type="%s" Target="%s"%s/>`, r.ID, r.Type, esc(r.Target), mode)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

func (w *docxWriter) numberingXML() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	fmt.Fprintf(&sb, `<w:numbering xmlns:w="%s">`, nsW)
	for i, n := range w.nums {
		fmt.Fprintf(&sb, `<w:abstractNum w:abstractNumId="%d"><w:multiLevelType w:val="hybridMultilevel"/>`, i+1)
		for lvl := 0; lvl < 9; lvl++ {
			text := n.text
			if n.format != "bullet" {
				text = fmt.Sprintf("%%%d.", lvl+1)
			}
			fmt.Fprintf(&sb, `<w:lvl w:ilvl="%d"><w:start w:val="%d"/><w:numFmt w:val="%s"/><w:lvlText w:val="%s"/><w:lvlJc w:val="left"/><w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr></w:lvl>`,
				lvl, n.start, n.format, esc(text), 720*(lvl+1))
		}
		sb.WriteString(`</w:abstractNum>`)
	}
	for i := range w.nums {
		fmt.Fprintf(&sb, `<w:num w:numId="%[1]d"><w:abstractNumId w:val="%[1]d"/></w:num>`, i+1)
	}
	sb.WriteString(`</w:numbering>`)
	return sb.String()
}

func coreXML(title string) string {
	now := time.Now().UTC().Format(time.RFC3339)
	return xml.Header + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + esc(title) + `</dc:title><dc:creator>richtext</dc:creator>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + now + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + now + `</dcterms:modified></cp:coreProperties>`
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Default Extension="png" ContentType="image/png"/>` +
	`<Default Extension="jpeg" ContentType="image/jpeg"/>` +
	`<Default Extension="gif" ContentType="image/gif"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

const stylesXML = xml.Header + `<w:styles xmlns:w="` + nsW + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="22"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="120" w:line="276" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:spacing w:before="240"/><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="44"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:spacing w:before="200"/><w:outlineLvl w:val="1"/></w:pPr><w:rPr><w:b/><w:sz w:val="36"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:spacing w:before="160"/><w:outlineLvl w:val="2"/></w:pPr><w:rPr><w:b/><w:sz w:val="30"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading4"><w:name w:val="heading 4"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:outlineLvl w:val="3"/></w:pPr><w:rPr><w:b/><w:sz w:val="26"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading5"><w:name w:val="heading 5"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:outlineLvl w:val="4"/></w:pPr><w:rPr><w:b/><w:sz w:val="24"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading6"><w:name w:val="heading 6"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:outlineLvl w:val="5"/></w:pPr><w:rPr><w:b/><w:i/><w:sz w:val="22"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="ListParagraph"><w:name w:val="List Paragraph"/><w:basedOn w:val="Normal"/><w:pPr><w:spacing w:after="60"/><w:contextualSpacing/></w:pPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Quote"><w:name w:val="Quote"/><w:basedOn w:val="Normal"/><w:pPr><w:pBdr><w:left w:val="single" w:sz="18" w:space="8" w:color="CCCCCC"/></w:pBdr><w:ind w:left="340"/></w:pPr><w:rPr><w:i/><w:color w:val="555555"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Code"><w:name w:val="Code"/><w:basedOn w:val="Normal"/><w:pPr><w:shd w:val="clear" w:color="auto" w:fill="F5F5F5"/><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr><w:rPr><w:rFonts w:ascii="Consolas" w:hAnsi="Consolas" w:cs="Consolas"/><w:sz w:val="19"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Caption"><w:name w:val="caption"/><w:basedOn w:val="Normal"/><w:pPr><w:jc w:val="center"/></w:pPr><w:rPr><w:i/><w:sz w:val="20"/></w:rPr></w:style>` +
	`<w:style w:type="character" w:styleId="Hyperlink"><w:name w:val="Hyperlink"/><w:rPr><w:color w:val="1A5FB4"/><w:u w:val="single"/></w:rPr></w:style>` +
	`<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:tblPr><w:tblBorders>` +
	`<w:top w:val="single" w:sz="4" w:space="0" w:color="BFBFBF"/><w:left w:val="single" w:sz="4" w:space="0" w:color="BFBFBF"/>` +
	`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="BFBFBF"/><w:right w:val="single" w:sz="4" w:space="0" w:color="BFBFBF"/>` +
	`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="BFBFBF"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="BFBFBF"/>` +
	`</w:tblBorders><w:tblCellMar><w:left w:w="85" w:type="dxa"/><w:right w:w="85" w:type="dxa"/></w:tblCellMar></w:tblPr></w:style>` +
	`</w:styles>`
