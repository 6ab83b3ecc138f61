package editor

import (
	"net/url"
)

type TextAlign int

const (
	LeftAlign TextAlign = iota
	CenterAlign
	RightAlign
	JustifyAlign
)

func (a TextAlign) String() string {
	switch a {
	case CenterAlign:
		return "center"
	case RightAlign:
		return "right"
	case JustifyAlign:
		return "justify"
	}
	return "left"
}

// Document - содержимое редактора в виде последовательности блоков.
// Элементы: Heading, Paragraph, List, Quote, CodeBlock, HorizontalLine, *Image, Table, Media.
type Document struct {
	Elements []any
}

type Heading struct {
	Level   int
	Content []any
	Align   TextAlign
}

// Paragraph содержит Text, HardBreak и *Image (встроенные изображения).
type Paragraph struct {
	Content []any
	Indent  int // уровень отступа блока, 1 уровень = 40px
	Align   TextAlign
}

type Text struct {
	Content string
	Size    int // px, 0 - размер по умолчанию
	Family  string

	Strong        bool
	Italic        bool
	Underlined    bool
	Strikethrough bool
	Code          bool
	Sup           bool
	Sub           bool

	Color     *Color
	BgColor   *Color
	Highlight string // marker-yellow, pen-red...

	URL *url.URL
}

type HardBreak struct{}

type ListElement struct {
	// Paragraph и вложенные List
	Content []any
	Checked bool
}

type List struct {
	Elements  []ListElement
	Numbered  bool
	TaskList  bool
	StyleType string // list-style-type: decimal, lower-roman, disc, square...
	Start     int
	Reversed  bool
}

type Quote struct {
	Content []any
}

type CodeBlock struct {
	Language string
	Content  string
}

type HorizontalLine struct{}

type ImageStyle string

const (
	ImageInline ImageStyle = "inline"
	ImageBlock  ImageStyle = "block"
	ImageSide   ImageStyle = "side"
)

type Image struct {
	Src   *url.URL
	Alt   string
	Width int // px
	// Ширина в процентах от ширины текста (image_resized), 0 - не задана
	WidthPercent float64
	Align        TextAlign
	Style        ImageStyle
	Caption      []any
}

type Table struct {
	ColWidth   []float64 // проценты, 0 - автоматическая ширина
	Rows       [][]TableCell
	HeaderRows int
	Caption    []any
}

type TableCell struct {
	Content []any
	ColSpan int
	RowSpan int
	Header  bool
	BgColor *Color
}

// Media - встроенное медиа (oembed).
type Media struct {
	URL string
}
