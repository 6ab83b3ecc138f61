// Политики очистки HTML, который приходит из редактора. Политика строится из фильтров htmlSupport конфигурации редактора
// и накладывается поверх базовой UGC-политики, поэтому скрипты, обработчики событий и опасные URL удаляются всегда.
//
// Основные возможности:
//   - Базовый набор элементов, атрибутов и классов, которые создают плагины классической сборки.
//   - Разрешение элементов, атрибутов, классов и стилей по правилам allow (имя или регулярное выражение).
//   - Удаление элементов и их атрибутов, классов и стилей по правилам disallow до санитайзинга.
//   - Ограничение значений стилей регулярными выражениями (цвета, размеры, шрифты, выравнивание).
package policy

import (
	"regexp"
	"slices"
	"strings"

	"github.com/aisa-it/richtext/internal/richtext/editorconfig"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var StripTagsPolicy *bluemonday.Policy = bluemonday.StrictPolicy()

// Default - политика для htmlSupport конфигурации редактора по умолчанию.
var Default = New(*editorconfig.Default().HtmlSupport)

var (
	colorRegexp   = regexp.MustCompile(`^(#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|(rgb|rgba|hsl|hsla)\([\d\s.,%]+\)|[a-zA-Z]+)$`)
	sizeRegexp    = regexp.MustCompile(`^(\d+(\.\d+)?(px|em|rem|pt|in|pc|mm|cm|%)?|auto|inherit|initial|unset)$`)
	fontRegexp    = regexp.MustCompile(`^[\w\s,'"-]+$`)
	alignRegexp   = regexp.MustCompile(`^(left|right|center|justify)$`)
	listRegexp    = regexp.MustCompile(`^(disc|circle|square|decimal|decimal-leading-zero|lower-roman|upper-roman|lower-latin|upper-latin|lower-alpha|upper-alpha)$`)
	borderRegexp  = regexp.MustCompile(`^[\w\s#().,%-]+$`)
	classRegexp   = regexp.MustCompile(`^[\w-]+(\s+[\w-]+)*$`)
	editorClasses = regexp.MustCompile(`^((image|table|media|todo-list|raw-html-embed)(\S*)|image-style-\S+|image_resized|marker-\S+|pen-\S+|text-(tiny|small|big|huge)|language-\S+|page-break|ck-\S+)(\s+\S+)*$`)
	numberRegexp  = regexp.MustCompile(`^\d+$`)
)

// safeStyles - свойства CSS, которые пропускаются при разрешенных стилях.
var safeStyles = map[string]*regexp.Regexp{
	"color":            colorRegexp,
	"background-color": colorRegexp,
	"font-size":        sizeRegexp,
	"font-family":      fontRegexp,
	"text-align":       alignRegexp,
	"width":            sizeRegexp,
	"height":           sizeRegexp,
	"margin-left":      sizeRegexp,
	"padding":          sizeRegexp,
	"list-style-type":  listRegexp,
	"border":           borderRegexp,
	"border-color":     colorRegexp,
	"border-style":     regexp.MustCompile(`^(none|solid|dotted|dashed|double|groove|ridge|inset|outset)$`),
	"border-width":     sizeRegexp,
	"vertical-align":   regexp.MustCompile(`^(top|middle|bottom|baseline)$`),
	"float":            regexp.MustCompile(`^(left|right|none)$`),
}

// knownElements - элементы, которые можно разрешить правилами allow. Скрипты, стили и фреймы сюда не входят.
var knownElements = []string{
	"a", "abbr", "address", "article", "aside", "b", "bdi", "bdo", "blockquote", "br", "caption", "cite", "code",
	"col", "colgroup", "dd", "del", "details", "dfn", "div", "dl", "dt", "em", "figcaption", "figure", "footer",
	"h1", "h2", "h3", "h4", "h5", "h6", "header", "hr", "i", "img", "input", "ins", "kbd", "label", "li", "main",
	"mark", "nav", "ol", "p", "picture", "pre", "q", "s", "samp", "section", "small", "source", "span", "strike",
	"strong", "sub", "summary", "sup", "table", "tbody", "td", "tfoot", "th", "thead", "time", "tr", "u", "ul", "var",
	"wbr",
}

// Policy - санитайзер HTML редактора.
type Policy struct {
	support editorconfig.HtmlSupport
	policy  *bluemonday.Policy
}

// New строит политику по фильтрам htmlSupport.
func New(hs editorconfig.HtmlSupport) *Policy {
	p := base()

	for _, rule := range hs.Allow {
		elements := matchElements(rule.Name)
		if len(elements) == 0 {
			continue
		}
		all := rule.Name.MatchAll()
		if !all {
			p.AllowElements(elements...)
		}

		if rule.Attributes {
			if all {
				p.AllowDataAttributes()
				p.AllowAttrs("title", "lang", "dir").Globally()
			} else {
				p.AllowAttrs("title", "lang", "dir").OnElements(elements...)
			}
		}
		if rule.Classes {
			if all {
				p.AllowAttrs("class").Matching(classRegexp).Globally()
			} else {
				p.AllowAttrs("class").Matching(classRegexp).OnElements(elements...)
			}
		}
		if rule.Styles {
			for name, re := range safeStyles {
				if all {
					p.AllowStyles(name).Matching(re).Globally()
				} else {
					p.AllowStyles(name).Matching(re).OnElements(elements...)
				}
			}
		}
	}

	return &Policy{support: hs.Clone(), policy: p}
}

// base разрешает разметку, которую создают плагины редактора.
func base() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption", "mark", "s", "u", "sub", "sup", "oembed", "label", "input", "colgroup", "col")

	p.AllowAttrs("class").Matching(editorClasses).OnElements("figure", "img", "span", "mark", "ul", "pre", "code", "div", "label", "p")
	p.AllowAttrs("url").OnElements("oembed")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	p.AllowAttrs("start").Matching(numberRegexp).OnElements("ol")
	p.AllowAttrs("reversed").OnElements("ol")
	p.AllowAttrs("colspan", "rowspan").Matching(numberRegexp).OnElements("td", "th")
	p.AllowAttrs("width", "height").Matching(sizeRegexp).OnElements("img")
	p.AllowAttrs("srcset", "sizes").OnElements("img")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")

	p.AllowStyles("width", "height").Matching(sizeRegexp).OnElements("figure", "img", "col", "td", "th", "table")
	p.AllowStyles("text-align").Matching(alignRegexp).Globally()
	p.AllowStyles("margin-left").Matching(sizeRegexp).OnElements("p", "h1", "h2", "h3", "h4", "h5", "h6", "li")
	p.AllowStyles("list-style-type").Matching(listRegexp).OnElements("ol", "ul")
	p.AllowStyles("color", "background-color").Matching(colorRegexp).OnElements("span", "td", "th")
	p.AllowStyles("font-size").Matching(sizeRegexp).OnElements("span")
	p.AllowStyles("font-family").Matching(fontRegexp).OnElements("span")
	return p
}

func matchElements(name *editorconfig.Pattern) []string {
	if name.MatchAll() {
		return knownElements
	}
	var res []string
	for _, el := range knownElements {
		if name.Match(el) {
			res = append(res, el)
		}
	}
	return res
}

// Sanitize применяет правила disallow и политику.
func (p *Policy) Sanitize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if len(p.support.Disallow) > 0 {
		raw = p.applyDisallow(raw)
	}
	return p.policy.Sanitize(raw)
}

func (p *Policy) applyDisallow(raw string) string {
	nodes, err := html.ParseFragment(strings.NewReader(raw), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return raw
	}
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	p.filter(container)

	var sb strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return raw
		}
	}
	return sb.String()
}

// filter обходит дерево снизу вверх: потомки обрабатываются до того, как элемент будет развернут.
func (p *Policy) filter(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type != html.ElementNode {
			continue
		}
		p.filter(c)

		for _, rule := range p.support.Disallow {
			if !rule.Name.Match(c.Data) {
				continue
			}
			if !rule.Attributes && !rule.Classes && !rule.Styles {
				// элемент убирается, содержимое остается
				for c.FirstChild != nil {
					move := c.FirstChild
					c.RemoveChild(move)
					n.InsertBefore(move, c)
				}
				n.RemoveChild(c)
				break
			}
			c.Attr = slices.DeleteFunc(c.Attr, func(a html.Attribute) bool {
				switch a.Key {
				case "class":
					return rule.Classes
				case "style":
					return rule.Styles
				}
				return rule.Attributes && a.Key != "href" && a.Key != "src"
			})
		}
	}
}

// HtmlSupport возвращает фильтры, из которых построена политика.
func (p *Policy) HtmlSupport() editorconfig.HtmlSupport {
	return p.support.Clone()
}
