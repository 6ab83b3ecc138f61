package editorconfig

import (
	"bytes"
	"encoding/json"
	"regexp"
	"slices"
)

// HtmlSupport - фильтры General HTML Support: какие элементы, атрибуты, классы и стили сохраняются при вставке.
type HtmlSupport struct {
	Allow    []MatcherPattern `json:"allow"`
	Disallow []MatcherPattern `json:"disallow"`
}

type MatcherPattern struct {
	Name       *Pattern `json:"name,omitempty"`
	Attributes bool     `json:"attributes,omitempty"`
	Classes    bool     `json:"classes,omitempty"`
	Styles     bool     `json:"styles,omitempty"`
}

// Pattern - имя элемента: строка или регулярное выражение.
// В JSON нет литерала регулярного выражения, поэтому оно передается как {"regexp": "..."} и превращается в RegExp на стороне фронтенда.
type Pattern struct {
	literal string
	re      *regexp.Regexp
}

func Literal(name string) *Pattern {
	return &Pattern{literal: name}
}

func Regexp(expr string) *Pattern {
	return &Pattern{re: regexp.MustCompile(expr)}
}

func (p *Pattern) IsRegexp() bool {
	return p != nil && p.re != nil
}

func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	if p.re != nil {
		return "/" + p.re.String() + "/"
	}
	return p.literal
}

// Match проверяет имя элемента. Пустой шаблон подходит под любое имя.
func (p *Pattern) Match(name string) bool {
	if p == nil {
		return true
	}
	if p.re != nil {
		return p.re.MatchString(name)
	}
	return p.literal == name
}

// MatchAll сообщает, что шаблон подходит под любой элемент (/.*/ или отсутствие имени).
func (p *Pattern) MatchAll() bool {
	if p == nil {
		return true
	}
	return p.re != nil && (p.re.String() == ".*" || p.re.String() == "^.*$")
}

func (p Pattern) MarshalJSON() ([]byte, error) {
	if p.re != nil {
		return json.Marshal(struct {
			Regexp string `json:"regexp"`
		}{p.re.String()})
	}
	return json.Marshal(p.literal)
}

func (p *Pattern) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*p = Pattern{}
		return json.Unmarshal(data, &p.literal)
	}
	var raw struct {
		Regexp string `json:"regexp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	re, err := regexp.Compile(raw.Regexp)
	if err != nil {
		return err
	}
	*p = Pattern{re: re}
	return nil
}

func (hs HtmlSupport) Clone() HtmlSupport {
	return HtmlSupport{
		Allow:    clonePatterns(hs.Allow),
		Disallow: clonePatterns(hs.Disallow),
	}
}

func clonePatterns(in []MatcherPattern) []MatcherPattern {
	res := slices.Clone(in)
	if res == nil {
		// disallow в исходной конфигурации - пустой массив, а не null
		return []MatcherPattern{}
	}
	for i := range res {
		if res[i].Name != nil {
			n := *res[i].Name
			res[i].Name = &n
		}
	}
	return res
}
