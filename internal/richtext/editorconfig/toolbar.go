package editorconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
)

const (
	Separator = "|"
	LineBreak = "-"
)

// Toolbar - главная панель инструментов. В JSON допускаются обе формы: {"items": [...]} и просто массив.
type Toolbar struct {
	Items                  []ToolbarItem `json:"items"`
	ShouldNotGroupWhenFull bool          `json:"shouldNotGroupWhenFull,omitempty"`
}

// ToolbarItem - либо команда (в том числе разделитель), либо вложенная группа.
type ToolbarItem struct {
	Command string
	Group   *ToolbarGroup
}

type ToolbarGroup struct {
	Label    string        `json:"label"`
	Icon     string        `json:"icon,omitempty"`
	WithText bool          `json:"withText,omitempty"`
	Items    []ToolbarItem `json:"items"`
}

func Cmd(name string) ToolbarItem {
	return ToolbarItem{Command: name}
}

func Cmds(names ...string) []ToolbarItem {
	res := make([]ToolbarItem, len(names))
	for i, n := range names {
		res[i] = Cmd(n)
	}
	return res
}

func Group(label, icon string, items ...ToolbarItem) ToolbarItem {
	return ToolbarItem{Group: &ToolbarGroup{Label: label, Icon: icon, Items: items}}
}

func (i ToolbarItem) IsSeparator() bool {
	return i.Group == nil && (i.Command == Separator || i.Command == LineBreak)
}

func (i ToolbarItem) IsGroup() bool {
	return i.Group != nil
}

func (i ToolbarItem) Clone() ToolbarItem {
	if i.Group == nil {
		return i
	}
	g := *i.Group
	g.Items = cloneItems(i.Group.Items)
	return ToolbarItem{Group: &g}
}

func (i ToolbarItem) MarshalJSON() ([]byte, error) {
	if i.Group != nil {
		return json.Marshal(i.Group)
	}
	return json.Marshal(i.Command)
}

func (i *ToolbarItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty toolbar item")
	}
	if data[0] == '"' {
		*i = ToolbarItem{}
		return json.Unmarshal(data, &i.Command)
	}
	var g ToolbarGroup
	if err := json.Unmarshal(data, &g); err != nil {
		return err
	}
	*i = ToolbarItem{Group: &g}
	return nil
}

func (t Toolbar) Clone() Toolbar {
	t.Items = cloneItems(t.Items)
	return t
}

func (t *Toolbar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		*t = Toolbar{}
		return json.Unmarshal(data, &t.Items)
	}
	type plain Toolbar
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Toolbar(p)
	return nil
}

// Leaves возвращает все команды панели (без разделителей), включая вложенные группы, в порядке обхода.
func (t Toolbar) Leaves() []string {
	return leaves(t.Items, nil)
}

func leaves(items []ToolbarItem, acc []string) []string {
	for _, item := range items {
		switch {
		case item.Group != nil:
			acc = leaves(item.Group.Items, acc)
		case item.IsSeparator():
		default:
			acc = append(acc, item.Command)
		}
	}
	return acc
}

func cloneItems(items []ToolbarItem) []ToolbarItem {
	if items == nil {
		return nil
	}
	res := make([]ToolbarItem, len(items))
	for i, item := range items {
		res[i] = item.Clone()
	}
	return res
}

// compactSeparators убирает разделители в начале и в конце, а также идущие подряд.
func compactSeparators(items []ToolbarItem) []ToolbarItem {
	res := make([]ToolbarItem, 0, len(items))
	for _, item := range items {
		if item.IsSeparator() && (len(res) == 0 || res[len(res)-1].IsSeparator()) {
			continue
		}
		res = append(res, item)
	}
	for len(res) > 0 && res[len(res)-1].IsSeparator() {
		res = res[:len(res)-1]
	}
	return slices.Clip(res)
}
