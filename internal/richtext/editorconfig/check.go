package editorconfig

import (
	"fmt"
	"log/slog"

	"github.com/aisa-it/richtext/internal/richtext/plugins"
)

// Unresolved - элемент панели инструментов, для которого в манифесте нет плагина.
// Такая кнопка в редакторе просто не появится.
type Unresolved struct {
	Path    string `json:"path"`
	Command string `json:"command"`
}

func (u Unresolved) String() string {
	return fmt.Sprintf("%s: %s", u.Path, u.Command)
}

// Check проверяет все команды главной панели (включая группы), панели изображений и панели таблиц по манифесту.
func Check(cfg Config, m *plugins.Manifest) []Unresolved {
	var res []Unresolved
	res = checkItems("toolbar.items", cfg.Toolbar.Items, m, res)
	if cfg.Image != nil {
		res = checkItems("image.toolbar", cfg.Image.Toolbar, m, res)
	}
	if cfg.Table != nil {
		res = checkItems("table.contentToolbar", cfg.Table.ContentToolbar, m, res)
	}
	return res
}

func checkItems(path string, items []ToolbarItem, m *plugins.Manifest, acc []Unresolved) []Unresolved {
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		switch {
		case item.Group != nil:
			acc = checkItems(itemPath+".items", item.Group.Items, m, acc)
		case item.IsSeparator():
		case !m.Has(item.Command):
			acc = append(acc, Unresolved{Path: itemPath, Command: item.Command})
		}
	}
	return acc
}

// Resolve возвращает копию конфигурации без неразрешенных команд. Никогда не завершается ошибкой:
// неизвестный идентификатор превращается в отсутствующую кнопку и логируется как предупреждение.
// Разделители, оставшиеся на краях или подряд, схлопываются, пустые группы удаляются.
func Resolve(cfg Config, m *plugins.Manifest) Config {
	res := cfg.Clone()
	for _, u := range Check(cfg, m) {
		slog.Warn("Toolbar item has no registered plugin, skip", "path", u.Path, "command", u.Command)
	}

	res.Toolbar.Items = resolveItems(res.Toolbar.Items, m)
	if res.Image != nil {
		res.Image.Toolbar = resolveItems(res.Image.Toolbar, m)
	}
	if res.Table != nil {
		res.Table.ContentToolbar = resolveItems(res.Table.ContentToolbar, m)
	}
	return res
}

func resolveItems(items []ToolbarItem, m *plugins.Manifest) []ToolbarItem {
	res := make([]ToolbarItem, 0, len(items))
	for _, item := range items {
		switch {
		case item.Group != nil:
			item.Group.Items = resolveItems(item.Group.Items, m)
			if len(item.Group.Items) == 0 {
				continue
			}
		case item.IsSeparator():
		case !m.Has(item.Command):
			continue
		}
		res = append(res, item)
	}
	return compactSeparators(res)
}
