// Пакет описывает конфигурацию экземпляра редактора (Runtime Configuration) в том виде, в котором ее ожидает библиотека редактора.
// Имена полей JSON, вложенность и типы значений являются внешним контрактом и не переименовываются.
//
// Основные возможности:
//   - Типизированные структуры панели инструментов, заголовков, изображений, таблиц, экспорта и загрузки файлов.
//   - Чистые фабрики конфигураций по умолчанию (Default, Article).
//   - Явное слияние значений по умолчанию с частичными переопределениями (Merge).
//   - Статическая проверка идентификаторов панели инструментов по манифесту плагинов (Check, Resolve).
//   - Интерфейс DocumentSource для колбэков экспорта.
package editorconfig

import (
	"encoding/json"
	"maps"
	"slices"
)

type Config struct {
	LicenseKey    string         `json:"licenseKey"`
	Language      string         `json:"language,omitempty"`
	Toolbar       Toolbar        `json:"toolbar"`
	Heading       *HeadingConfig `json:"heading,omitempty"`
	Image         *ImageConfig   `json:"image,omitempty"`
	Table         *TableConfig   `json:"table,omitempty"`
	HtmlSupport   *HtmlSupport   `json:"htmlSupport,omitempty"`
	ExportPdf     *ExportConfig  `json:"exportPdf,omitempty"`
	ExportWord    *ExportConfig  `json:"exportWord,omitempty"`
	SimpleUpload  *SimpleUpload  `json:"simpleUpload,omitempty"`
	CloudServices *CloudServices `json:"cloudServices,omitempty"`
}

// HeadingOption - пресет выпадающего списка заголовков.
type HeadingOption struct {
	Model string `json:"model"`
	View  string `json:"view,omitempty"`
	Title string `json:"title"`
	Class string `json:"class"`
}

type HeadingConfig struct {
	Options []HeadingOption `json:"options"`
}

type ImageConfig struct {
	Toolbar []ToolbarItem `json:"toolbar"`
}

type TableConfig struct {
	ContentToolbar []ToolbarItem `json:"contentToolbar"`
}

type SimpleUpload struct {
	UploadURL       string            `json:"uploadUrl"`
	WithCredentials bool              `json:"withCredentials,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"`
}

type CloudServices struct {
	TokenURL string `json:"tokenUrl"`
}

// Clone возвращает глубокую копию конфигурации. Колбэки экспорта копируются по ссылке.
func (c Config) Clone() Config {
	res := c
	res.Toolbar = c.Toolbar.Clone()
	if c.Heading != nil {
		res.Heading = &HeadingConfig{Options: slices.Clone(c.Heading.Options)}
	}
	if c.Image != nil {
		res.Image = &ImageConfig{Toolbar: cloneItems(c.Image.Toolbar)}
	}
	if c.Table != nil {
		res.Table = &TableConfig{ContentToolbar: cloneItems(c.Table.ContentToolbar)}
	}
	if c.HtmlSupport != nil {
		hs := c.HtmlSupport.Clone()
		res.HtmlSupport = &hs
	}
	if c.ExportPdf != nil {
		e := c.ExportPdf.Clone()
		res.ExportPdf = &e
	}
	if c.ExportWord != nil {
		e := c.ExportWord.Clone()
		res.ExportWord = &e
	}
	if c.SimpleUpload != nil {
		su := *c.SimpleUpload
		su.Headers = maps.Clone(c.SimpleUpload.Headers)
		res.SimpleUpload = &su
	}
	if c.CloudServices != nil {
		cs := *c.CloudServices
		res.CloudServices = &cs
	}
	return res
}

// JSON возвращает конфигурацию в формате, который передается в конструктор редактора.
func (c Config) JSON() ([]byte, error) {
	return json.Marshal(c)
}
