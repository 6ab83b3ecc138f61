package editorconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
)

const EditorStyles = "EDITOR_STYLES"

// SerializeOptions - параметры получения данных документа (аналог getData(options) редактора).
type SerializeOptions struct {
	ShowSuggestionHighlights bool `json:"showSuggestionHighlights,omitempty"`
}

// DocumentSource - текущий документ, из которого колбэк экспорта получает разметку.
// Передается в колбэк явно, вместо захвата экземпляра редактора в замыкании.
type DocumentSource interface {
	Serialize(opts SerializeOptions) ([]byte, error)
}

// DataCallback вызывается в момент экспорта и возвращает сериализованный документ.
type DataCallback func(src DocumentSource) ([]byte, error)

// SuggestionHighlights - колбэк экспорта, который всегда запрашивает подсветку предложений правок.
// Ошибка источника возвращается без изменений.
func SuggestionHighlights(src DocumentSource) ([]byte, error) {
	return src.Serialize(SerializeOptions{ShowSuggestionHighlights: true})
}

var ErrNoDocumentSource = errors.New("document source is not set")

// ConverterOptions - параметры конвертера. Для PDF ориентация передается в page_orientation, для Word - в orientation.
type ConverterOptions struct {
	Format          string `json:"format,omitempty"`
	MarginTop       string `json:"margin_top,omitempty"`
	MarginBottom    string `json:"margin_bottom,omitempty"`
	MarginRight     string `json:"margin_right,omitempty"`
	MarginLeft      string `json:"margin_left,omitempty"`
	PageOrientation string `json:"page_orientation,omitempty"`
	Orientation     string `json:"orientation,omitempty"`
}

// GetOrientation возвращает ориентацию страницы независимо от того, в каком поле она задана.
func (o ConverterOptions) GetOrientation() string {
	if o.PageOrientation != "" {
		return o.PageOrientation
	}
	return o.Orientation
}

// TokenURL - адрес получения токена облачных сервисов. Пустое значение сериализуется как false.
type TokenURL string

func (t TokenURL) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("false"), nil
	}
	return json.Marshal(string(t))
}

func (t *TokenURL) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("false")) || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = TokenURL(s)
	return nil
}

type ExportConfig struct {
	Stylesheets      []string         `json:"stylesheets"`
	ConverterOptions ConverterOptions `json:"converterOptions"`
	TokenURL         TokenURL         `json:"tokenUrl"`
	FileName         string           `json:"fileName,omitempty"`

	DataCallback DataCallback `json:"-"`
}

func (e ExportConfig) Clone() ExportConfig {
	e.Stylesheets = slices.Clone(e.Stylesheets)
	return e
}

// Data получает содержимое документа для экспорта через DataCallback.
// Без колбэка документ сериализуется с параметрами по умолчанию.
func (e ExportConfig) Data(src DocumentSource) ([]byte, error) {
	if src == nil {
		return nil, ErrNoDocumentSource
	}
	if e.DataCallback == nil {
		return src.Serialize(SerializeOptions{})
	}
	return e.DataCallback(src)
}
