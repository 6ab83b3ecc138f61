package richtext

import (
	"encoding/json"

	"github.com/labstack/echo/v4"
)

// RawHTMLSerializer отдает JSON без экранирования <, > и &, чтобы разметка документов приходила в ответе как есть.
type RawHTMLSerializer struct {
	echo.DefaultJSONSerializer
}

func (RawHTMLSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}
