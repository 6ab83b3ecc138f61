package dao

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/aisa-it/richtext/internal/richtext/editor"
	filestorage "github.com/aisa-it/richtext/internal/richtext/file-storage"
	policy "github.com/aisa-it/richtext/internal/richtext/html-policy"
	"github.com/gofrs/uuid"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	nethtml "golang.org/x/net/html"
)

var minifier *minify.M = minify.New()

func init() {
	minifier.Add("text/html", &html.Minifier{KeepEndTags: true, KeepQuotes: true})
}

func minifyHTML(data []byte) ([]byte, error) {
	return minifier.Bytes("text/html", data)
}

func stripSuggestions(body string) (string, error) {
	if !editor.HasSuggestionHighlights(body) {
		return body, nil
	}
	return editor.StripSuggestionHighlights(body)
}

// EditorHTML - разметка редактора. Очищается политикой htmlSupport при получении из JSON и при записи в базу.
type EditorHTML struct {
	Body             string
	stripped         string
	AlreadySanitized bool
}

func NewEditorHTML(body string) EditorHTML {
	return EditorHTML{Body: policy.Default.Sanitize(body), AlreadySanitized: true}
}

func (r EditorHTML) Value() (driver.Value, error) {
	if !r.AlreadySanitized {
		return policy.Default.Sanitize(r.Body), nil
	}
	return r.Body, nil
}

func (r *EditorHTML) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		r.Body = v
	case []byte:
		r.Body = string(v)
	case nil:
		r.Body = ""
	default:
		return errors.New("unsupported type")
	}
	r.AlreadySanitized = true
	return nil
}

// MarshalJSON отдает разметку без экранирования. json.Marshal все равно экранирует результат,
// без экранирования его выводит только кодировщик с SetEscapeHTML(false).
func (r EditorHTML) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(r.Body); err != nil {
		return nil, err
	}

	return bytes.TrimSpace(buf.Bytes()), nil
}

func (r *EditorHTML) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &r.Body); err != nil {
		return err
	}
	r.Body = policy.Default.Sanitize(r.Body)
	r.AlreadySanitized = true

	return nil
}

func (r *EditorHTML) StripTags() string {
	if r.stripped == "" {
		r.stripped = policy.StripTagsPolicy.Sanitize(r.Body)
	}
	return r.stripped
}

func (r EditorHTML) String() string {
	return r.Body
}

func (EditorHTML) GormDataType() string {
	return "text"
}

// AssetIDs возвращает идентификаторы файлов хранилища, на которые ссылаются img и a.
func (r EditorHTML) AssetIDs() []uuid.UUID {
	doc, err := nethtml.Parse(bytes.NewReader([]byte(r.Body)))
	if err != nil {
		return nil
	}

	var res []uuid.UUID
	seen := map[uuid.UUID]bool{}
	var walk func(n *nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.ElementNode {
			for _, a := range n.Attr {
				if (n.Data == "img" && a.Key == "src") || (n.Data == "a" && a.Key == "href") {
					u, err := url.Parse(a.Val)
					if err != nil {
						continue
					}
					if id, ok := filestorage.ParseFileURL(u); ok && !seen[id] {
						seen[id] = true
						res = append(res, id)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return res
}
