package richtext

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/aisa-it/richtext/internal/richtext/apierrors"
	"github.com/aisa-it/richtext/internal/richtext/editor"
	"github.com/aisa-it/richtext/internal/richtext/editorconfig"
	"github.com/aisa-it/richtext/internal/richtext/export"
	"github.com/labstack/echo/v4"
)

const (
	FormatPdf  = "pdf"
	FormatWord = "word"

	defaultExportName = "document"
)

type exportFormat struct {
	contentType string
	ext         string
}

var exportFormats = map[string]exportFormat{
	FormatPdf:  {"application/pdf", ".pdf"},
	FormatWord: {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx"},
}

// exportRequest - тело запроса конвертера. css принимается для совместимости с плагинами экспорта и не применяется.
type exportRequest struct {
	HTML     string                        `json:"html"`
	CSS      string                        `json:"css"`
	Options  editorconfig.ConverterOptions `json:"options"`
	FileName string                        `json:"file_name" validate:"omitempty,fileName"`
}

// exportHTML godoc
// @id exportHTML
// @Summary Редактор: экспорт разметки в PDF или Word
// @Description Разметка очищается политикой htmlSupport основной сборки, затем конвертируется с параметрами options.
// @Tags Editor
// @Accept json
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param format path string true "Формат" Enums(pdf, word)
// @Param data body exportRequest true "Разметка и параметры конвертера"
// @Success 200 {file} binary "Файл документа"
// @Failure 400 {object} apierrors.DefinedError "Некорректный запрос"
// @Router /api/editor/export/{format}/ [post]
func (s *Services) exportHTML(c echo.Context) error {
	format := c.Param("format")
	if _, ok := exportFormats[format]; !ok {
		return EErrorDefined(c, apierrors.ErrUnsupportedFormat.WithFormattedMessage(format))
	}

	var req exportRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrDocBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrDocRequestValidate)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return EErrorDefined(c, apierrors.ErrExportContentRequired)
	}

	return s.sendExport(c, format, s.policy.Sanitize(req.HTML), req.Options, req.FileName)
}

// sendExport конвертирует разметку и отдает файл как вложение.
func (s *Services) sendExport(c echo.Context, format string, html string, opts editorconfig.ConverterOptions, name string) error {
	f := exportFormats[format]

	title := strings.TrimSuffix(name, f.ext)
	data, err := s.render(c.Request().Context(), format, html, opts, title)
	s.metrics.export(format, err)
	if err != nil {
		var optErr *export.OptionError
		if errors.As(err, &optErr) {
			return EErrorDefined(c, apierrors.ErrExportBadOption.WithFormattedMessage(optErr.Option))
		}
		slog.Error("Export document", "format", format, "err", err)
		return EErrorDefined(c, apierrors.ErrExportFailed)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": exportFileName(title) + f.ext}))
	return c.Blob(http.StatusOK, f.contentType, data)
}

func (s *Services) render(ctx context.Context, format string, html string, opts editorconfig.ConverterOptions, title string) ([]byte, error) {
	setup, err := export.NewPageSetup(opts)
	if err != nil {
		return nil, err
	}

	doc, err := editor.ParseString(html)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	switch format {
	case FormatPdf:
		err = s.exporter.PDF(ctx, doc, setup, title, buf)
	case FormatWord:
		err = s.exporter.Word(ctx, doc, setup, title, buf)
	default:
		return nil, apierrors.ErrUnsupportedFormat.WithFormattedMessage(format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", "\"", "'", "\n", " ", "\r", " ")

func exportFileName(title string) string {
	name := strings.TrimSpace(fileNameReplacer.Replace(title))
	if name == "" {
		return defaultExportName
	}
	return name
}
