// Генерация документации сервиса редактора в формате Markdown.
// Анализирует файл с определениями ошибок API и описания сборок редактора и создает Markdown-документ с таблицами.
//
// Основные возможности:
//   - Извлечение кодов ошибок, HTTP-кодов и сообщений из AST файла apierrors.
//   - Таблица плагинов основной сборки с npm-пакетами и командами.
//   - Таблицы панелей инструментов каждой сборки с плагином, предоставляющим команду.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/aisa-it/richtext/internal/richtext/editorconfig"
	"github.com/aisa-it/richtext/internal/richtext/plugins"
	md "github.com/nao1215/markdown"
)

func main() {
	errorsFile := flag.String("src", "internal/richtext/apierrors/apierrors.go", "Path of apierrors.go")
	outputMd := flag.String("out", "editor.md", "Path to output md")
	flag.Parse()

	slog.Info("Generate editor docs", "src", *errorsFile, "out", *outputMd)

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, *errorsFile, nil, 0)
	if err != nil {
		slog.Error("Parse errors file", "err", err)
		os.Exit(1)
	}

	ff, err := os.Create(*outputMd)
	if err != nil {
		slog.Error("Create output", "err", err)
		os.Exit(1)
	}
	defer ff.Close()

	if err := build(ff, errorRows(f), plugins.ClassicBuild()); err != nil {
		slog.Error("Generate docs fail", "err", err)
		os.Exit(1)
	}
	slog.Info("Docs generated")
}

func build(w io.Writer, errRows [][]string, m *plugins.Manifest) error {
	doc := md.NewMarkdown(w).
		H1("Сборка редактора").
		H2("Плагины").
		PlainText("Плагины основной сборки в порядке регистрации.").
		CustomTable(md.TableSet{
			Header: []string{"Плагин", "Пакет", "Команды"},
			Rows:   pluginRows(m),
		}, md.TableOptions{AutoWrapText: false})

	for _, name := range editorconfig.BuildNames() {
		ec, _ := editorconfig.Build(name)
		doc = doc.
			H2("Панель инструментов: "+name).
			CustomTable(md.TableSet{
				Header: []string{"Панель", "Команда", "Плагин"},
				Rows:   toolbarRows(ec, m),
			}, md.TableOptions{AutoWrapText: false})
	}

	return doc.
		H2("Перечень кодов ошибок").
		PlainText("Данный раздел посвящен описанию возможных ошибок от сервера.").
		CustomTable(md.TableSet{
			Header: []string{"Код", "HTTP код", "Сообщение", "Сообщение на русском"},
			Rows:   errRows,
		}, md.TableOptions{AutoWrapText: false}).
		Build()
}

func pluginRows(m *plugins.Manifest) [][]string {
	var rows [][]string
	for _, p := range m.Plugins() {
		cmds := make([]string, len(p.Commands))
		for i, c := range p.Commands {
			cmds[i] = md.Code(c)
		}
		rows = append(rows, []string{md.Bold(p.Name), md.Code(p.Package), strings.Join(cmds, ", ")})
	}
	return rows
}

// toolbarRows перечисляет команды всех панелей сборки. Команды без плагина помечаются и в редакторе не отображаются.
func toolbarRows(cfg editorconfig.Config, m *plugins.Manifest) [][]string {
	var rows [][]string
	add := func(panel string, items []editorconfig.ToolbarItem) {
		for _, cmd := range (editorconfig.Toolbar{Items: items}).Leaves() {
			provider, ok := m.Provider(cmd)
			if !ok {
				provider = md.Italic("нет плагина, кнопка не отображается")
			}
			rows = append(rows, []string{panel, md.Code(cmd), provider})
		}
	}

	add("toolbar.items", cfg.Toolbar.Items)
	if cfg.Image != nil {
		add("image.toolbar", cfg.Image.Toolbar)
	}
	if cfg.Table != nil {
		add("table.contentToolbar", cfg.Table.ContentToolbar)
	}
	return rows
}

// errorRows парсит определения ошибок вида DefinedError{Code: ..., StatusCode: http.Status..., Err: ..., RuErr: ...}.
func errorRows(f *ast.File) [][]string {
	var rows [][]string
	ast.Inspect(f, func(n ast.Node) bool {
		spec, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for _, v := range spec.Values {
			lit, ok := v.(*ast.CompositeLit)
			if !ok || fmt.Sprint(lit.Type) != "DefinedError" {
				continue
			}
			if row, ok := errorRow(lit); ok {
				rows = append(rows, row)
			}
		}
		return false
	})
	return rows
}

func errorRow(lit *ast.CompositeLit) ([]string, bool) {
	row := make([]string, 4)
	statusName := "StatusBadRequest"
	for _, el := range lit.Elts {
		param, ok := el.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		switch fmt.Sprint(param.Key) {
		case "Code":
			bl, ok := param.Value.(*ast.BasicLit)
			if !ok {
				return nil, false
			}
			row[0] = md.Bold(bl.Value)
		case "StatusCode":
			if sel, ok := param.Value.(*ast.SelectorExpr); ok {
				statusName = sel.Sel.Name
			}
		case "Err":
			row[2] = md.Code(stringValue(param.Value))
		case "RuErr":
			row[3] = md.Code(stringValue(param.Value))
		}
	}
	row[1] = fmt.Sprintf("%s %s", getStatusCode(statusName), md.Italic(statusName))
	return row, row[0] != ""
}

// stringValue собирает строковый литерал, в том числе склеенный через +.
func stringValue(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.BasicLit:
		if s, err := strconv.Unquote(x.Value); err == nil {
			return s
		}
		return x.Value
	case *ast.BinaryExpr:
		return stringValue(x.X) + stringValue(x.Y)
	case *ast.ParenExpr:
		return stringValue(x.X)
	}
	return ""
}

var statusCodes = map[string]int{
	"StatusOK":                    http.StatusOK,
	"StatusCreated":               http.StatusCreated,
	"StatusNoContent":             http.StatusNoContent,
	"StatusBadRequest":            http.StatusBadRequest,
	"StatusUnauthorized":          http.StatusUnauthorized,
	"StatusForbidden":             http.StatusForbidden,
	"StatusNotFound":              http.StatusNotFound,
	"StatusMethodNotAllowed":      http.StatusMethodNotAllowed,
	"StatusConflict":              http.StatusConflict,
	"StatusRequestEntityTooLarge": http.StatusRequestEntityTooLarge,
	"StatusUnsupportedMediaType":  http.StatusUnsupportedMediaType,
	"StatusUnprocessableEntity":   http.StatusUnprocessableEntity,
	"StatusTooManyRequests":       http.StatusTooManyRequests,
	"StatusInternalServerError":   http.StatusInternalServerError,
	"StatusNotImplemented":        http.StatusNotImplemented,
	"StatusBadGateway":            http.StatusBadGateway,
	"StatusServiceUnavailable":    http.StatusServiceUnavailable,
}

// getStatusCode Преобразует имя константы net/http в HTTP код.
func getStatusCode(status string) string {
	code, ok := statusCodes[status]
	if !ok {
		return ""
	}
	return strconv.Itoa(code)
}
