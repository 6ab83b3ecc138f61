// Валидация запросов сервиса редактора. Использует библиотеку go-playground/validator.
//
// Основные возможности:
//   - Проверка имени сборки редактора по реестру сборок.
//   - Проверка имени файла экспорта.
package richtext

import (
	"regexp"
	"unicode/utf8"

	"github.com/aisa-it/richtext/internal/richtext/editorconfig"
	"github.com/go-playground/validator"
)

type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	err := v.RegisterValidation("editorBuild", editorBuildValidator)
	if err != nil {
		return nil
	}

	err = v.RegisterValidation("fileName", fileNameValidator)
	if err != nil {
		return nil
	}
	return &RequestValidator{v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validator.Struct(i); err != nil {
		_, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil
		}
		return err
	}
	return nil
}

func editorBuildValidator(fl validator.FieldLevel) bool {
	return editorconfig.HasBuild(fl.Field().String())
}

var fileNameRe = regexp.MustCompile(`^[^/\\:*?"<>|\x00-\x1f]+$`)

func fileNameValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	lenStr := utf8.RuneCountInString(value)
	if !fileNameRe.MatchString(value) || value == "." || value == ".." {
		return false
	}
	return lenStr >= 1 && lenStr <= 150
}
