// Пакет содержит определения ошибок API сервиса редактора. Каждая ошибка имеет код, статус HTTP и описание на английском и русском языках.
//
// Основные возможности:
//   - Ошибки конфигурации редактора, загрузки файлов, экспорта, документов и токенов облачных сервисов.
//   - Преобразование ошибки в ответ tusd для возобновляемой загрузки.
//   - Конверт ошибки адаптера простой загрузки ({"error": {"message": ...}}).
//   - Форматирование сообщений об ошибках с аргументами.
package apierrors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	tusd "github.com/tus/tusd/v2/pkg/handler"
)

type DefinedError struct {
	Code       int    `json:"code"`
	StatusCode int    `json:"-"`
	Err        string `json:"error"`
	RuErr      string `json:"ru_error,omitempty"`
}

func (e DefinedError) Error() string {
	return e.Err
}

func (e DefinedError) TusdError() tusd.Error {
	b, _ := json.Marshal(e)
	return tusd.Error{
		HTTPResponse: tusd.HTTPResponse{
			StatusCode: e.StatusCode,
			Body:       string(b),
			Header: tusd.HTTPHeader{
				"Content-Type": "application/json",
			},
		},
	}
}

// UploadErrorMessage - тело ошибки в формате адаптера простой загрузки редактора.
type UploadErrorMessage struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

type UploadError struct {
	Error UploadErrorMessage `json:"error"`
}

// UploadError возвращает ошибку в формате, который адаптер загрузки показывает пользователю.
func (e DefinedError) UploadError() UploadError {
	return UploadError{Error: UploadErrorMessage{Message: e.Err, Code: e.Code}}
}

var (
	// 1*** - editor config errors
	ErrUnknownBuild          = DefinedError{Code: 1001, StatusCode: http.StatusBadRequest, Err: "unknown editor build %s", RuErr: "Неизвестная сборка редактора %s"}
	ErrUnknownPlugin         = DefinedError{Code: 1002, StatusCode: http.StatusBadRequest, Err: "unknown plugin %s", RuErr: "Неизвестный плагин %s"}
	ErrEditorConfigMarshal   = DefinedError{Code: 1003, StatusCode: http.StatusInternalServerError, Err: "editor config serialization failed", RuErr: "Не удалось сформировать конфигурацию редактора"}
	ErrCloudServicesDisabled = DefinedError{Code: 1101, StatusCode: http.StatusNotFound, Err: "cloud services are not configured", RuErr: "Облачные сервисы не настроены"}
	ErrTokenSign             = DefinedError{Code: 1102, StatusCode: http.StatusInternalServerError, Err: "token signing failed", RuErr: "Не удалось подписать токен"}

	// 2*** - upload errors
	ErrUploadFileRequired  = DefinedError{Code: 2001, StatusCode: http.StatusBadRequest, Err: "upload field is required", RuErr: "Файл не передан"}
	ErrFileTooLarge        = DefinedError{Code: 2002, StatusCode: http.StatusRequestEntityTooLarge, Err: "uploaded file exceeds the %dMB size limit", RuErr: "Загруженный файл превышает допустимый размер %d МБ"}
	ErrUnsupportedFileType = DefinedError{Code: 2003, StatusCode: http.StatusUnsupportedMediaType, Err: "unsupported file type %s", RuErr: "Тип файла %s не поддерживается"}
	ErrFileNotFound        = DefinedError{Code: 2004, StatusCode: http.StatusNotFound, Err: "file not found", RuErr: "Файл не найден"}
	ErrUploadFailed        = DefinedError{Code: 2005, StatusCode: http.StatusInternalServerError, Err: "file upload failed", RuErr: "Не удалось сохранить файл"}
	ErrAttachmentsLimit    = DefinedError{Code: 2006, StatusCode: http.StatusForbidden, Err: "attachments limit reached", RuErr: "Достигнут лимит вложений документа"}

	// 3*** - export errors
	ErrExportContentRequired = DefinedError{Code: 3001, StatusCode: http.StatusBadRequest, Err: "html is required", RuErr: "Нет содержимого для экспорта"}
	ErrExportBadOption       = DefinedError{Code: 3002, StatusCode: http.StatusBadRequest, Err: "invalid converter option %s", RuErr: "Некорректный параметр конвертера %s"}
	ErrExportFailed          = DefinedError{Code: 3003, StatusCode: http.StatusInternalServerError, Err: "export failed", RuErr: "Не удалось выполнить экспорт"}
	ErrUnsupportedFormat     = DefinedError{Code: 3004, StatusCode: http.StatusBadRequest, Err: "unsupported export format %s", RuErr: "Формат экспорта %s не поддерживается"}

	// 4*** - document errors
	ErrDocNotFound        = DefinedError{Code: 4001, StatusCode: http.StatusNotFound, Err: "doc not found", RuErr: "Документ не найден"}
	ErrDocBadRequest      = DefinedError{Code: 4002, StatusCode: http.StatusBadRequest, Err: "bad request", RuErr: "Некорректный запрос"}
	ErrDocRequestValidate = DefinedError{Code: 4003, StatusCode: http.StatusBadRequest, Err: "validation error", RuErr: "Введены некорректные данные"}

	// 5*** - generic errors
	ErrGeneric       = DefinedError{Code: 5000, StatusCode: http.StatusBadRequest, Err: "Something went wrong. Please try again later or contact the support team.", RuErr: "Что-то пошло не так. Повторите попытку позже или обратитесь в службу поддержки"}
	ErrInvalidID     = DefinedError{Code: 5001, StatusCode: http.StatusBadRequest, Err: "invalid ID", RuErr: "Указан неверный ID"}
	ErrEntityToLarge = DefinedError{Code: 5010, StatusCode: http.StatusRequestEntityTooLarge, Err: "size exceeds the allowed limit", RuErr: "Размер превышает допустимый"}
)

func (e DefinedError) WithFormattedMessage(args ...interface{}) DefinedError {
	if len(args) > 0 {
		e.Err = fmt.Sprintf(e.Err, args...)
		e.RuErr = fmt.Sprintf(e.RuErr, args...)
	} else {
		e.Err = strings.NewReplacer("%s", "", "%d", "").Replace(e.Err)
		e.RuErr = strings.NewReplacer("%s", "", "%d", "").Replace(e.RuErr)
	}
	return e
}
