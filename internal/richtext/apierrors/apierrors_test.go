package apierrors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithFormattedMessage(t *testing.T) {
	e := ErrFileTooLarge.WithFormattedMessage(10)
	assert.Equal(t, "uploaded file exceeds the 10MB size limit", e.Err)
	assert.Equal(t, "Загруженный файл превышает допустимый размер 10 МБ", e.RuErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, e.StatusCode)

	// исходная ошибка не меняется
	assert.Contains(t, ErrFileTooLarge.Err, "%d")

	assert.Equal(t, "unknown editor build ", ErrUnknownBuild.WithFormattedMessage().Err)
}

func TestUploadErrorEnvelope(t *testing.T) {
	b, err := json.Marshal(ErrUploadFileRequired.UploadError())
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"message":"upload field is required","code":2001}}`, string(b))
}

func TestTusdError(t *testing.T) {
	te := ErrFileTooLarge.WithFormattedMessage(5).TusdError()
	assert.Equal(t, http.StatusRequestEntityTooLarge, te.HTTPResponse.StatusCode)
	assert.JSONEq(t, `{"code":2002,"error":"uploaded file exceeds the 5MB size limit","ru_error":"Загруженный файл превышает допустимый размер 5 МБ"}`, te.HTTPResponse.Body)
}
