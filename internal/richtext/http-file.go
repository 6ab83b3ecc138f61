package richtext

import (
	"errors"
	"mime"
	"net/http"

	"github.com/aisa-it/richtext/internal/richtext/apierrors"
	"github.com/aisa-it/richtext/internal/richtext/dao"
	filestorage "github.com/aisa-it/richtext/internal/richtext/file-storage"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// getFile отдает сохраненный файл. Файлы без записи FileAsset не отдаются.
func (s *Services) getFile(c echo.Context) error {
	id, err := uuid.FromString(c.Param("fileName"))
	if err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidID)
	}

	var asset dao.FileAsset
	if err := s.db.Where("id = ?", id).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EErrorDefined(c, apierrors.ErrFileNotFound)
		}
		return EError(c, err)
	}

	r, err := s.storage.LoadReader(id)
	if err != nil {
		if errors.Is(err, filestorage.ErrNotFound) {
			return EErrorDefined(c, apierrors.ErrFileNotFound)
		}
		return EError(c, err)
	}
	defer r.Close()

	contentType := asset.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	h := c.Response().Header()
	h.Set("Cache-Control", "private, max-age=31536000, immutable")
	if asset.Name != "" {
		disposition := "inline"
		if !imageTypes[contentType] {
			disposition = "attachment"
		}
		h.Set(echo.HeaderContentDisposition, mime.FormatMediaType(disposition, map[string]string{"filename": asset.Name}))
	}

	return c.Stream(http.StatusOK, contentType, r)
}
