package richtext

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aisa-it/richtext/internal/richtext/apierrors"
	"github.com/aisa-it/richtext/internal/richtext/dao"
	filestorage "github.com/aisa-it/richtext/internal/richtext/file-storage"
	"github.com/aisa-it/richtext/pkg/limiter"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nfnt/resize"
	tusd "github.com/tus/tusd/v2/pkg/handler"
	"gorm.io/gorm"
)

const (
	SourceSimpleUpload = "simple-upload"
	SourceTus          = "tus"

	uploadField = "upload"
)

// Типы изображений, которые принимает адаптер простой загрузки
var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Предел тела запроса: размер файла и запас на заголовки multipart
func uploadBodyLimit() int64 {
	return cfg.UploadMaxSize() + 1<<20
}

type uploadResponse struct {
	URL string `json:"url"`
}

// uploadFile godoc
// @id uploadFile
// @Summary Редактор: загрузка изображения
// @Description Адаптер простой загрузки: файл в поле upload, в ответе адрес изображения. Изображения шире IMAGE_MAX_WIDTH уменьшаются.
// @Tags Editor
// @Accept multipart/form-data
// @Produce json
// @Param upload formData file true "Изображение"
// @Param document_id formData string false "ID документа"
// @Success 200 {object} uploadResponse "Адрес загруженного изображения"
// @Failure 400 {object} apierrors.UploadError "Ошибка загрузки"
// @Router /api/editor/upload/ [post]
func (s *Services) uploadFile(c echo.Context) error {
	asset, err := s.saveUpload(c)
	s.metrics.upload(SourceSimpleUpload, err)
	if err != nil {
		return EUploadError(c, err)
	}
	return c.JSON(http.StatusOK, uploadResponse{URL: cfg.WebURL.JoinPath(asset.URL()).String()})
}

func (s *Services) saveUpload(c echo.Context) (*dao.FileAsset, error) {
	req := c.Request()
	if req.ContentLength > uploadBodyLimit() {
		return nil, apierrors.ErrFileTooLarge.WithFormattedMessage(cfg.UploadMaxSizeMB)
	}
	req.Body = http.MaxBytesReader(c.Response(), req.Body, uploadBodyLimit())

	fh, err := c.FormFile(uploadField)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, apierrors.ErrFileTooLarge.WithFormattedMessage(cfg.UploadMaxSizeMB)
		}
		return nil, apierrors.ErrUploadFileRequired
	}
	if fh.Size > cfg.UploadMaxSize() {
		return nil, apierrors.ErrFileTooLarge.WithFormattedMessage(cfg.UploadMaxSizeMB)
	}

	docId, err := s.uploadDocumentId(c.FormValue("document_id"))
	if err != nil {
		return nil, err
	}
	if !limiter.Limiter.CanAddAttachment(c.Request().Context(), docId, fh.Size) {
		return nil, apierrors.ErrAttachmentsLimit
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	contentType := http.DetectContentType(data)
	if !imageTypes[contentType] {
		return nil, apierrors.ErrUnsupportedFileType.WithFormattedMessage(contentType)
	}

	data, err = downscaleImage(data, contentType, cfg.ImageMaxWidth)
	if err != nil {
		slog.Warn("Downscale uploaded image, keep original", "name", fh.Filename, "err", err)
	}

	asset := dao.FileAsset{
		Id:          dao.GenUUID(),
		DocumentId:  docId,
		Name:        fh.Filename,
		FileSize:    int64(len(data)),
		ContentType: contentType,
		Source:      SourceSimpleUpload,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&asset).Error; err != nil {
			return err
		}
		return s.storage.Save(data, asset.Id, contentType, &filestorage.Metadata{
			DocumentId: nullUUIDString(docId),
			Source:     SourceSimpleUpload,
		})
	}); err != nil {
		return nil, err
	}
	return &asset, nil
}

// uploadDocumentId проверяет, что документ, к которому привязывается файл, существует.
func (s *Services) uploadDocumentId(raw string) (uuid.NullUUID, error) {
	if raw == "" {
		return uuid.NullUUID{}, nil
	}
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.NullUUID{}, apierrors.ErrInvalidID
	}

	var exist bool
	if err := s.db.Model(&dao.Document{}).
		Select("count(*) > 0").
		Where("id = ?", id).
		Find(&exist).Error; err != nil {
		return uuid.NullUUID{}, err
	}
	if !exist {
		return uuid.NullUUID{}, apierrors.ErrDocNotFound
	}
	return uuid.NullUUID{UUID: id, Valid: true}, nil
}

func nullUUIDString(id uuid.NullUUID) string {
	if !id.Valid {
		return ""
	}
	return id.UUID.String()
}

// downscaleImage уменьшает JPEG и PNG шире maxWidth с сохранением пропорций.
// GIF и WebP возвращаются без изменений.
func downscaleImage(data []byte, contentType string, maxWidth int) ([]byte, error) {
	if maxWidth <= 0 || (contentType != "image/jpeg" && contentType != "image/png") {
		return data, nil
	}

	conf, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return data, err
	}
	if conf.Width <= maxWidth {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, err
	}
	resized := resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)

	buf := new(bytes.Buffer)
	if contentType == "image/png" {
		err = png.Encode(buf, resized)
	} else {
		err = jpeg.Encode(buf, resized, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return data, err
	}
	return buf.Bytes(), nil
}

func (s *Services) tusUploadValidator(hook tusd.HookEvent) (tusd.HTTPResponse, tusd.FileInfoChanges, error) {
	fileName, fOk := hook.Upload.MetaData["filename"]
	if !fOk || strings.TrimSpace(fileName) == "" {
		return tusd.HTTPResponse{}, tusd.FileInfoChanges{}, apierrors.ErrUploadFileRequired.TusdError()
	}

	if hook.Upload.Size > cfg.UploadMaxSize() {
		return tusd.HTTPResponse{}, tusd.FileInfoChanges{}, apierrors.ErrFileTooLarge.WithFormattedMessage(cfg.UploadMaxSizeMB).TusdError()
	}

	docId, err := s.uploadDocumentId(hook.Upload.MetaData["document_id"])
	if err != nil {
		var defined apierrors.DefinedError
		if errors.As(err, &defined) {
			return tusd.HTTPResponse{}, tusd.FileInfoChanges{}, defined.TusdError()
		}
		slog.Error("Check tus upload document", "err", err)
		return tusd.HTTPResponse{}, tusd.FileInfoChanges{}, apierrors.ErrGeneric.TusdError()
	}

	ctx := hook.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if !limiter.Limiter.CanAddAttachment(ctx, docId, hook.Upload.Size) {
		return tusd.HTTPResponse{}, tusd.FileInfoChanges{}, apierrors.ErrAttachmentsLimit.TusdError()
	}

	filteredMetadata := tusd.MetaData{
		"filename":    fileName,
		"filetype":    hook.Upload.MetaData["filetype"],
		"document_id": nullUUIDString(docId),
	}
	return tusd.HTTPResponse{}, tusd.FileInfoChanges{ID: dao.GenUUID().String(), MetaData: filteredMetadata}, nil
}

// tusPostUploadHook переносит завершенную загрузку под постоянное имя и создает запись о файле.
func (s *Services) tusPostUploadHook(event tusd.HookEvent) {
	var err error
	defer func() {
		s.metrics.upload(SourceTus, err)
	}()

	// s3store дописывает к ID идентификатор multipart-загрузки через "+"
	var assetName uuid.UUID
	assetName, err = uuid.FromString(strings.Split(event.Upload.ID, "+")[0])
	if err != nil {
		slog.Error("Parse uploaded file id", "id", event.Upload.ID, "err", err)
		return
	}

	contentType := event.Upload.MetaData["filetype"]
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var docId uuid.NullUUID
	if raw := event.Upload.MetaData["document_id"]; raw != "" {
		docId.UUID, docId.Valid = uuid.FromStringOrNil(raw), true
	}

	if err = s.storage.ClaimUpload(event.Upload, assetName, contentType, &filestorage.Metadata{
		DocumentId: nullUUIDString(docId),
		Source:     SourceTus,
	}); err != nil {
		slog.Error("Claim tus upload", "id", event.Upload.ID, "err", err)
		return
	}

	fa := dao.FileAsset{
		Id:          assetName,
		DocumentId:  docId,
		Name:        event.Upload.MetaData["filename"],
		FileSize:    event.Upload.Size,
		ContentType: contentType,
		Source:      SourceTus,
	}
	if err = s.db.Create(&fa).Error; err != nil {
		slog.Error("Save uploaded file info to db", "id", assetName, "err", err)
	}
}
