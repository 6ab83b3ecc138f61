// Пакет предоставляет интерфейс и реализации файлового хранилища для изображений и вложений редактора: локальный каталог и S3-совместимое хранилище (Minio).
//
// Основные возможности:
//   - Сохранение, загрузка, удаление файлов и получение сведений о них.
//   - Возобновляемая загрузка по протоколу tus с переносом завершенной загрузки под постоянное имя.
//   - Чтение изображений документа для экспорта по ссылкам вида /api/file/<id>/.
package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aisa-it/richtext/internal/richtext/config"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	tusd "github.com/tus/tusd/v2/pkg/handler"
	"golang.org/x/exp/slog"
)

const (
	UploadTries = 3

	// FilePathPrefix - путь, по которому сервис отдает сохраненные файлы.
	FilePathPrefix = "/api/file/"
)

var ErrNotFound = errors.New("file not found")

type Metadata struct {
	DocumentId string
	Source     string
}

type FileInfo struct {
	Name        string
	Size        int64
	ContentType string
	CreatedAt   time.Time
}

func (m Metadata) GetMap() map[string]string {
	meta := make(map[string]string)
	if m.DocumentId != "" {
		meta["documentId"] = m.DocumentId
	}
	if m.Source != "" {
		meta["source"] = m.Source
	}
	return meta
}

// UploadValidator проверяет tus-загрузку до ее создания.
type UploadValidator func(hook tusd.HookEvent) (tusd.HTTPResponse, tusd.FileInfoChanges, error)

type FileStorage interface {
	GetTUSHandler(cfg *config.Config, baseUrl string, uploadValidator UploadValidator, postUploadHook func(event tusd.HookEvent)) (echo.HandlerFunc, error)
	// ClaimUpload переносит завершенную tus-загрузку под постоянное имя.
	ClaimUpload(upload tusd.FileInfo, name uuid.UUID, contentType string, metadata *Metadata) error
	Save(data []byte, name uuid.UUID, contentType string, metadata *Metadata) error
	SaveReader(reader io.Reader, fileSize int64, name uuid.UUID, contentType string, metadata *Metadata) error
	Load(name uuid.UUID) ([]byte, error)
	LoadReader(name uuid.UUID) (io.ReadCloser, error)
	Delete(name uuid.UUID) error
	Exist(name uuid.UUID) (bool, error)
	ListRoot(fn func(FileInfo) error) error
	// Move переименовывает объект; используется для переноса неучтенных файлов в unknown/.
	Move(old string, new string) error
	GetFileInfo(name uuid.UUID) (*FileInfo, error)
}

// New выбирает хранилище по конфигурации: S3, если задан AWS_S3_ENDPOINT_URL, иначе локальный каталог.
func New(cfg *config.Config) (FileStorage, error) {
	if cfg.S3Enabled() {
		return NewMinioStorage(cfg.AWSEndpoint, cfg.AWSRegion, cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.AWSBucketName)
	}
	return NewLocalStorage(cfg.StoragePath)
}

func newTUSHandler(
	composer *tusd.StoreComposer,
	cfg *config.Config,
	baseUrl string,
	uploadValidator UploadValidator,
	postUploadHook func(event tusd.HookEvent),
) (echo.HandlerFunc, error) {
	basePath, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}
	handler, err := tusd.NewHandler(tusd.Config{
		BasePath:                cfg.WebURL.ResolveReference(basePath).String(),
		StoreComposer:           composer,
		MaxSize:                 cfg.UploadMaxSize(),
		DisableDownload:         true,
		NotifyCompleteUploads:   true,
		PreUploadCreateCallback: uploadValidator,
		Logger:                  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		return nil, fmt.Errorf("create tus handler: %w", err)
	}

	go func() {
		for event := range handler.CompleteUploads {
			postUploadHook(event)
		}
	}()

	return echo.WrapHandler(http.StripPrefix(basePath.Path, handler)), nil
}

// FileURL - путь, по которому отдается файл.
func FileURL(name uuid.UUID) string {
	return FilePathPrefix + name.String() + "/"
}

// ParseFileURL извлекает идентификатор файла из ссылки вида /api/file/<id>/.
func ParseFileURL(u *url.URL) (uuid.UUID, bool) {
	if u == nil {
		return uuid.Nil, false
	}
	p := path.Clean("/" + u.Path)
	rest, ok := strings.CutPrefix(p, strings.TrimSuffix(FilePathPrefix, "/")+"/")
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.FromString(strings.Trim(rest, "/"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ImageSource читает изображения документа из хранилища. Ссылки на другие адреса не обслуживаются.
type ImageSource struct {
	Storage FileStorage
	// Host сервиса; абсолютные ссылки на другой хост не обслуживаются
	Host string
}

func (s ImageSource) OpenImage(_ context.Context, src *url.URL) (io.ReadCloser, string, error) {
	if src.IsAbs() && s.Host != "" && src.Host != s.Host {
		return nil, "", fmt.Errorf("foreign image host %s", src.Host)
	}
	id, ok := ParseFileURL(src)
	if !ok {
		return nil, "", fmt.Errorf("not a file url: %s", src)
	}

	info, err := s.Storage.GetFileInfo(id)
	if err != nil {
		return nil, "", err
	}
	r, err := s.Storage.LoadReader(id)
	if err != nil {
		return nil, "", err
	}
	return r, info.ContentType, nil
}
