package filestorage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aisa-it/richtext/internal/richtext/config"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/tus/tusd/v2/pkg/filestore"
	tusd "github.com/tus/tusd/v2/pkg/handler"
)

const (
	metaExt = ".meta"
	tusDir  = "tus"
)

// LocalStorage хранит файлы в каталоге. Тип содержимого и метаданные лежат рядом в файле <id>.meta.
type LocalStorage struct {
	rootDir string
}

type localMeta struct {
	ContentType string            `json:"content_type"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func NewLocalStorage(rootPath string) (FileStorage, error) {
	if err := os.MkdirAll(filepath.Join(rootPath, tusDir), 0755); err != nil {
		return nil, err
	}
	return &LocalStorage{rootPath}, nil
}

func (s *LocalStorage) path(name uuid.UUID) string {
	return filepath.Join(s.rootDir, name.String())
}

func (s *LocalStorage) GetTUSHandler(cfg *config.Config, baseUrl string, uploadValidator UploadValidator, postUploadHook func(event tusd.HookEvent)) (echo.HandlerFunc, error) {
	store := filestore.New(filepath.Join(s.rootDir, tusDir))
	composer := tusd.NewStoreComposer()
	store.UseIn(composer)

	return newTUSHandler(composer, cfg, baseUrl, uploadValidator, postUploadHook)
}

func (s *LocalStorage) ClaimUpload(upload tusd.FileInfo, name uuid.UUID, contentType string, metadata *Metadata) error {
	src := upload.Storage["Path"]
	if src == "" {
		return fmt.Errorf("upload %s has no local path", upload.ID)
	}
	if err := os.Rename(src, s.path(name)); err != nil {
		return err
	}
	if info := upload.Storage["InfoPath"]; info != "" {
		os.Remove(info)
	}
	return s.writeMeta(name, contentType, metadata)
}

func (s *LocalStorage) writeMeta(name uuid.UUID, contentType string, metadata *Metadata) error {
	meta := localMeta{ContentType: contentType, CreatedAt: time.Now()}
	if metadata != nil {
		meta.Metadata = metadata.GetMap()
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name)+metaExt, data, 0644)
}

func (s *LocalStorage) readMeta(name uuid.UUID) (localMeta, error) {
	var meta localMeta
	data, err := os.ReadFile(s.path(name) + metaExt)
	if err != nil {
		return meta, err
	}
	return meta, json.Unmarshal(data, &meta)
}

func (s *LocalStorage) Save(data []byte, name uuid.UUID, contentType string, metadata *Metadata) error {
	if err := os.WriteFile(s.path(name), data, 0644); err != nil {
		return err
	}
	return s.writeMeta(name, contentType, metadata)
}

func (s *LocalStorage) SaveReader(reader io.Reader, fileSize int64, name uuid.UUID, contentType string, metadata *Metadata) error {
	f, err := os.Create(s.path(name))
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(f.Name())
		return err
	}
	return s.writeMeta(name, contentType, metadata)
}

func (s *LocalStorage) Load(name uuid.UUID) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	return data, notFound(err)
}

func (s *LocalStorage) LoadReader(name uuid.UUID) (io.ReadCloser, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, notFound(err)
	}
	return f, nil
}

func (s *LocalStorage) Delete(name uuid.UUID) error {
	if err := os.Remove(s.path(name)); err != nil {
		return notFound(err)
	}
	if err := os.Remove(s.path(name) + metaExt); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStorage) Exist(name uuid.UUID) (bool, error) {
	_, err := os.Stat(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (s *LocalStorage) ListRoot(fn func(FileInfo) error) error {
	entries, err := os.ReadDir(s.rootDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), metaExt) {
			continue
		}
		id, err := uuid.FromString(e.Name())
		if err != nil {
			continue
		}
		info, err := s.GetFileInfo(id)
		if err != nil {
			return err
		}
		if err := fn(*info); err != nil {
			return err
		}
	}
	return nil
}

func (s *LocalStorage) Move(old string, new string) error {
	src, dst := filepath.Join(s.rootDir, filepath.Clean("/"+old)), filepath.Join(s.rootDir, filepath.Clean("/"+new))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err != nil {
		return notFound(err)
	}
	if err := os.Rename(src+metaExt, dst+metaExt); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStorage) GetFileInfo(name uuid.UUID) (*FileInfo, error) {
	stat, err := os.Stat(s.path(name))
	if err != nil {
		return nil, notFound(err)
	}
	info := &FileInfo{
		Name:      name.String(),
		Size:      stat.Size(),
		CreatedAt: stat.ModTime(),
	}
	if meta, err := s.readMeta(name); err == nil {
		info.ContentType = meta.ContentType
		info.CreatedAt = meta.CreatedAt
	}
	return info, nil
}

func notFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}
