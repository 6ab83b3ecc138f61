// Пакет dao содержит модели базы данных сервиса редактора: сохраненные документы и загруженные файлы.
//
// Основные возможности:
//   - Создание, чтение и обновление документов редактора.
//   - Учет загруженных файлов и их привязка к документам.
//   - Удаление файла из хранилища вместе с записью о нем.
//   - Сериализация документа для экспорта с подсветкой предложений правок или без нее.
package dao

import (
	"errors"
	"time"

	"github.com/aisa-it/richtext/internal/richtext/editorconfig"
	filestorage "github.com/aisa-it/richtext/internal/richtext/file-storage"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

var FileStorage filestorage.FileStorage

var ErrUnknownBuild = errors.New("unknown editor build")

// GenUUID генерирует уникальный идентификатор в формате UUID.
func GenUUID() uuid.UUID {
	u2, _ := uuid.NewV4()
	return u2
}

// Models - модели для миграции.
func Models() []any {
	return []any{&Document{}, &FileAsset{}}
}

type FileAsset struct {
	Id        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `json:"created_at"`

	DocumentId uuid.NullUUID `json:"document" gorm:"type:uuid;index"`

	Name        string `json:"name" gorm:"index"`
	FileSize    int64  `json:"size"`
	ContentType string `json:"content_type"`
	// simple-upload или tus
	Source string `json:"source"`
}

// BeforeDelete удаляет файл из хранилища вместе с записью.
func (asset *FileAsset) BeforeDelete(tx *gorm.DB) error {
	if FileStorage == nil {
		return nil
	}
	exist, err := FileStorage.Exist(asset.Id)
	if err != nil {
		return err
	}

	if exist {
		if err := FileStorage.Delete(asset.Id); err != nil {
			return err
		}
	}
	return nil
}

// URL - путь, по которому отдается файл.
func (asset *FileAsset) URL() string {
	return filestorage.FileURL(asset.Id)
}

type Document struct {
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title   string     `json:"title" validate:"required,max=150"`
	Content EditorHTML `json:"content"`
	// Сборка редактора, в которой создан документ
	Build string `json:"build" gorm:"default:classic" validate:"omitempty,editorBuild"`

	Assets []FileAsset `json:"assets" gorm:"foreignKey:DocumentId"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID.IsNil() {
		d.ID = GenUUID()
	}
	if d.Build == "" {
		d.Build = editorconfig.BuildClassic
	}
	if !editorconfig.HasBuild(d.Build) {
		return ErrUnknownBuild
	}
	return nil
}

// Serialize отдает разметку документа. Без ShowSuggestionHighlights подсветка предложений правок убирается.
func (d *Document) Serialize(opts editorconfig.SerializeOptions) ([]byte, error) {
	body := d.Content.String()
	if !opts.ShowSuggestionHighlights {
		var err error
		body, err = stripSuggestions(body)
		if err != nil {
			return nil, err
		}
	}
	return minifyHTML([]byte(body))
}

// GetDocument загружает документ вместе с файлами.
func GetDocument(db *gorm.DB, id uuid.UUID) (*Document, error) {
	var doc Document
	if err := db.Preload("Assets").Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// AttachAssets привязывает к документу файлы, на которые ссылается его содержимое.
func AttachAssets(tx *gorm.DB, doc *Document) error {
	ids := doc.Content.AssetIDs()
	if len(ids) == 0 {
		return nil
	}
	return tx.Model(&FileAsset{}).
		Where("id in (?)", ids).
		Where("document_id is null or document_id = ?", doc.ID).
		Update("document_id", doc.ID).Error
}
