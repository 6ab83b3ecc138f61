// Пакет для обслуживания файлового хранилища. Файлы, для которых нет записи FileAsset, переносятся в каталог unknown/.
//
// Основные возможности:
//   - Обнаружение неучтенных файлов в корне хранилища.
//   - Перенос неучтенных файлов в unknown/ без удаления.
//   - Пропуск свежих файлов, запись о которых еще может создаваться.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/aisa-it/richtext/internal/richtext/dao"
	filestorage "github.com/aisa-it/richtext/internal/richtext/file-storage"
	"gorm.io/gorm"
)

const (
	UnknownPrefix = "unknown/"

	// файл младше этого возраста не трогается: загрузка могла еще не записать FileAsset
	defaultGracePeriod = time.Hour
)

type AssetsCleaner struct {
	db          *gorm.DB
	si          filestorage.FileStorage
	gracePeriod time.Duration
}

func NewAssetCleaner(db *gorm.DB, si filestorage.FileStorage) *AssetsCleaner {
	return &AssetsCleaner{db, si, defaultGracePeriod}
}

// CleanAssets переносит неучтенные файлы и возвращает их количество. Обход прерывается при отмене ctx.
func (ac *AssetsCleaner) CleanAssets(ctx context.Context) (int, error) {
	var moved int
	err := ac.si.ListRoot(func(fi filestorage.FileInfo) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if time.Since(fi.CreatedAt) < ac.gracePeriod {
			return nil
		}

		var exist bool
		if err := ac.db.WithContext(ctx).
			Where("id = ?", fi.Name).
			Select("count(*) > 0").
			Model(&dao.FileAsset{}).
			Find(&exist).Error; err != nil {
			return err
		}
		if exist {
			return nil
		}
		if err := ac.si.Move(fi.Name, UnknownPrefix+fi.Name); err != nil {
			return err
		}
		slog.Debug("Move unknown asset", "name", fi.Name)
		moved++
		return nil
	})
	if moved > 0 {
		slog.Info("Unknown assets moved", "count", moved)
	}
	return moved, err
}
