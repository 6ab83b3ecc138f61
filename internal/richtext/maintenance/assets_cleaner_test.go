package maintenance

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/aisa-it/richtext/internal/richtext/dao"
	filestorage "github.com/aisa-it/richtext/internal/richtext/file-storage"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCleanAssets(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, db.AutoMigrate(dao.Models()...))

	root := t.TempDir()
	storage, err := filestorage.NewLocalStorage(root)
	require.NoError(t, err)

	known := dao.FileAsset{Id: dao.GenUUID(), Name: "known.png"}
	require.NoError(t, db.Create(&known).Error)
	require.NoError(t, storage.Save([]byte("a"), known.Id, "image/png", nil))

	orphan := dao.GenUUID()
	require.NoError(t, storage.Save([]byte("b"), orphan, "image/png", nil))

	ac := NewAssetCleaner(db, storage)
	ctx := context.Background()

	// свежие файлы не переносятся
	moved, err := ac.CleanAssets(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, moved)

	ac.gracePeriod = 0

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	moved, err = ac.CleanAssets(canceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, moved)

	moved, err = ac.CleanAssets(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	exist, err := storage.Exist(known.Id)
	require.NoError(t, err)
	assert.True(t, exist)

	exist, err = storage.Exist(orphan)
	require.NoError(t, err)
	assert.False(t, exist)

	_, err = os.Stat(filepath.Join(root, UnknownPrefix, orphan.String()))
	assert.NoError(t, err)

	// перенесенные файлы не попадают в повторный обход
	moved, err = ac.CleanAssets(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, moved)
}
