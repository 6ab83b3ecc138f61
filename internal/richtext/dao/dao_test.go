package dao

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/aisa-it/richtext/internal/richtext/editorconfig"
	filestorage "github.com/aisa-it/richtext/internal/richtext/file-storage"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

func TestDocumentCreate(t *testing.T) {
	db := openDB(t)

	doc := Document{Title: "Draft", Content: NewEditorHTML(`<p onclick="x()">Hello</p>`)}
	require.NoError(t, db.Create(&doc).Error)
	assert.False(t, doc.ID.IsNil())
	assert.Equal(t, editorconfig.BuildClassic, doc.Build)

	loaded, err := GetDocument(db, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello</p>", loaded.Content.String())

	bad := Document{Title: "Bad", Build: "balloon"}
	assert.ErrorIs(t, db.Create(&bad).Error, ErrUnknownBuild)
}

func TestDocumentSerialize(t *testing.T) {
	doc := &Document{Content: NewEditorHTML(`<p>Keep  <span class="ck-suggestion-marker-insertion ck-suggestion-marker">added</span> text</p>`)}

	var src editorconfig.DocumentSource = doc

	withHighlights, err := editorconfig.SuggestionHighlights(src)
	require.NoError(t, err)
	assert.Contains(t, string(withHighlights), "ck-suggestion-marker")

	plain, err := src.Serialize(editorconfig.SerializeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "<p>Keep added text</p>", string(plain))

	data, err := editorconfig.PdfExport().Data(src)
	require.NoError(t, err)
	assert.Equal(t, withHighlights, data)
}

func TestEditorHTMLJSON(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{"title":"T","content":"<p>a &amp; b<script>x</script></p>"}`), &doc))
	assert.True(t, doc.Content.AlreadySanitized)
	assert.Equal(t, "<p>a &amp; b</p>", doc.Content.String())
	assert.Equal(t, "a &amp; b", doc.Content.StripTags())

	out, err := json.Marshal(doc.Content)
	require.NoError(t, err)
	assert.Equal(t, `"\u003cp\u003ea \u0026amp; b\u003c/p\u003e"`, string(out))

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(doc))
	assert.Contains(t, buf.String(), `"content":"<p>a &amp; b</p>"`)

	v, err := EditorHTML{Body: `<p><iframe src="x"></iframe>ok</p>`}.Value()
	require.NoError(t, err)
	assert.Equal(t, "<p>ok</p>", v)
}

func TestAssetLifecycle(t *testing.T) {
	db := openDB(t)
	storage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	FileStorage = storage
	t.Cleanup(func() { FileStorage = nil })

	used := FileAsset{Id: GenUUID(), Name: "a.png", ContentType: "image/png", Source: "simple-upload"}
	unused := FileAsset{Id: GenUUID(), Name: "b.png", ContentType: "image/png", Source: "simple-upload"}
	for _, a := range []FileAsset{used, unused} {
		require.NoError(t, storage.Save([]byte("img"), a.Id, a.ContentType, nil))
		require.NoError(t, db.Create(&a).Error)
	}

	doc := Document{
		Title:   "With image",
		Content: NewEditorHTML(fmt.Sprintf(`<figure class="image"><img src="%s"></figure><p><img src="%s"></p>`, used.URL(), used.URL())),
	}
	require.NoError(t, db.Create(&doc).Error)
	assert.Len(t, doc.Content.AssetIDs(), 1)
	require.NoError(t, AttachAssets(db, &doc))

	loaded, err := GetDocument(db, doc.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Assets, 1)
	assert.Equal(t, used.Id, loaded.Assets[0].Id)

	require.NoError(t, db.Delete(&unused).Error)
	exist, err := storage.Exist(unused.Id)
	require.NoError(t, err)
	assert.False(t, exist)
}
