package plugins

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassicBuild(t *testing.T) {
	m := ClassicBuild()

	assert.Equal(t, 46, m.Len())
	names := m.Names()
	assert.Equal(t, "Code", names[0])
	assert.Equal(t, "Undo", names[len(names)-1])

	for _, cmd := range []string{"bold", "exportPdf", "imageStyle:side", "insertTable", "undo", "todoList", "sourceEditing"} {
		assert.True(t, m.Has(cmd), cmd)
	}
	assert.False(t, m.Has("specialCharacters"))
	assert.False(t, m.Has("underline"))
}

func TestNewManifestDeduplicates(t *testing.T) {
	m, err := NewManifest("Bold", "Italic", "Bold", "Undo", "Italic")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bold", "Italic", "Undo"}, m.Names())
}

func TestNewManifestUnknown(t *testing.T) {
	_, err := NewManifest("Bold", "Nope")
	assert.Error(t, err)
}

func TestManifestIsReadOnly(t *testing.T) {
	m := ClassicBuild()
	plugins := m.Plugins()
	plugins[0].Name = "Changed"
	plugins[0].Commands[0] = "changed"

	assert.Equal(t, "Code", m.Names()[0])
	assert.True(t, m.Has("code"))
}

func TestLookupReturnsCopy(t *testing.T) {
	p, ok := Lookup("Bold")
	require.True(t, ok)
	p.Commands[0] = "changed"

	again, _ := Lookup("Bold")
	assert.Equal(t, []string{"bold"}, again.Commands)

	m := MustManifest("Bold")
	name, ok := m.Provider("bold")
	assert.True(t, ok)
	assert.Equal(t, "Bold", name)

	_, ok = Lookup("Missing")
	assert.False(t, ok)
}

func TestProvider(t *testing.T) {
	name, ok := ClassicBuild().Provider("imageTextAlternative")
	assert.True(t, ok)
	assert.Equal(t, "Image", name)

	// undo регистрируют и Essentials, и Undo, берется первый по порядку
	name, ok = ClassicBuild().Provider("undo")
	assert.True(t, ok)
	assert.Equal(t, "Essentials", name)
}

func TestManifestJSON(t *testing.T) {
	b, err := json.Marshal(ClassicBuild())
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, ClassicBuild().Names(), m.Names())
	assert.Equal(t, ClassicBuild().Capabilities(), m.Capabilities())
}
