package images

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	l, err := NewLocal(dir, "/images/uploads")
	require.NoError(t, err)

	name := NewFilename(".png")
	img, err := l.Save(context.Background(), Upload{
		Filename:     name,
		OriginalName: "my-photo",
		ContentType:  "image/png",
		Body:         strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, name, img.Filename)
	assert.Equal(t, "/images/uploads/"+name, img.Path)
	assert.Equal(t, int64(len("png-bytes")), img.Size)
	assert.Equal(t, "my-photo", img.OriginalName)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalSaveRejectsPaths(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/images/uploads")
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.png", "nested/file.png"} {
		_, err := l.Save(context.Background(), Upload{Filename: name, Body: strings.NewReader("x")})
		assert.Error(t, err, name)
	}
}

func TestLocalSaveNeverOverwrites(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/images/uploads")
	require.NoError(t, err)

	u := Upload{Filename: "fixed.png", Body: strings.NewReader("first")}
	_, err = l.Save(context.Background(), u)
	require.NoError(t, err)

	_, err = l.Save(context.Background(), Upload{Filename: "fixed.png", Body: strings.NewReader("second")})
	assert.Error(t, err)
}

func TestNewFilename(t *testing.T) {
	a, b := NewFilename(".jpg"), NewFilename(".jpg")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".jpg"))
	assert.Len(t, strings.TrimSuffix(a, ".jpg"), 36)
	assert.Len(t, NewFilename(""), 36)
}
