// Package images stores uploaded item images and hands back the reference
// that is persisted on the item.
package images

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/01moynul/inventory-golang/internal/models"
)

// Upload is a file accepted by the upload step, already renamed.
type Upload struct {
	Filename     string
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
}

// Store persists uploads. Stored files are never removed by the application.
type Store interface {
	Save(ctx context.Context, u Upload) (models.Image, error)
}

// NewFilename returns a random, collision-free file name with the given
// extension (".png", ".jpg", or empty).
func NewFilename(ext string) string {
	return uuid.New().String() + ext
}
