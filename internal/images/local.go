package images

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/01moynul/inventory-golang/internal/models"
)

// Local writes uploads into a directory that is served statically under
// PublicPath.
type Local struct {
	Dir        string
	PublicPath string
}

// NewLocal creates dir if it does not exist yet.
func NewLocal(dir, publicPath string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{Dir: dir, PublicPath: publicPath}, nil
}

func (l *Local) Save(_ context.Context, u Upload) (models.Image, error) {
	if u.Filename == "" || filepath.Base(u.Filename) != u.Filename {
		return models.Image{}, fmt.Errorf("invalid upload filename %q", u.Filename)
	}

	dst := filepath.Join(l.Dir, u.Filename)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return models.Image{}, err
	}
	defer f.Close()

	n, err := io.Copy(f, u.Body)
	if err != nil {
		return models.Image{}, err
	}

	return models.Image{
		Filename:     u.Filename,
		Path:         path.Join(l.PublicPath, u.Filename),
		ContentType:  u.ContentType,
		Size:         n,
		OriginalName: u.OriginalName,
	}, nil
}
