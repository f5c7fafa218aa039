package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/01moynul/inventory-golang/internal/images"
	"github.com/01moynul/inventory-golang/internal/models"
	"github.com/01moynul/inventory-golang/internal/validation"
)

// Context keys set by UploadImage.
const (
	uploadedImageKey = "uploadedImage"
	uploadErrorKey   = "uploadError"
)

// formOverhead is the room left for the text fields and multipart framing
// on top of MaxUploadBytes.
const formOverhead = 1 << 20

// UploadImage runs before the item create/update submit handlers.
// It accepts a single file under the "image" field, stores it under a random
// name that keeps only the extension of the detected media type, and puts
// the stored reference on the context. A request without a file passes
// through untouched.
func (h *Handlers) UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		tooLarge := fmt.Sprintf("Image must be at most %d bytes.", h.MaxUploadBytes)

		// 1. Cap the body before anything reads it
		if h.MaxUploadBytes > 0 {
			limit := h.MaxUploadBytes + formOverhead
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
			if c.Request.ContentLength > limit {
				c.Set(uploadErrorKey, tooLarge)
				c.Next()
				return
			}
		}

		// 2. Get the file from the request
		file, err := c.FormFile(validation.FieldImage)
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			c.Next()
			return
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Set(uploadErrorKey, tooLarge)
			c.Next()
			return
		}
		if err != nil {
			c.Set(uploadErrorKey, "Image upload failed.")
			c.Next()
			return
		}

		// 3. Enforce the size limit on the file itself
		if h.MaxUploadBytes > 0 && file.Size > h.MaxUploadBytes {
			c.Set(uploadErrorKey, tooLarge)
			c.Next()
			return
		}

		src, err := file.Open()
		if err != nil {
			fail(c, fmt.Errorf("open upload: %w", err))
			return
		}
		defer src.Close()

		// 4. Derive the extension from the content, not the client's filename
		mtype, err := mimetype.DetectReader(src)
		if err != nil {
			fail(c, fmt.Errorf("detect upload type: %w", err))
			return
		}
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			fail(c, fmt.Errorf("rewind upload: %w", err))
			return
		}

		base := filepath.Base(file.Filename)
		upload := images.Upload{
			Filename:     images.NewFilename(mtype.Extension()),
			OriginalName: slug.Make(strings.TrimSuffix(base, filepath.Ext(base))),
			ContentType:  mtype.String(),
			Size:         file.Size,
			Body:         src,
		}

		// 5. Save the file
		img, err := h.Images.Save(c.Request.Context(), upload)
		if err != nil {
			fail(c, fmt.Errorf("save upload: %w", err))
			return
		}

		c.Set(uploadedImageKey, img)
		c.Next()
	}
}

// uploadedImage returns the image stored by UploadImage for this request.
func uploadedImage(c *gin.Context) (models.Image, bool) {
	v, ok := c.Get(uploadedImageKey)
	if !ok {
		return models.Image{}, false
	}
	img, ok := v.(models.Image)
	return img, ok
}

// uploadError returns the message UploadImage left for the form, if any.
func uploadError(c *gin.Context) string {
	return c.GetString(uploadErrorKey)
}
