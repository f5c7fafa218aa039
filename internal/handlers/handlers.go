package handlers

import (
	"github.com/01moynul/inventory-golang/internal/images"
	"github.com/01moynul/inventory-golang/internal/store"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store          store.Store
	Images         images.Store
	MaxUploadBytes int64 // upper bound for a single item image
}

// New wires the handler dependencies.
func New(s store.Store, img images.Store, maxUploadBytes int64) *Handlers {
	return &Handlers{Store: s, Images: img, MaxUploadBytes: maxUploadBytes}
}
