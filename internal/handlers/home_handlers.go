package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Home handles GET /
func (h *Handlers) Home(c *gin.Context) {
	var categoryCount, itemCount int64

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		categoryCount, err = h.Store.CountCategories(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		itemCount, err = h.Store.CountItems(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Title":         "Inventory App",
		"CategoryCount": categoryCount,
		"ItemCount":     itemCount,
	})
}
