package routes

import (
	"fmt"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/01moynul/inventory-golang/internal/handlers"
	"github.com/01moynul/inventory-golang/internal/middleware"
	"github.com/01moynul/inventory-golang/web"
)

// Options carries the process-wide pieces the router is built around.
type Options struct {
	Limiter     *rate.Limiter
	Registry    *prometheus.Registry // nil disables /metrics
	Development bool

	// UploadDir is served at UploadPublicPath when images are stored locally.
	UploadDir        string
	UploadPublicPath string
}

func SetupRouter(h *handlers.Handlers, opts Options) (*gin.Engine, error) {
	router := gin.Default()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Uploads up to the size limit are parsed in memory.
	if h.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = h.MaxUploadBytes + (1 << 20)
	}

	// --- Global middleware ---
	if opts.Registry != nil {
		router.Use(middleware.NewMetrics(opts.Registry).Handler())
	}
	if opts.Limiter != nil {
		router.Use(middleware.RateLimit(opts.Limiter))
	}
	router.Use(middleware.SecurityHeaders())
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(handlers.ErrorResponder(opts.Development))

	// --- Static assets ---
	router.StaticFileFS("/stylesheets/style.css", "stylesheets/style.css", web.Public())
	if opts.UploadDir != "" && opts.UploadPublicPath != "" {
		router.Static(opts.UploadPublicPath, opts.UploadDir)
	}

	if opts.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	router.GET("/", h.Home)

	// --- Category Routes ---
	categories := router.Group("/categories")
	{
		categories.GET("", h.CategoryList)
		categories.GET("/create", h.CategoryCreateGet)
		categories.POST("/create", h.CategoryCreatePost)
		categories.GET("/:id", h.CategoryDetail)
		categories.GET("/:id/update", h.CategoryUpdateGet)
		categories.POST("/:id/update", h.CategoryUpdatePost)
		categories.GET("/:id/delete", h.CategoryDeleteGet)
		categories.POST("/:id/delete", h.CategoryDeletePost)
	}

	// --- Item Routes ---
	items := router.Group("/items")
	{
		items.GET("", h.ItemList)
		items.GET("/create", h.ItemCreateGet)
		items.POST("/create", h.UploadImage(), h.ItemCreatePost)
		items.GET("/:id", h.ItemDetail)
		items.GET("/:id/update", h.ItemUpdateGet)
		items.POST("/:id/update", h.UploadImage(), h.ItemUpdatePost)
		items.GET("/:id/delete", h.ItemDeleteGet)
		items.POST("/:id/delete", h.ItemDeletePost)
	}

	router.NoRoute(handlers.NoRoute)

	return router, nil
}
