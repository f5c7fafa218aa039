package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/01moynul/inventory-golang/internal/models"
	"github.com/01moynul/inventory-golang/internal/store"
	"github.com/01moynul/inventory-golang/internal/validation"
)

const categoryListURL = "/categories"

// CategoryList handles GET /categories
func (h *Handlers) CategoryList(c *gin.Context) {
	categories, err := h.Store.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "category_list.tmpl", gin.H{
		"Title":      "Category List",
		"Categories": categories,
	})
}

// CategoryDetail handles GET /categories/:id
// The category and its items are read concurrently.
func (h *Handlers) CategoryDetail(c *gin.Context) {
	id := c.Param("id")

	var category *models.Category
	var items []models.Item

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		category, err = h.Store.GetCategory(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = h.Store.ListItemsByCategory(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, NotFound("Category not found"))
			return
		}
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "category_detail.tmpl", gin.H{
		"Title":    "Category Detail",
		"Category": category,
		"Items":    items,
	})
}

// CategoryCreateGet handles GET /categories/create
func (h *Handlers) CategoryCreateGet(c *gin.Context) {
	h.renderCategoryForm(c, "Create Category", nil, nil)
}

// CategoryCreatePost handles POST /categories/create
func (h *Handlers) CategoryCreatePost(c *gin.Context) {
	// 1. --- Validate & sanitize ---
	res := validation.Validate(validation.CategoryRules, c.PostForm)
	category := &models.Category{
		Name:        res.Get(validation.FieldName),
		Description: res.Get(validation.FieldDescription),
	}

	if !res.Valid() {
		h.renderCategoryForm(c, "Create Category", category, res.Errors)
		return
	}

	// 2. --- Save ---
	if err := h.Store.CreateCategory(c.Request.Context(), category); err != nil {
		fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, category.URL())
}

// CategoryUpdateGet handles GET /categories/:id/update
func (h *Handlers) CategoryUpdateGet(c *gin.Context) {
	category, err := h.Store.GetCategory(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		fail(c, NotFound("Category not found"))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	h.renderCategoryForm(c, "Update Category", category, nil)
}

// CategoryUpdatePost handles POST /categories/:id/update
func (h *Handlers) CategoryUpdatePost(c *gin.Context) {
	res := validation.Validate(validation.CategoryRules, c.PostForm)
	category := &models.Category{
		ID:          c.Param("id"),
		Name:        res.Get(validation.FieldName),
		Description: res.Get(validation.FieldDescription),
	}

	if !res.Valid() {
		h.renderCategoryForm(c, "Update Category", category, res.Errors)
		return
	}

	err := h.Store.UpdateCategory(c.Request.Context(), category)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, NotFound("Category not found"))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, category.URL())
}

// CategoryDeleteGet handles GET /categories/:id/delete
// A category that no longer exists sends the user back to the list.
func (h *Handlers) CategoryDeleteGet(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	category, err := h.Store.GetCategory(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		c.Redirect(http.StatusFound, categoryListURL)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	items, err := h.Store.ListItemsByCategory(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}

	h.renderCategoryDelete(c, category, items)
}

// CategoryDeletePost handles POST /categories/:id/delete
// Deletion is refused while items still reference the category; the
// confirmation page is shown again listing them.
func (h *Handlers) CategoryDeletePost(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	category, err := h.Store.GetCategory(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		c.Redirect(http.StatusFound, categoryListURL)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	items, err := h.Store.ListItemsByCategory(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	if len(items) > 0 {
		h.renderCategoryDelete(c, category, items)
		return
	}

	if err := h.Store.DeleteCategory(ctx, id); err != nil {
		fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, categoryListURL)
}

func (h *Handlers) renderCategoryForm(c *gin.Context, title string, category *models.Category, errs []validation.FieldError) {
	c.HTML(http.StatusOK, "category_form.tmpl", gin.H{
		"Title":    title,
		"Category": category,
		"Errors":   errs,
	})
}

func (h *Handlers) renderCategoryDelete(c *gin.Context, category *models.Category, items []models.Item) {
	c.HTML(http.StatusOK, "category_delete.tmpl", gin.H{
		"Title":    "Delete Category",
		"Category": category,
		"Items":    items,
	})
}
