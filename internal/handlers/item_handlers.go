package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/01moynul/inventory-golang/internal/models"
	"github.com/01moynul/inventory-golang/internal/store"
	"github.com/01moynul/inventory-golang/internal/validation"
)

const itemListURL = "/items"

// ItemList handles GET /items
func (h *Handlers) ItemList(c *gin.Context) {
	items, err := h.Store.ListItems(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "item_list.tmpl", gin.H{
		"Title": "Items",
		"Items": items,
	})
}

// ItemDetail handles GET /items/:id
// The category reference is resolved for display; an item whose category
// has since been removed is shown without one.
func (h *Handlers) ItemDetail(c *gin.Context) {
	ctx := c.Request.Context()

	item, err := h.Store.GetItem(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		fail(c, NotFound("Item not found"))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	category, err := h.Store.GetCategory(ctx, item.CategoryID)
	switch {
	case err == nil:
		item.Category = category
	case !errors.Is(err, store.ErrNotFound):
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "item_detail.tmpl", gin.H{
		"Title": "Item Detail",
		"Item":  item,
	})
}

// ItemCreateGet handles GET /items/create
func (h *Handlers) ItemCreateGet(c *gin.Context) {
	categories, err := h.Store.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	h.renderItemForm(c, "Create Item", nil, nil, categories, nil)
}

// ItemCreatePost handles POST /items/create, after UploadImage.
func (h *Handlers) ItemCreatePost(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. --- Validate & sanitize ---
	res, err := h.validateItem(ctx, c)
	if err != nil {
		fail(c, err)
		return
	}

	img, uploaded := uploadedImage(c)
	if !uploaded && uploadError(c) == "" {
		res.Add(validation.FieldImage, validation.MsgImageRequired)
	}

	if !res.Valid() {
		h.rerenderItemForm(c, "Create Item", res)
		return
	}

	// 2. --- Build & save ---
	item, err := itemFromResult(res)
	if err != nil {
		fail(c, err)
		return
	}
	item.Image = img

	if err := h.Store.CreateItem(ctx, item); err != nil {
		fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, item.URL())
}

// ItemUpdateGet handles GET /items/:id/update
// The item and the category list are read concurrently.
func (h *Handlers) ItemUpdateGet(c *gin.Context) {
	id := c.Param("id")

	var item *models.Item
	var categories []models.Category

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		item, err = h.Store.GetItem(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = h.Store.ListCategories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, NotFound("Item not found"))
			return
		}
		fail(c, err)
		return
	}

	h.renderItemForm(c, "Update Item", formFromItem(item), &item.Image, categories, nil)
}

// ItemUpdatePost handles POST /items/:id/update, after UploadImage.
// Without a new upload the existing image is kept.
func (h *Handlers) ItemUpdatePost(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	existing, err := h.Store.GetItem(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, NotFound("Item not found"))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	res, err := h.validateItem(ctx, c)
	if err != nil {
		fail(c, err)
		return
	}
	if !res.Valid() {
		h.rerenderItemForm(c, "Update Item", res, &existing.Image)
		return
	}

	item, err := itemFromResult(res)
	if err != nil {
		fail(c, err)
		return
	}
	item.ID = id
	item.Image = existing.Image
	if img, ok := uploadedImage(c); ok {
		item.Image = img
	}

	err = h.Store.UpdateItem(ctx, item)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, NotFound("Item not found"))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, item.URL())
}

// ItemDeleteGet handles GET /items/:id/delete
// An item that no longer exists sends the user back to the list.
func (h *Handlers) ItemDeleteGet(c *gin.Context) {
	item, err := h.Store.GetItem(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.Redirect(http.StatusFound, itemListURL)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "item_delete.tmpl", gin.H{
		"Title": "Delete Item",
		"Item":  item,
	})
}

// ItemDeletePost handles POST /items/:id/delete
func (h *Handlers) ItemDeletePost(c *gin.Context) {
	if err := h.Store.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, itemListURL)
}

// --- Helpers ---

// validateItem runs the item rule table, then checks the upload step's
// verdict and that the referenced category exists.
func (h *Handlers) validateItem(ctx context.Context, c *gin.Context) (*validation.Result, error) {
	res := validation.Validate(validation.ItemRules, c.PostForm)

	if msg := uploadError(c); msg != "" {
		res.Add(validation.FieldImage, msg)
	}

	categoryID := res.Get(validation.FieldCategory)
	if categoryID == "" {
		return res, nil
	}
	_, err := h.Store.GetCategory(ctx, categoryID)
	if errors.Is(err, store.ErrNotFound) {
		res.Add(validation.FieldCategory, validation.MsgUnknownCategory)
		return res, nil
	}
	return res, err
}

// itemFromResult converts a valid result into an item; the numeric rules
// guarantee both numbers parse.
func itemFromResult(res *validation.Result) (*models.Item, error) {
	price, err := decimal.NewFromString(res.Get(validation.FieldPrice))
	if err != nil {
		return nil, err
	}
	inStock, err := strconv.ParseFloat(res.Get(validation.FieldInStock), 64)
	if err != nil {
		return nil, err
	}

	return &models.Item{
		Name:        res.Get(validation.FieldName),
		Description: res.Get(validation.FieldDescription),
		CategoryID:  res.Get(validation.FieldCategory),
		Price:       price,
		InStock:     inStock,
	}, nil
}

func formFromItem(item *models.Item) *models.ItemInput {
	return &models.ItemInput{
		Name:        item.Name,
		Description: item.Description,
		Category:    item.CategoryID,
		Price:       item.Price.String(),
		InStock:     strconv.FormatFloat(item.InStock, 'f', -1, 64),
	}
}

func (h *Handlers) rerenderItemForm(c *gin.Context, title string, res *validation.Result, current ...*models.Image) {
	categories, err := h.Store.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	form := &models.ItemInput{
		Name:        res.Get(validation.FieldName),
		Description: res.Get(validation.FieldDescription),
		Category:    res.Get(validation.FieldCategory),
		Price:       res.Get(validation.FieldPrice),
		InStock:     res.Get(validation.FieldInStock),
	}

	var img *models.Image
	if len(current) > 0 {
		img = current[0]
	}
	h.renderItemForm(c, title, form, img, categories, res.Errors)
}

func (h *Handlers) renderItemForm(c *gin.Context, title string, form *models.ItemInput, img *models.Image, categories []models.Category, errs []validation.FieldError) {
	selected := ""
	if form != nil {
		selected = form.Category
	}

	c.HTML(http.StatusOK, "item_form.tmpl", gin.H{
		"Title":            title,
		"Item":             form,
		"Image":            img,
		"Categories":       categories,
		"SelectedCategory": selected,
		"Errors":           errs,
	})
}
