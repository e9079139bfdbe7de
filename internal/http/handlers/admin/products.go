package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/zjy19901124/rallyroo-rc-store/internal/http/middleware"
	"github.com/zjy19901124/rallyroo-rc-store/internal/http/validation"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/products"
	"github.com/zjy19901124/rallyroo-rc-store/internal/shared/apperr"
	"github.com/zjy19901124/rallyroo-rc-store/internal/shared/slug"
)

type ProductsHandler struct {
	Repo *products.Repo
}

func NewProductsHandler(repo *products.Repo) *ProductsHandler {
	return &ProductsHandler{Repo: repo}
}

type productInput struct {
	Slug        string `json:"slug" binding:"omitempty,max=255"`
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,oneof=cars trucks buggies boats parts"`

	PriceAUD          float64  `json:"price_aud" binding:"required,gte=0"`
	CompareAtPriceAUD *float64 `json:"compare_at_price_aud" binding:"omitempty,gte=0"`

	SKU         *string  `json:"sku" binding:"omitempty,max=64"`
	AgeGrade    string   `json:"age_grade" binding:"omitempty,max=32"`
	BatteryType string   `json:"battery_type" binding:"omitempty,max=64"`
	WeightKG    float64  `json:"weight_kg" binding:"gte=0"`
	Dimensions  *struct {
		Length float64 `json:"length"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"dimensions_cm"`
	Features []string `json:"features"`
	Images   []string `json:"images"`
	VideoURL *string  `json:"video_url" binding:"omitempty,max=512"`

	StockOnHand       int `json:"stock_on_hand" binding:"gte=0"`
	LowStockThreshold int `json:"low_stock_threshold" binding:"gte=0"`

	StripePaymentLinkURL *string `json:"stripe_payment_link_url" binding:"omitempty,max=512"`
	IsActive             *bool   `json:"is_active"`
}

// GET /api/admin/products
func (h *ProductsHandler) List(c *gin.Context) {
	list, err := h.Repo.ListAll(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": list})
}

// POST /api/admin/products
func (h *ProductsHandler) Create(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid product.", validation.FromBindError(err, &in)))
		return
	}

	p := products.Product{}
	applyInput(&p, in)
	if p.Slug == "" {
		p.Slug = slug.FromName(p.Name)
	}

	if err := h.Repo.Create(c.Request.Context(), &p); err != nil {
		if errors.Is(err, products.ErrSlugTaken) {
			middleware.Fail(c, apperr.ConflictErr("A product with this slug already exists."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": p})
}

// PUT /api/admin/products/:id
func (h *ProductsHandler) Update(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid product.", validation.FromBindError(err, &in)))
		return
	}

	p, err := h.Repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	applyInput(&p, in)
	if p.Slug == "" {
		p.Slug = slug.FromName(p.Name)
	}

	if err := h.Repo.Update(c.Request.Context(), &p); err != nil {
		if errors.Is(err, products.ErrSlugTaken) {
			middleware.Fail(c, apperr.ConflictErr("A product with this slug already exists."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

// DELETE /api/admin/products/:id
//
// Products referenced by orders are never hard-deleted; they are hidden
// from the storefront instead.
func (h *ProductsHandler) Delete(c *gin.Context) {
	if err := h.Repo.SetActive(c.Request.Context(), c.Param("id"), false); err != nil {
		if errors.Is(err, products.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func applyInput(p *products.Product, in productInput) {
	p.Slug = in.Slug
	p.Name = in.Name
	p.Description = in.Description
	p.Category = in.Category
	p.PriceAUD = in.PriceAUD
	p.CompareAtPriceAUD = in.CompareAtPriceAUD
	p.SKU = in.SKU
	if in.AgeGrade != "" {
		p.AgeGrade = in.AgeGrade
	}
	if in.BatteryType != "" {
		p.BatteryType = in.BatteryType
	}
	p.WeightKG = in.WeightKG
	p.DimensionsCM = toJSON(in.Dimensions)
	p.Features = toJSON(in.Features)
	p.Images = toJSON(in.Images)
	p.VideoURL = in.VideoURL
	p.StockOnHand = in.StockOnHand
	p.LowStockThreshold = in.LowStockThreshold
	p.StripePaymentLinkURL = in.StripePaymentLinkURL
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

func toJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
