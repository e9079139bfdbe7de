package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zjy19901124/rallyroo-rc-store/internal/http/middleware"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/products"
	"github.com/zjy19901124/rallyroo-rc-store/internal/shared/apperr"
)

type ProductsHandler struct {
	Repo *products.Repo
}

func NewProductsHandler(repo *products.Repo) *ProductsHandler {
	return &ProductsHandler{Repo: repo}
}

// GET /api/products?category=cars
func (h *ProductsHandler) List(c *gin.Context) {
	list, err := h.Repo.ListActive(c.Request.Context(), c.Query("category"))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": list})
}

// GET /api/products/:slug
func (h *ProductsHandler) Get(c *gin.Context) {
	p, err := h.Repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}
