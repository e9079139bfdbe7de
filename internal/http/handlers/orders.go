package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zjy19901124/rallyroo-rc-store/internal/http/middleware"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/orders"
	"github.com/zjy19901124/rallyroo-rc-store/internal/shared/apperr"
)

type OrdersHandler struct {
	Repo *orders.Repo
}

func NewOrdersHandler(repo *orders.Repo) *OrdersHandler {
	return &OrdersHandler{Repo: repo}
}

// GET /api/orders
//
// Returns the caller's orders, including guest checkouts placed with the
// same email before the account existed.
func (h *OrdersHandler) List(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	list, err := h.Repo.ListForUser(c.Request.Context(), ident.UserID, ident.Email)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// GET /api/orders/:id
func (h *OrdersHandler) Get(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	o, err := h.Repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if !ownsOrder(ident, o) {
		// Hide existence from other customers.
		middleware.Fail(c, apperr.NotFoundErr("Order not found."))
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

func ownsOrder(ident middleware.Identity, o orders.Order) bool {
	if o.UserID != nil && *o.UserID == ident.UserID {
		return true
	}
	if o.UserID == nil && ident.Email != "" &&
		strings.EqualFold(o.CustomerEmail, ident.Email) {
		return true
	}
	return false
}
