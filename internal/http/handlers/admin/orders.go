package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zjy19901124/rallyroo-rc-store/internal/http/middleware"
	"github.com/zjy19901124/rallyroo-rc-store/internal/http/validation"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/orders"
	"github.com/zjy19901124/rallyroo-rc-store/internal/shared/apperr"
)

type OrdersHandler struct {
	Repo *orders.Repo
}

func NewOrdersHandler(repo *orders.Repo) *OrdersHandler {
	return &OrdersHandler{Repo: repo}
}

// GET /api/admin/orders?page=1&page_size=20&status=paid
func (h *OrdersHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	res, err := h.Repo.List(c.Request.Context(), orders.ListParams{
		Page:     page,
		PageSize: size,
		Status:   c.Query("status"),
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders": res.Items,
		"total":  res.Total,
	})
}

// GET /api/admin/orders/:id
func (h *OrdersHandler) Get(c *gin.Context) {
	o, err := h.Repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}

type statusInput struct {
	Status string `json:"status" binding:"required,oneof=pending paid refunded cancelled"`
}

// PATCH /api/admin/orders/:id/status
//
// The current status guards the update, so two admins racing on the same
// order cannot double-apply a transition.
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	var in statusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid status.", validation.FromBindError(err, &in)))
		return
	}

	o, err := h.Repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if err := h.Repo.UpdateStatus(c.Request.Context(), o.ID, o.Status, in.Status); err != nil {
		if errors.Is(err, orders.ErrInvalidTransition) {
			middleware.Fail(c, apperr.ConflictErr("Order cannot move from "+o.Status+" to "+in.Status+"."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	o.Status = in.Status
	c.JSON(http.StatusOK, gin.H{"order": o})
}
