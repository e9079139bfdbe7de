package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zjy19901124/rallyroo-rc-store/internal/http/middleware"
	"github.com/zjy19901124/rallyroo-rc-store/internal/http/validation"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/addresses"
	"github.com/zjy19901124/rallyroo-rc-store/internal/shared/apperr"
)

type AddressesHandler struct {
	Repo *addresses.Repo
}

func NewAddressesHandler(repo *addresses.Repo) *AddressesHandler {
	return &AddressesHandler{Repo: repo}
}

type addressInput struct {
	Name         string  `json:"name" binding:"required,max=255"`
	AddressLine1 string  `json:"address_line1" binding:"required,max=255"`
	AddressLine2 *string `json:"address_line2" binding:"omitempty,max=255"`
	Suburb       string  `json:"suburb" binding:"required,max=128"`
	State        string  `json:"state" binding:"required,max=64"`
	Postcode     string  `json:"postcode" binding:"required,max=16"`
	Phone        *string `json:"phone" binding:"omitempty,max=32"`
	IsDefault    bool    `json:"is_default"`
}

// GET /api/addresses
func (h *AddressesHandler) List(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	list, err := h.Repo.ListByUser(c.Request.Context(), ident.UserID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": list})
}

// POST /api/addresses
func (h *AddressesHandler) Create(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	var in addressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid address.", validation.FromBindError(err, &in)))
		return
	}

	a := addresses.Address{
		ID:           uuid.NewString(),
		UserID:       ident.UserID,
		Name:         in.Name,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		Suburb:       in.Suburb,
		State:        in.State,
		Postcode:     in.Postcode,
		Phone:        in.Phone,
		IsDefault:    in.IsDefault,
	}
	if err := h.Repo.Create(c.Request.Context(), &a); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"address": a})
}

// PUT /api/addresses/:id
func (h *AddressesHandler) Update(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	var in addressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid address.", validation.FromBindError(err, &in)))
		return
	}

	a := addresses.Address{
		ID:           c.Param("id"),
		UserID:       ident.UserID,
		Name:         in.Name,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		Suburb:       in.Suburb,
		State:        in.State,
		Postcode:     in.Postcode,
		Phone:        in.Phone,
		IsDefault:    in.IsDefault,
	}
	if err := h.Repo.Update(c.Request.Context(), &a); err != nil {
		if errors.Is(err, addresses.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Address not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": a})
}

// DELETE /api/addresses/:id
func (h *AddressesHandler) Delete(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	if err := h.Repo.Delete(c.Request.Context(), ident.UserID, c.Param("id")); err != nil {
		if errors.Is(err, addresses.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Address not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
