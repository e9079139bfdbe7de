package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zjy19901124/rallyroo-rc-store/internal/http/middleware"
	"github.com/zjy19901124/rallyroo-rc-store/internal/http/validation"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/settings"
	"github.com/zjy19901124/rallyroo-rc-store/internal/shared/apperr"
)

type SettingsHandler struct {
	Repo *settings.Repo
}

func NewSettingsHandler(repo *settings.Repo) *SettingsHandler {
	return &SettingsHandler{Repo: repo}
}

type settingsInput struct {
	ShippingFlatRateAUD      float64 `json:"shipping_flat_rate_aud" binding:"gte=0"`
	FreeShippingThresholdAUD float64 `json:"free_shipping_threshold_aud" binding:"gte=0"`
	DispatchTimeText         string  `json:"dispatch_time_text" binding:"required,max=255"`
	SupportEmail             string  `json:"support_email" binding:"required,email"`
}

// PUT /api/admin/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var in settingsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid settings.", validation.FromBindError(err, &in)))
		return
	}

	s, err := h.Repo.Get(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	s.ShippingFlatRateAUD = in.ShippingFlatRateAUD
	s.FreeShippingThresholdAUD = in.FreeShippingThresholdAUD
	s.DispatchTimeText = in.DispatchTimeText
	s.SupportEmail = in.SupportEmail

	if err := h.Repo.Update(c.Request.Context(), &s); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": s})
}
