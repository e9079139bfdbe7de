package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zjy19901124/rallyroo-rc-store/internal/config"
	"github.com/zjy19901124/rallyroo-rc-store/internal/http/handlers"
	"github.com/zjy19901124/rallyroo-rc-store/internal/http/handlers/admin"
	"github.com/zjy19901124/rallyroo-rc-store/internal/http/middleware"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/addresses"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/orders"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/payments"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/products"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/settings"
	"github.com/zjy19901124/rallyroo-rc-store/internal/storage"
)

type Deps struct {
	Logger  *slog.Logger
	DB      *gorm.DB
	Cfg     config.Config
	Stripe  *payments.StripeClient
	Storage storage.Storage
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.CORS(d.Cfg.CORSAllowOrigin))
	r.Use(middleware.ErrorHandler(d.Logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	reconciler := payments.NewReconcileService(d.DB, d.Stripe)
	reconciler.SetLogger(d.Logger)
	wh := handlers.NewWebhookHandler(d.Logger, d.Stripe, reconciler)
	r.Any("/webhooks/stripe", wh.Handle)

	productsH := handlers.NewProductsHandler(products.NewRepo(d.DB))
	settingsH := handlers.NewSettingsHandler(settings.NewRepo(d.DB))
	ordersH := handlers.NewOrdersHandler(orders.NewRepo(d.DB))
	addressesH := handlers.NewAddressesHandler(addresses.NewRepo(d.DB))

	api := r.Group("/api")
	{
		api.GET("/products", productsH.List)
		api.GET("/products/:slug", productsH.Get)
		api.GET("/settings", settingsH.Get)

		authed := api.Group("")
		authed.Use(middleware.RequireUser())
		{
			authed.GET("/orders", ordersH.List)
			authed.GET("/orders/:id", ordersH.Get)

			authed.GET("/addresses", addressesH.List)
			authed.POST("/addresses", addressesH.Create)
			authed.PUT("/addresses/:id", addressesH.Update)
			authed.DELETE("/addresses/:id", addressesH.Delete)
		}
	}

	adminAuthH := admin.NewAuthHandler(d.Logger, d.DB, d.Cfg.AdminPassword)
	adminProductsH := admin.NewProductsHandler(products.NewRepo(d.DB))
	adminOrdersH := admin.NewOrdersHandler(orders.NewRepo(d.DB))
	adminSettingsH := admin.NewSettingsHandler(settings.NewRepo(d.DB))
	adminImagesH := admin.NewImagesHandler(d.Storage)

	adminAPI := r.Group("/api/admin")
	adminAPI.POST("/login", adminAuthH.Login)

	adminAuthed := adminAPI.Group("")
	adminAuthed.Use(middleware.RequireAdmin(d.DB))
	{
		adminAuthed.GET("/products", adminProductsH.List)
		adminAuthed.POST("/products", adminProductsH.Create)
		adminAuthed.PUT("/products/:id", adminProductsH.Update)
		adminAuthed.DELETE("/products/:id", adminProductsH.Delete)

		adminAuthed.GET("/orders", adminOrdersH.List)
		adminAuthed.GET("/orders/:id", adminOrdersH.Get)
		adminAuthed.PATCH("/orders/:id/status", adminOrdersH.UpdateStatus)

		adminAuthed.PUT("/settings", adminSettingsH.Update)

		adminAuthed.POST("/images", adminImagesH.Upload)
	}

	return r
}
