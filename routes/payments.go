package routes

import (
	"github.com/Zozodoank/idcashier-sub002/handlers/payments"
	"github.com/Zozodoank/idcashier-sub002/middleware"

	"github.com/gin-gonic/gin"
)

func PaymentsRoutes(r *gin.Engine, h *payments.Handler) {
	// Inscription payante: publique, la création du tenant attend le callback
	r.POST("/register", h.Register)

	subscriptionRoutes := r.Group("/subscriptions")
	{
		subscriptionRoutes.GET("/plans", h.GetPlans)
		subscriptionRoutes.POST("/renew", middleware.JWTAuth(), h.Renew)
		subscriptionRoutes.GET("/me", middleware.JWTAuth(), h.GetMySubscription)
	}

	// Le callback passerelle est volontairement sans authentification: la
	// signature du payload est la seule frontière. GET accepté par défense,
	// certains canaux de livraison retombent sur des paramètres d'URL.
	r.POST("/payments/callback", h.PaymentCallback)
	r.GET("/payments/callback", h.PaymentCallback)

	r.GET("/payments", middleware.AdminAuth(), h.ListPaymentOrders)
}
