// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"packpal/internal/http/handlers"
	"packpal/internal/http/middleware"
	"packpal/internal/infra"
	"packpal/internal/modules/matching"
	"packpal/internal/modules/notification"
	"packpal/internal/modules/parcel"
	"packpal/internal/modules/travel"
	"packpal/internal/modules/user"
)

type RouterDeps struct {
	Parcels        *parcel.Service
	Matching       *matching.Service
	Travels        *travel.Service
	Notifications  *notification.Service
	Users          *user.Store
	Verifier       infra.TokenVerifier
	Log            *zap.Logger
	BrowseRadiusKm float64
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log), middleware.Logging(deps.Log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.Auth(deps.Verifier))

	packageHandler := handlers.NewPackageHandler(deps.Parcels, deps.Matching, deps.BrowseRadiusKm)
	api.POST("/packages", packageHandler.Create)
	api.GET("/packages/pending", packageHandler.ListPending)
	api.GET("/packages/:id", packageHandler.Get)

	travelerHandler := handlers.NewTravelerHandler(deps.Matching, deps.Travels)
	api.POST("/packages/:id/accept", travelerHandler.Accept)
	api.GET("/travels", travelerHandler.ListTravels)
	api.GET("/travels/:id", travelerHandler.GetTravel)
	api.POST("/travels/:id/status", travelerHandler.UpdateTravelStatus)

	notificationHandler := handlers.NewNotificationHandler(deps.Notifications)
	api.GET("/notifications", notificationHandler.List)
	api.POST("/notifications/:id/read", notificationHandler.MarkRead)

	profileHandler := handlers.NewProfileHandler(deps.Users)
	api.GET("/me", profileHandler.Me)
	api.PUT("/me", profileHandler.UpsertMe)
	api.POST("/me/push-tokens", profileHandler.AddPushToken)

	return r
}
