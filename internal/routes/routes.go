package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tourbook/internal/auth"
	"tourbook/internal/handlers"
	"tourbook/internal/middleware"
	"tourbook/internal/models"
)

// Options carries everything route registration needs besides the handlers.
type Options struct {
	Tokens     *auth.TokenService
	Users      middleware.UserLoader
	AuthPerSec float64
	AuthBurst  int
}

// Register mounts every route on the engine. Global middleware (request id,
// logging, CORS, DB injection) is expected to be installed already.
func Register(r *gin.Engine, h *handlers.AppHandlers, opts Options) {
	protect := middleware.Authenticate(opts.Tokens, opts.Users)
	identify := middleware.OptionalAuth(opts.Tokens, opts.Users)
	staffOnly := middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleLeadGuide)
	adminOnly := middleware.RequireRoles(models.UserRoleAdmin)

	r.GET("/healthz", h.Health.Check)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// payment gateway callback; authenticated by signature, not session
	r.POST("/webhook-checkout", h.Booking.Webhook)

	api := r.Group("/api/v1")

	users := api.Group("/users")
	{
		// credential endpoints sit behind the login rate limit
		limited := users.Group("")
		limited.Use(middleware.RateLimit(opts.AuthPerSec, opts.AuthBurst))
		{
			limited.POST("/signup", h.Auth.Signup)
			limited.POST("/login", h.Auth.Login)
			limited.POST("/forgotPassword", h.Auth.ForgotPassword)
			limited.PATCH("/resetPassword/:token", h.Auth.ResetPassword)
		}
		users.GET("/logout", h.Auth.Logout)

		me := users.Group("", protect)
		{
			me.PATCH("/updateMyPassword", h.Auth.UpdatePassword)
			me.GET("/me", h.User.GetMe)
			me.PATCH("/updateMe", h.User.UpdateMe)
			me.DELETE("/deleteMe", h.User.DeleteMe)
		}

		admin := users.Group("", protect, adminOnly)
		{
			admin.GET("", h.User.GetAll)
			admin.POST("", h.User.CreateOne)
			admin.GET("/:id", h.User.GetOne)
			admin.PATCH("/:id", h.User.UpdateOne)
			admin.DELETE("/:id", h.User.DeleteOne)
		}
	}

	tours := api.Group("/tours")
	{
		tours.GET("/top-5-cheap", h.Tour.AliasTopTours, h.Tour.GetAll)
		tours.GET("/tour-stats", h.Tour.GetTourStats)
		tours.GET("/monthly-plan/:year", protect,
			middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleLeadGuide, models.UserRoleGuide),
			h.Tour.GetMonthlyPlan)
		tours.GET("/tours-within/:distance/center/:latlng/unit/:unit", h.Tour.GetToursWithin)
		tours.GET("/distances/:latlng/unit/:unit", h.Tour.GetDistances)

		// public reads resolve a session when one is presented, so the
		// request log carries the viewer without forcing a login
		tours.GET("", identify, h.Tour.GetAll)
		tours.GET("/:id", identify, h.Tour.GetOne)

		tours.POST("", protect, staffOnly, h.Tour.CreateOne)
		tours.PATCH("/:id", protect, staffOnly, h.Tour.UpdateOne)
		tours.PATCH("/:id/images", protect, staffOnly, h.Tour.UploadImages)
		tours.DELETE("/:id", protect, staffOnly, h.Tour.DeleteOne)

		// nested review routes; :id is the tour here
		nested := tours.Group("/:id/reviews", protect)
		{
			nested.GET("", h.Review.GetAll)
			nested.POST("", middleware.RequireRoles(models.UserRoleUser), h.Review.CreateOne)
		}
	}

	reviews := api.Group("/reviews", protect)
	{
		reviews.GET("", h.Review.GetAll)
		reviews.POST("", middleware.RequireRoles(models.UserRoleUser), h.Review.CreateOne)
		reviews.GET("/:id", h.Review.GetOne)
		reviews.PATCH("/:id", middleware.RequireRoles(models.UserRoleUser, models.UserRoleAdmin), h.Review.UpdateOne)
		reviews.DELETE("/:id", middleware.RequireRoles(models.UserRoleUser, models.UserRoleAdmin), h.Review.DeleteOne)
	}

	bookings := api.Group("/bookings", protect)
	{
		bookings.GET("/checkout-session/:tourId", h.Booking.GetCheckoutSession)
		bookings.GET("/my-tours", h.Booking.MyTours)

		staff := bookings.Group("", staffOnly)
		{
			staff.GET("", h.Booking.GetAll)
			staff.POST("", h.Booking.CreateOne)
			staff.GET("/:id", h.Booking.GetOne)
			staff.PATCH("/:id", h.Booking.UpdateOne)
			staff.DELETE("/:id", h.Booking.DeleteOne)
		}
	}
}
