package routes

import (
	"net/http"

	"github.com/shashiranjanraj/foodshare/app/controllers"
	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/pkg/metrics"
	"github.com/shashiranjanraj/foodshare/pkg/middleware"
	"github.com/shashiranjanraj/foodshare/pkg/rbac"
	"github.com/shashiranjanraj/foodshare/pkg/response"
	"github.com/shashiranjanraj/foodshare/pkg/router"
)

// RegisterAPI mounts the whole HTTP surface. Route-level rbac gates cover
// the role-restricted endpoints; ownership checks live in the policies.
func RegisterAPI(r *router.Router) {
	authController := controllers.NewAuthController()
	foodController := controllers.NewFoodController()
	requestController := controllers.NewRequestController()
	notificationController := controllers.NewNotificationController()
	graphqlController := controllers.NewGraphQLController()

	admin := string(models.RoleAdmin)
	provider := string(models.RoleFoodProvider)
	ngo := string(models.RoleNGO)

	api := r.Group("/api")

	// Auth.
	auth := api.Group("/auth")
	auth.Post("/register", "auth.register", authController.Register)
	auth.Post("/login", "auth.login", authController.Login)
	auth.Post("/refresh", "auth.refresh", authController.Refresh)
	auth.Get("/verify-email", "auth.verify-email", authController.VerifyEmail)

	authed := auth.Group("", middleware.AuthMiddleware)
	authed.Post("/logout", "auth.logout", authController.Logout)
	authed.Get("/profile", "auth.profile", authController.Profile)
	authed.Put("/profile", "auth.profile.update", authController.UpdateProfile)
	authed.Get("/users", "auth.users", authController.Users, rbac.HasRole(admin))

	// Food listings.
	food := api.Group("/food", middleware.AuthMiddleware)
	food.Get("", "food.index", foodController.Index)
	food.Post("", "food.store", foodController.Store)
	food.Get("/available", "food.available", foodController.Available,
		rbac.HasRole(ngo, admin))
	food.Get("/dashboard-stats", "food.dashboard-stats", foodController.DashboardStats)
	food.Get("/{id}", "food.show", foodController.Show)
	food.Put("/{id}", "food.update", foodController.Update)
	food.Patch("/{id}", "food.patch", foodController.Update)
	food.Delete("/{id}", "food.destroy", foodController.Destroy)
	food.Post("/{id}/image", "food.image", foodController.UploadImage,
		rbac.HasRole(provider, admin))

	// Food requests.
	requests := api.Group("/requests", middleware.AuthMiddleware)
	requests.Get("", "requests.index", requestController.Index)
	requests.Post("", "requests.store", requestController.Store)
	requests.Get("/my-requests", "requests.mine", requestController.MyRequests,
		rbac.HasRole(ngo, admin))
	requests.Get("/for-my-food", "requests.for-my-food", requestController.ForMyFood,
		rbac.HasRole(provider, admin))
	requests.Post("/bulk-update", "requests.bulk-update", requestController.BulkUpdate,
		rbac.HasRole(admin))
	requests.Get("/{id}", "requests.show", requestController.Show)
	requests.Put("/{id}", "requests.update", requestController.Update)
	requests.Patch("/{id}", "requests.patch", requestController.Update)
	requests.Delete("/{id}", "requests.destroy", requestController.Destroy)

	// Notifications.
	notifications := api.Group("/notifications", middleware.AuthMiddleware)
	notifications.Get("", "notifications.index", notificationController.Index)
	notifications.Post("/{id}/read", "notifications.read", notificationController.MarkRead)
	notifications.Post("/read-all", "notifications.read-all", notificationController.MarkAllRead)

	// GraphQL read-only surface.
	api.Post("/graphql", "graphql", graphqlController.Handle, middleware.AuthMiddleware)

	// Realtime notification stream.
	r.Get("/ws/notifications", "ws.notifications",
		notificationController.Stream, middleware.AuthMiddleware)

	// Operational.
	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
}
