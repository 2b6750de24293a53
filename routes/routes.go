package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Raihanhn/event-saas/config"
	"github.com/Raihanhn/event-saas/handlers"
	"github.com/Raihanhn/event-saas/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	health := handlers.NewHealthHandler()
	pub := handlers.NewPublicHandler()
	ev := handlers.NewEventHandler()
	tsk := handlers.NewTaskHandler()
	cal := handlers.NewCalendarHandler()
	bud := handlers.NewBudgetHandler()
	ven := handlers.NewVendorHandler()
	cli := handlers.NewClientHandler(cfg.ClientBaseURL)
	team := handlers.NewTeamHandler()
	tpl := handlers.NewTemplateHandler()
	prof := handlers.NewProfileHandler()
	dash := handlers.NewDashboardHandler()
	org := handlers.NewOrganizationHandler()

	// ===== Public =====
	e.GET("/healthz", health.Check)
	e.POST("/auth/signup", auth.Signup)
	e.POST("/auth/signin", auth.Signin)
	e.GET("/public/events/:id", pub.EventView)

	// ===== Authenticated API =====
	api := e.Group("/api", middlewares.RequireAuth(cfg.JWTSecret))

	api.GET("/auth/me", auth.Me)

	api.GET("/events", ev.List)
	api.POST("/events", ev.Create)
	api.GET("/events/:id", ev.Get)
	api.GET("/events/:id/details", ev.Details)
	api.PUT("/events/:id", ev.Update)
	api.DELETE("/events/:id", ev.Delete)

	api.GET("/tasks", tsk.List)
	api.POST("/tasks", tsk.Create)
	api.PUT("/tasks/:id", tsk.Update)
	api.DELETE("/tasks/:id", tsk.Delete)
	api.PATCH("/tasks/:id/reschedule", tsk.Reschedule)

	api.GET("/calendar/items", cal.Items)

	api.GET("/budgets", bud.List)
	api.POST("/budgets", bud.Create)
	api.PATCH("/budgets/:id", bud.Update)
	api.DELETE("/budgets/:id", bud.Delete)
	api.POST("/budgets/:id/approve", bud.Approve)
	api.POST("/budgets/:id/mark-paid", bud.MarkPaid)
	api.GET("/budgets/summary", bud.Summary)
	api.GET("/budgets/vendor-overview", bud.VendorOverview)
	api.GET("/budgets/chart", bud.Chart)

	api.GET("/vendors", ven.List)
	api.POST("/vendors", ven.Create)
	api.PUT("/vendors/:id", ven.Update)
	api.DELETE("/vendors/:id", ven.Delete)

	api.GET("/clients", cli.List)
	api.POST("/clients", cli.Create)
	api.PUT("/clients/:id", cli.Update)
	api.DELETE("/clients/:id", cli.Delete)
	api.GET("/clients/:id/assigned-events", cli.AssignedEvents)
	api.POST("/clients/:id/share", cli.Share)

	api.GET("/templates", tpl.List)
	api.POST("/templates", tpl.Create)
	api.DELETE("/templates/:id", tpl.Delete)
	api.POST("/templates/seed", tpl.Seed)

	api.PUT("/profile", prof.Update)
	api.PUT("/profile/password", prof.ChangePassword)
	api.PUT("/profile/theme", prof.SetTheme)

	api.GET("/dashboard/counts", dash.Counts)

	api.GET("/organization", org.Get)
	api.PUT("/organization", org.Update, middlewares.RequireRole("admin"))

	// ===== Admin only =====
	admin := api.Group("/teams", middlewares.RequireRole("admin"))
	admin.GET("", team.List)
	admin.POST("", team.Create)
	admin.PATCH("/:id/permission", team.SetPermission)
	admin.DELETE("/:id", team.Delete)
}
