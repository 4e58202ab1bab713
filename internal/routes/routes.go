package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garvthakre/kf12/internal/authz"
	"github.com/garvthakre/kf12/internal/handlers"
	"github.com/garvthakre/kf12/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	secret []byte,
	userResolver middleware.UserResolver,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	contactHandler *handlers.ContactHandler,
	companyHandler *handlers.CompanyHandler,
	leadHandler *handlers.LeadHandler,
	opportunityHandler *handlers.OpportunityHandler,
	pipelineHandler *handlers.PipelineHandler,
	taskHandler *handlers.TaskHandler,
	interactionHandler *handlers.InteractionHandler,
	activityHandler *handlers.ActivityHandler,
	webhookHandler *handlers.WebhookHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/auth/token", authHandler.Token)
	r.POST("/webhooks/fairex/lead-captured", webhookHandler.LeadCaptured)

	// ---- protected
	r.Use(middleware.AuthMiddleware(secret, userResolver))

	r.GET("/auth/me", authHandler.Me)

	// USERS (Admin)
	users := r.Group("/users")
	{
		users.POST("/", middleware.RequireRoles(authz.RoleAdmin), userHandler.Create)
		users.PATCH("/:id", middleware.RequireRoles(authz.RoleAdmin), userHandler.Update)
		users.GET("/", userHandler.List)
		users.GET("/:id", userHandler.GetByID)
	}

	// CONTACTS
	contacts := r.Group("/contacts")
	{
		contacts.POST("/", contactHandler.Create)
		contacts.GET("/", contactHandler.List)
		contacts.GET("/:id", contactHandler.GetByID)
		contacts.PATCH("/:id", contactHandler.Update)
		contacts.DELETE("/:id", contactHandler.Delete)
	}

	// COMPANIES
	companies := r.Group("/companies")
	{
		companies.POST("/", companyHandler.Create)
		companies.GET("/", companyHandler.List)
		companies.GET("/:id", companyHandler.GetByID)
		companies.PATCH("/:id", companyHandler.Update)
		companies.DELETE("/:id", companyHandler.Delete)
	}

	// LEADS
	leads := r.Group("/leads")
	{
		leads.POST("/", leadHandler.Create)
		leads.GET("/", leadHandler.List)
		leads.GET("/stats", leadHandler.Stats)
		leads.GET("/:id", leadHandler.GetByID)
		leads.PATCH("/:id", leadHandler.Update)
		leads.DELETE("/:id", leadHandler.Delete)
		leads.POST("/:id/status", leadHandler.UpdateStatus)
		leads.POST("/:id/assign", leadHandler.Assign)
		leads.POST("/:id/tags", leadHandler.AddTag)
		leads.DELETE("/:id/tags/:tagName", leadHandler.RemoveTag)
	}

	// OPPORTUNITIES
	opportunities := r.Group("/opportunities")
	{
		opportunities.POST("/", opportunityHandler.Create)
		opportunities.GET("/", opportunityHandler.List)
		opportunities.GET("/stats", opportunityHandler.Stats)
		opportunities.GET("/:id", opportunityHandler.GetByID)
		opportunities.PATCH("/:id", opportunityHandler.Update)
		opportunities.DELETE("/:id", opportunityHandler.Delete)
	}

	// PIPELINES (правка — admin/manager)
	pipelines := r.Group("/pipelines")
	{
		pipelines.GET("/", pipelineHandler.List)
		pipelines.GET("/:id", pipelineHandler.GetByID)

		manage := pipelines.Group("", middleware.RequireRoles(authz.RoleAdmin, authz.RoleManager))
		{
			manage.POST("/", pipelineHandler.Create)
			manage.PATCH("/:id", pipelineHandler.Rename)
			manage.DELETE("/:id", pipelineHandler.Delete)
			manage.POST("/:id/stages", pipelineHandler.AddStage)
			manage.DELETE("/:id/stages/:stageId", pipelineHandler.DeleteStage)
		}
	}

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.POST("/", taskHandler.Create)
		tasks.GET("/", taskHandler.List)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PATCH("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
	}

	// INTERACTIONS
	interactions := r.Group("/interactions")
	{
		interactions.POST("/", interactionHandler.Create)
		interactions.GET("/", interactionHandler.List)
		interactions.GET("/:id", interactionHandler.GetByID)
		interactions.DELETE("/:id", interactionHandler.Delete)
	}

	// ACTIVITY LOG (read-only, admin/manager)
	r.GET("/activity", middleware.RequireRoles(authz.RoleAdmin, authz.RoleManager), activityHandler.List)

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/summary", reportHandler.Summary)
		reports.GET("/summary/pdf", reportHandler.SummaryPDF)
	}

	return r
}
