package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/fieldnote/fieldnote-api/internal/config"
	"github.com/fieldnote/fieldnote-api/internal/constants"
	"github.com/fieldnote/fieldnote-api/internal/database"
	"github.com/fieldnote/fieldnote-api/internal/handlers"
	"github.com/fieldnote/fieldnote-api/internal/mailer"
	"github.com/fieldnote/fieldnote-api/internal/middleware"
	"github.com/fieldnote/fieldnote-api/internal/pdf"
	"github.com/fieldnote/fieldnote-api/internal/repository"
	"github.com/fieldnote/fieldnote-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Invitation mail goes through SMTP when configured
	var mail mailer.Mailer = mailer.Noop{}
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	}

	renderer, err := pdf.NewRenderer(cfg.WkhtmltopdfPath)
	if err != nil {
		log.Fatalf("Failed to initialize pdf renderer: %v", err)
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	memoRepo := repository.NewMemoRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	invitationService := services.NewInvitationService(invitationRepo, userRepo, mail, cfg.BaseURL)
	memberService := services.NewMemberService(userRepo)
	customerService := services.NewCustomerService(customerRepo)
	projectService := services.NewProjectService(projectRepo, customerRepo, taskRepo, memoRepo, checklistRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	ganttService := services.NewGanttService(taskRepo)
	memoService := services.NewMemoService(memoRepo, projectRepo, userRepo)
	checklistService := services.NewChecklistService(checklistRepo, projectRepo)
	dashboardService := services.NewDashboardService(projectRepo, taskRepo, memoRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	memberHandler := handlers.NewMemberHandler(memberService, invitationService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	ganttHandler := handlers.NewGanttHandler(projectService, ganttService)
	memoHandler := handlers.NewMemoHandler(memoService)
	checklistHandler := handlers.NewChecklistHandler(checklistService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	pdfHandler := handlers.NewPDFHandler(projectService, renderer)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Public routes
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.GET("/invitation/accept/:token", memberHandler.ShowInvitation)
	r.POST("/invitation/accept/:token", memberHandler.AcceptInvitation)

	// Authenticated routes. Every company resource requires membership.
	// Project, customer, and member management additionally require the
	// staff role; task, memo, and checklist writes are open to any member.
	authed := r.Group("")
	authed.Use(middleware.RequireAuth(), middleware.LoadCurrentUser())
	{
		authed.GET("/me", authHandler.GetCurrentUser)

		member := authed.Group("")
		member.Use(middleware.RequireCompany())
		{
			member.GET("/dashboard", dashboardHandler.Summary)

			member.GET("/projects", projectHandler.List)
			member.GET("/projects/:id", projectHandler.Get)
			member.GET("/projects/:id/tasks.json", ganttHandler.ExportTasks)
			member.GET("/projects/:id/task-candidates", taskHandler.DependencyCandidates)
			member.GET("/projects/:id/pdf", pdfHandler.ProjectSummary)
			member.POST("/projects/:id/gantt_pdf", pdfHandler.GanttChart)

			member.GET("/customers", customerHandler.List)
			member.GET("/customers/:id", customerHandler.Get)

			member.POST("/projects/:id/task/create", taskHandler.Create)
			member.GET("/task/:id", taskHandler.Get)
			member.POST("/task/:id/edit", taskHandler.Update)
			member.POST("/task/:id/delete", taskHandler.Delete)

			member.POST("/projects/:id/memos/create", memoHandler.Create)
			member.POST("/memos/:id/edit", memoHandler.Update)

			member.POST("/projects/:id/checklists/create", checklistHandler.Create)
			member.POST("/checklist/:id/edit", checklistHandler.Update)
			member.POST("/checklist/:id/item/create", checklistHandler.CreateItem)
			member.POST("/item/:id/edit", checklistHandler.UpdateItem)
			member.POST("/item/:id/toggle", checklistHandler.ToggleItem)

			staff := member.Group("")
			staff.Use(middleware.RequireStaff())
			{
				staff.POST("/projects/create", projectHandler.Create)
				staff.POST("/projects/:id/edit", projectHandler.Update)
				staff.POST("/projects/:id/delete", projectHandler.Delete)

				staff.POST("/customers/create", customerHandler.Create)
				staff.POST("/customers/:id/edit", customerHandler.Update)
				staff.POST("/customers/:id/delete", customerHandler.Delete)

				staff.GET("/members", memberHandler.List)
				staff.POST("/members", memberHandler.Invite)
				staff.POST("/members/:id/delete", memberHandler.Remove)
				staff.POST("/invitation/:id/delete", memberHandler.DeleteInvitation)
			}
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
