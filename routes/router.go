package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/karmakarsharmila40/idea-publishing-platform/config"
	"github.com/karmakarsharmila40/idea-publishing-platform/controllers"
	"github.com/karmakarsharmila40/idea-publishing-platform/middleware"
	"github.com/karmakarsharmila40/idea-publishing-platform/repositories"
	"github.com/karmakarsharmila40/idea-publishing-platform/utils"
)

// SetupRouter wires routes, middlewares and controllers.
func SetupRouter(db *mongo.Database) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.AuthHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/static", "./static")
	r.GET("/", func(ctx *gin.Context) {
		ctx.File("./static/index.html")
	})
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	userRepo := repositories.NewUserRepository(db)
	ideaRepo := repositories.NewIdeaRepository(db)

	authController := controllers.NewAuthController(userRepo)
	ideaController := controllers.NewIdeaController(ideaRepo)
	commentController := controllers.NewCommentController(ideaRepo)
	fileController := controllers.NewFileController(ideaRepo)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/user", middleware.AuthRequired(), authController.GetUser)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)

	api.GET("/ideas", ideaController.ListIdeas)
	api.GET("/ideas/:id", ideaController.GetIdea)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.POST("/ideas", ideaController.CreateIdea)
	protected.PUT("/ideas/:id", ideaController.UpdateIdea)
	protected.DELETE("/ideas/:id", ideaController.DeleteIdea)
	protected.POST("/ideas/:id/vote", ideaController.VoteIdea)
	protected.POST("/comments/:ideaId", commentController.AddComment)
	protected.DELETE("/comments/:ideaId/:commentId", commentController.DeleteComment)
	protected.POST("/files/:ideaId", fileController.UploadFile)
	protected.DELETE("/files/:ideaId/:fileId", fileController.DeleteFile)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			ctx.JSON(http.StatusNotFound, gin.H{"msg": "API route not found"})
			return
		}
		if strings.HasPrefix(path, "/static/") {
			ctx.JSON(http.StatusNotFound, gin.H{"msg": "Static asset not found"})
			return
		}
		// Everything else falls back to the SPA entry point.
		ctx.Status(http.StatusOK)
		ctx.File("./static/index.html")
	})

	return r
}
