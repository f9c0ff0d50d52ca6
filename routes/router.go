package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yatube/yatube/config"
	"github.com/yatube/yatube/controllers"
	"github.com/yatube/yatube/middleware"
	"github.com/yatube/yatube/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
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
	// Replace the default console logger with a file-based zap access log.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
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

	r.Static("/static/uploads", cfg.UploadsDir)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	followController := controllers.NewFollowController(db)
	groupController := controllers.NewGroupController(db)

	// Public listing and detail views. Profile resolves the requester's
	// identity when a token is present to compute the following flag.
	r.GET("/", postController.Index)
	r.GET("/group/:slug/", postController.GroupPosts)
	r.GET("/profile/:username/", middleware.AuthOptional(), postController.Profile)
	r.GET("/posts/:id/", postController.PostDetail)

	// Authenticated mutations. Follow/unfollow accept GET as well, the way
	// the original exposed them as plain links.
	authed := r.Group("", middleware.AuthRequired())
	authed.POST("/create/", postController.CreatePost)
	authed.POST("/posts/:id/edit/", postController.EditPost)
	authed.POST("/posts/:id/comment/", postController.AddComment)
	authed.GET("/follow/", followController.Feed)
	authed.GET("/profile/:username/follow/", followController.Follow)
	authed.POST("/profile/:username/follow/", followController.Follow)
	authed.GET("/profile/:username/unfollow/", followController.Unfollow)
	authed.POST("/profile/:username/unfollow/", followController.Unfollow)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	api.GET("/posts", postController.Index)
	api.GET("/groups", groupController.ListGroups)

	protected := api.Group("", middleware.AuthRequired())
	protected.POST("/upload", postController.UploadImage)
	protected.POST("/groups", groupController.CreateGroup)
	protected.DELETE("/groups/:slug", groupController.DeleteGroup)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
