package routes

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/inkpress/config"
	"github.com/inkpress/inkpress/controllers"
	"github.com/inkpress/inkpress/middleware"
	"github.com/inkpress/inkpress/policy"
	"github.com/inkpress/inkpress/session"
	"github.com/inkpress/inkpress/store"
	"github.com/inkpress/inkpress/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(cfg config.AppConfig, users store.UserStore, posts store.PostStore, sessions *session.Manager) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.RequestLogger())
	r.Use(utils.Recovery())
	r.Use(middleware.SessionResolver(sessions, cfg.CookieName))

	r.LoadHTMLGlob(cfg.TemplateGlob)
	r.Static("/static", cfg.StaticDir)

	access := policy.Policy{EnforceOwnership: cfg.OwnershipEnforced}
	authController := controllers.NewAuthController(users, sessions, cfg)
	postController := controllers.NewPostController(posts, access)

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
	})

	r.GET("/", postController.Home)

	credential := r.Group("")
	credential.Use(middleware.RateLimitMiddleware())
	credential.POST("/register", authController.Register)
	credential.POST("/login", authController.Login)

	r.GET("/register", authController.RegisterForm)
	r.GET("/login", authController.LoginForm)
	r.GET("/logout", authController.Logout)

	r.GET("/create", postController.CreateForm)
	r.POST("/add-blog", middleware.LoginRequired(), postController.Create)
	r.GET("/blogs/:id", postController.Show)
	r.GET("/edit-blog/:id", postController.EditForm)
	r.POST("/update-blog/:id", postController.Update)
	r.GET("/delete-blog/:id", postController.Delete)

	r.NoRoute(utils.NotFound)

	return r
}
