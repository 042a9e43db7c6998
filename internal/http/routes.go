package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/api/ping", h.Ping)
	r.GET("/count-videos", h.CountVideos)

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", h.RateLimit(), h.Signup)
		auth.POST("/login", h.RateLimit(), h.Login)
		auth.POST("/refresh-token", h.RefreshToken)
		auth.GET("/profile", AuthJWT(h.JWTSecret), h.Profile)
		auth.GET("/protected", AuthJWT(h.JWTSecret), h.Protected)
		auth.GET("/admin", AuthJWT(h.JWTSecret), RequireAdmin(), h.Admin)
		auth.GET("/count", h.CountUsers)
		auth.GET("/users", h.ListUsers)
	}

	langs := r.Group("/api/languages")
	{
		langs.GET("", h.ListLanguages)
		langs.POST("", h.CreateLanguage)
		langs.GET("/:id", h.GetLanguageBySlug)
		langs.GET("/:id/categories", h.ListCategories)
		langs.POST("/:id/categories", h.AddCategory)
		langs.POST("/:id/categories/:categoryId/videos", h.SetCategoryVideo)
	}

	r.GET("/api/categories/:id", h.GetCategory)
	r.PUT("/api/categories/:id", h.UpdateCategory)

	r.POST("/api/feedback", h.CreateFeedback)

	r.POST("/api/visits", h.RecordVisit)
	r.GET("/api/visits", h.ListVisits)

	return r
}
