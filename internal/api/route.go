package api

import (
	"SellerLens/internal/api/middleware"
	"SellerLens/internal/pkg/consts"
	"SellerLens/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		keywordGroup := apiGroup.Group("/keywords")
		{
			keywordGroup.GET("/search", group.KeywordHandler.Search)
		}

		categoryGroup := apiGroup.Group("/categories")
		{
			categoryGroup.GET("/tree", group.CategoryHandler.GetTree)
			categoryGroup.GET("/typed/:type", group.CategoryHandler.GetTypedCategories)
		}

		periodGroup := apiGroup.Group("/periods")
		{
			periodGroup.GET("", group.UploadHandler.ListPeriodOptions)
		}

		subscriberGroup := apiGroup.Group("/subscribers")
		{
			subscriberGroup.POST("", group.SubscriberHandler.Subscribe)
			subscriberGroup.DELETE("", group.SubscriberHandler.Unsubscribe)
		}

		activityGroup := apiGroup.Group("/activity")
		activityGroup.Use(middleware.AuthOptionalMiddleware())
		{
			activityGroup.POST("/track", group.ActivityHandler.Track)
		}

		optimizerGroup := apiGroup.Group("/optimizer")
		optimizerGroup.Use(middleware.AuthMiddleware())
		{
			optimizerGroup.GET("/compose", group.OptimizerHandler.Compose)
			optimizerGroup.GET("/sessions", group.OptimizerHandler.Sessions)
			optimizerGroup.GET("/history/:session_id", group.OptimizerHandler.History)
		}

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
			}
		}

		// 需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin))
		{
			adminGroup.PUT("/uploads/:type/:period", group.UploadHandler.ReplacePeriod)
			adminGroup.DELETE("/uploads/:type/:period", group.UploadHandler.DeletePeriod)
			adminGroup.GET("/uploads", group.UploadHandler.ListFiles)
			adminGroup.GET("/periods", group.UploadHandler.ListPeriods)

			adminGroup.PUT("/keywords/:keyword_id/scores", group.KeywordHandler.UpdateScores)
			adminGroup.DELETE("/keywords/:keyword_id", group.KeywordHandler.Deactivate)

			adminGroup.GET("/subscribers", group.SubscriberHandler.List)
			adminGroup.GET("/activity/summary", group.ActivityHandler.Summary)
		}
	}

	return r
}
