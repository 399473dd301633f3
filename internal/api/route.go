package api

import (
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
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

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.AuthHandler.Register)
			authGroup.POST("/login", group.AuthHandler.Login)
			authGroup.POST("/refresh", group.AuthHandler.Refresh)
			authGroup.POST("/otp/send", group.AuthHandler.SendOtp)
			authGroup.POST("/otp/verify", group.AuthHandler.VerifyOtp)
			authGroup.PUT("/password/reset", group.AuthHandler.ResetPassword)

			loginGroup := authGroup.Group("")
			loginGroup.Use(middleware.AuthMiddleware())
			{
				loginGroup.POST("/logout", group.AuthHandler.Logout)
			}
		}

		memberGroup := apiGroup.Group("/members")
		{
			authOptGroup := memberGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/:member_id", group.MemberHandler.GetProfile)
				authOptGroup.GET("/:member_id/posts", group.PostHandler.ListMemberPosts)
				authOptGroup.GET("/:member_id/followers", group.FollowHandler.GetFollowers)
				authOptGroup.GET("/:member_id/following", group.FollowHandler.GetFollowing)
			}

			authGroup := memberGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/me", group.MemberHandler.GetMe)
				authGroup.PUT("/me", group.MemberHandler.UpdateMe)
				authGroup.PUT("/me/password", group.MemberHandler.ChangePassword)
				authGroup.POST("/:member_id/follow", group.FollowHandler.Follow)
				authGroup.DELETE("/:member_id/follow", group.FollowHandler.Unfollow)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.PostHandler.ListPosts)
				authOptGroup.GET("/detail/:post_id", group.PostHandler.GetPostDetail)
				authOptGroup.GET("/hashtag/:name", group.PostHandler.ListHashtagPosts)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.POST("/:post_id/like", group.PostHandler.ToggleLike)
				authGroup.GET("/liked", group.PostHandler.GetLikedPosts)
				authGroup.POST("/image", group.ImageHandler.Upload)
			}
		}

		metricsGroup := apiGroup.Group("/metrics")
		{
			metricsGroup.Use(middleware.AuthMiddleware())
			{
				metricsGroup.GET("/post/:post_id", group.PostMetricHandler.GetTrend)
			}
		}
	}

	return r
}
