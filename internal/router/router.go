package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"emb_shop_v1_202601/internal/controller"
	"emb_shop_v1_202601/internal/middleware"
	"emb_shop_v1_202601/internal/model"
)

// Controllers 控制器集合
type Controllers struct {
	Auth     *controller.AuthController
	Invite   *controller.InviteController
	Category *controller.CategoryController
	Product  *controller.ProductController
	Discount *controller.DiscountController
}

// SetupRouter 注册所有路由
func SetupRouter(ctls *Controllers) *gin.Engine {
	r := gin.Default()

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API 路由组
	api := r.Group("/api")
	{
		// auth 认证组
		auth := api.Group("/auth")
		{
			// 公开入口
			auth.POST("/register", ctls.Auth.Register)
			auth.POST("/login", ctls.Auth.Login)
			auth.POST("/token/refresh", ctls.Auth.RefreshToken)
			auth.POST("/verify-otp", ctls.Auth.VerifyOTP)
			auth.POST("/resend-otp", ctls.Auth.ResendOTP)
			auth.POST("/forgot-password", ctls.Auth.ForgotPassword)
			auth.POST("/reset-password", ctls.Auth.ResetPassword)

			// 邀请接受入口对外公开 (凭 token)
			auth.POST("/invite/admin/accept", ctls.Invite.Accept)

			// 需要登录
			authed := auth.Group("", middleware.JWTAuth())
			{
				authed.GET("/profile", ctls.Auth.GetProfile)
				authed.PUT("/password", ctls.Auth.ChangePassword)

				// 邀请签发与审计仅限超管
				invite := authed.Group("/invite/admin", middleware.RequireSuperuser())
				{
					invite.POST("", ctls.Invite.Issue)
					invite.GET("", ctls.Invite.List)
				}
			}
		}

		// category 分类组：读公开，写仅管理员
		categories := api.Group("/categories")
		{
			categories.GET("", ctls.Category.List)

			adminOnly := categories.Group("", middleware.JWTAuth(), middleware.RequireRole(string(model.RoleAdmin)))
			{
				adminOnly.POST("", ctls.Category.Create)
				adminOnly.PUT("/:id", ctls.Category.Update)
				adminOnly.DELETE("/:id", ctls.Category.Delete)
			}
		}

		// product 商品组：读公开，写需登录 (角色/归属在服务层校验)
		products := api.Group("/products")
		{
			products.GET("", ctls.Product.List)
			products.GET("/:id", ctls.Product.GetDetail)

			authed := products.Group("", middleware.JWTAuth())
			{
				authed.POST("", ctls.Product.Create)
				authed.PUT("/:id", ctls.Product.Update)
				authed.DELETE("/:id", ctls.Product.Delete)
			}
		}

		// discount 折扣组：全部需登录
		discounts := api.Group("/discounts", middleware.JWTAuth())
		{
			discounts.GET("", ctls.Discount.List)
			discounts.POST("", ctls.Discount.Create)
			discounts.PUT("/:id", ctls.Discount.Update)
			discounts.DELETE("/:id", ctls.Discount.Delete)
		}
	}

	return r
}
