package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"emb_shop_v1_202601/internal/controller"
	"emb_shop_v1_202601/internal/middleware"
	"emb_shop_v1_202601/internal/model"
	"emb_shop_v1_202601/internal/repository"
	"emb_shop_v1_202601/internal/router"
	"emb_shop_v1_202601/internal/service"
	"emb_shop_v1_202601/internal/task"
	"emb_shop_v1_202601/pkg/database"
	"emb_shop_v1_202601/pkg/mailer"
)

// @title EMB Shop API
// @version 1.0
// @description 账户体系 + 商品目录 + 折扣引擎
// @BasePath /api
func main() {
	// 本地开发加载 .env，线上环境变量直接注入
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 1. JWT 配置
	initJWT()

	// 2. 初始化数据库
	db := initDatabase()

	// 3. 初始化依赖
	deps := initDependencies(db)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 6. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User       repository.UserRepository
	Invitation repository.InvitationRepository
	Category   repository.CategoryRepository
	Product    repository.ProductRepository
	Discount   repository.DiscountRepository
}

// Services 服务集合
type Services struct {
	OTP      *service.OTPService
	Auth     *service.AuthService
	Invite   *service.InviteService
	Category *service.CategoryService
	Product  *service.ProductService
	Discount *service.DiscountService
}

// ==================== 初始化函数 ====================

// initJWT 从环境变量覆盖 JWT 默认配置
func initJWT() {
	cfg := middleware.DefaultJWTConfig()
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.SecretKey = secret
	}
	middleware.SetJWTConfig(cfg)
}

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "emb_shop"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_SSLMODE", "disable"),
	)

	return database.InitDB(dsn,
		// Account
		&model.User{}, &model.Invitation{},
		// Catalog
		&model.Category{}, &model.Product{}, &model.Discount{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:       repository.NewUserRepository(db),
		Invitation: repository.NewInvitationRepository(db),
		Category:   repository.NewCategoryRepository(db),
		Product:    repository.NewProductRepository(db),
		Discount:   repository.NewDiscountRepository(db),
	}

	// -------- 邮件发送器 --------
	sender := mailer.NewBrevoMailer(&mailer.BrevoConfig{
		APIKey:      getEnv("BREVO_API_KEY", ""),
		SenderName:  getEnv("MAIL_SENDER_NAME", "EMB Shop"),
		SenderEmail: getEnv("MAIL_SENDER_EMAIL", "no-reply@embshop.dev"),
	})

	// -------- 业务服务 --------
	services := &Services{}
	services.OTP = service.NewOTPService(repos.User, sender)
	services.Auth = service.NewAuthService(repos.User, services.OTP)
	services.Invite = service.NewInviteService(repos.User, repos.Invitation, sender)
	services.Category = service.NewCategoryService(repos.Category, repos.Product)
	services.Product = service.NewProductService(repos.Product, repos.Category, repos.User)
	services.Discount = service.NewDiscountService(repos.Discount, repos.Product, repos.User)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:     controller.NewAuthController(services.Auth),
		Invite:   controller.NewInviteController(services.Invite),
		Category: controller.NewCategoryController(services.Category),
		Product:  controller.NewProductController(services.Product),
		Discount: controller.NewDiscountController(services.Discount),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 过期折扣清理
	discountTask := task.NewDiscountTask(deps.Repos.Discount)
	discountTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
