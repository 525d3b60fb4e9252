package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pulse-go/internal/api/handler"
	"pulse-go/internal/api/middleware"
	"pulse-go/internal/api/router"
	"pulse-go/internal/config"
	"pulse-go/internal/infra/database"
	infraES "pulse-go/internal/infra/elasticsearch"
	infraKafka "pulse-go/internal/infra/kafka"
	infraMinio "pulse-go/internal/infra/minio"
	infraRedis "pulse-go/internal/infra/redis"
	"pulse-go/internal/repository"
	"pulse-go/internal/service"
	"pulse-go/pkg/logger"
	"pulse-go/pkg/utils"

	_ "pulse-go/api/openapi"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// @title Pulse API
// @version 1.0
// @description 图文社区 API 服务：帖子、评论、点赞、关注与会话
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@pulse.dev

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database, cfg.App.Mode); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(database.Get()); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化Redis
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	// 初始化MinIO
	if err := infraMinio.Init(&cfg.MinIO); err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	// 初始化Kafka生产者
	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Fatal("Failed to init kafka producer", zap.Error(err))
	}
	defer infraKafka.CloseProducer()

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	// 初始化 Elasticsearch（可选，失败则检索降级到 DB）
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
	} else {
		defer infraES.Close()
		if err := infraES.InitIndexes(cfg.Elasticsearch.PostsIndex()); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
		postRepo.WithSearcher(infraES.NewPostIndex(cfg.Elasticsearch.PostsIndex()), cfg.Feed.SearchMaxCandidate)
	}

	media := infraMinio.NewMediaStore(infraMinio.Get(), &cfg.MinIO)
	events := infraKafka.NewPostEventPublisher(cfg.Kafka.Topic("post_events", "pulse.post.events"))
	viewGate := infraRedis.NewViewGate(infraRedis.Get(), cfg.Feed.ViewDedupWindow())

	accessSigner := utils.NewTokenSigner(cfg.JWT.AccessSecret, cfg.JWT.AccessExpireDuration(), cfg.App.Name, utils.TokenTypeAccess)
	refreshSigner := utils.NewTokenSigner(cfg.JWT.RefreshSecret, cfg.JWT.RefreshExpireDuration(), cfg.App.Name, utils.TokenTypeRefresh)

	sessionService := service.NewSessionService(userRepo, utils.NewPasswordHasher(bcrypt.DefaultCost), accessSigner, refreshSigner)
	viewService := service.NewViewService(db, postRepo, userRepo, likeRepo, cfg.Feed.DiscoverySize)
	toggleService := service.NewToggleService(
		repository.NewPostLikeStore(db),
		repository.NewCommentLikeStore(db),
		repository.NewFollowStore(db),
	)
	postService := service.NewPostService(postRepo, commentRepo, likeRepo, userRepo, media, events, viewGate, cfg.Feed.WatchHistoryLimit)
	commentService := service.NewCommentService(commentRepo, likeRepo, viewService)
	userService := service.NewUserService(userRepo, media)

	sessionHandler := handler.NewSessionHandler(sessionService)
	postHandler := handler.NewPostHandler(postService, viewService, commentService, toggleService)
	commentHandler := handler.NewCommentHandler(commentService, toggleService)
	userHandler := handler.NewUserHandler(userService, viewService, toggleService)

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(otelgin.Middleware(cfg.App.Name))
	r.Use(middleware.Metrics())
	r.Use(middleware.Logger())
	r.Use(middleware.Timeout(cfg.App.RequestTimeoutDuration()))

	// 注册基础路由
	r.GET("/healthz", healthCheckHandler)
	r.GET("/", rootHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册业务路由
	router.Setup(r, sessionService, sessionHandler, postHandler, commentHandler, userHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
		zap.String("minio", cfg.MinIO.Endpoint),
		zap.Strings("kafka", cfg.Kafka.Brokers),
	)

	// 启动HTTP服务器
	logger.Info("Server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// healthCheckHandler 健康检查：数据库不可用为 degraded，Redis 与检索只报告状态
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	components := gin.H{
		"database": probe(database.Ping(ctx)),
		"redis":    probe(infraRedis.Ping(ctx)),
		"search":   "disabled",
	}
	if infraES.Enabled() {
		components["search"] = probe(infraES.Ping(ctx))
	}

	status, code := "ok", http.StatusOK
	if components["database"] != "ok" {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().Format(time.RFC3339),
		"service":    cfg.App.Name,
		"version":    cfg.App.Version,
	})
}

func probe(err error) string {
	if err != nil {
		return "down"
	}
	return "ok"
}

// rootHandler 根路径处理器
func rootHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome to %s API", cfg.App.Name),
		"project": cfg.App.Name,
		"version": cfg.App.Version,
		"mode":    cfg.App.Mode,
		"docs":    fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.App.Port),
	})
}
