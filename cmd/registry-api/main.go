package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/parsuni/registry-api/api/swagger"
	"github.com/parsuni/registry-api/internal/handler"
	"github.com/parsuni/registry-api/internal/middleware"
	"github.com/parsuni/registry-api/internal/repository"
	"github.com/parsuni/registry-api/internal/service"
	"github.com/parsuni/registry-api/pkg/cache"
	"github.com/parsuni/registry-api/pkg/config"
	"github.com/parsuni/registry-api/pkg/database"
	"github.com/parsuni/registry-api/pkg/logger"
	corsmiddleware "github.com/parsuni/registry-api/pkg/middleware/cors"
	reqidmiddleware "github.com/parsuni/registry-api/pkg/middleware/requestid"
)

// @title University Registry API
// @version 0.1.0
// @description Student, teacher and course records with Persian-domain validation
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, list cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	courseRepo := repository.NewCourseRepository(db)

	allocator := service.NewTeacherIDAllocator(teacherRepo, metricsSvc, cfg.Allocator.MaxAttempts)

	studentSvc := service.NewStudentService(studentRepo, cacheRepo, metricsSvc, validate, logr, cfg.Cache.ListTTL)
	teacherSvc := service.NewTeacherService(teacherRepo, allocator, cacheRepo, metricsSvc, validate, logr, cfg.Cache.ListTTL)
	courseSvc := service.NewCourseService(courseRepo, teacherRepo, cacheRepo, metricsSvc, validate, logr, cfg.Cache.ListTTL)
	departmentSvc := service.NewDepartmentService()

	studentHandler := handler.NewStudentHandler(studentSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	departmentHandler := handler.NewDepartmentHandler(departmentSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/students", studentHandler.List)
		api.POST("/students", studentHandler.Create)
		api.GET("/students/:stid", studentHandler.Get)
		api.PUT("/students/:stid", studentHandler.Update)
		api.DELETE("/students/:stid", studentHandler.Delete)

		api.GET("/teachers", teacherHandler.List)
		api.POST("/teachers", teacherHandler.Create)
		api.GET("/teachers/:teacherId", teacherHandler.Get)
		api.PUT("/teachers/:teacherId", teacherHandler.Update)
		api.DELETE("/teachers/:teacherId", teacherHandler.Delete)

		api.GET("/courses", courseHandler.List)
		api.POST("/courses", courseHandler.Create)
		api.GET("/courses/:id", courseHandler.Get)
		api.PUT("/courses/:id", courseHandler.Update)
		api.DELETE("/courses/:id", courseHandler.Delete)

		api.GET("/departments", departmentHandler.List)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
