package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/funval/hs-dashboard/internal/funval"
	"github.com/funval/hs-dashboard/internal/handler"
	"github.com/funval/hs-dashboard/internal/metrics"
	"github.com/funval/hs-dashboard/internal/service"
	"github.com/funval/hs-dashboard/internal/session"
	"github.com/funval/hs-dashboard/pkg/cache"
	"github.com/funval/hs-dashboard/pkg/config"
	"github.com/funval/hs-dashboard/pkg/export"
	"github.com/funval/hs-dashboard/pkg/logger"
	reqidmiddleware "github.com/funval/hs-dashboard/pkg/middleware/requestid"
)

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

	rdb, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()
	store := session.NewStore(rdb, cfg.Session)
	client := funval.NewClient(cfg.Backend, logr, m)
	validate := validator.New()

	pageSize := cfg.Listing.PageSize
	authSvc := service.NewAuthService(client, validate, logr)
	userSvc := service.NewUserService(client, validate, logr, pageSize)
	categorySvc := service.NewCategoryService(client, validate, logr, pageSize)
	schoolSvc := service.NewSchoolService(client, validate, logr, pageSize)
	studentSvc := service.NewStudentService(client, export.NewStudentReport(), logr, pageSize)
	recordSvc := service.NewRecordService(client, validate, logr, cfg.Uploads, pageSize)
	roleSvc := service.NewRoleService(client, logr, pageSize)

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc, store, logr),
		Users:      handler.NewUserHandler(userSvc, roleSvc, store),
		Categories: handler.NewCategoryHandler(categorySvc, store),
		Schools:    handler.NewSchoolHandler(schoolSvc, store),
		Services:   handler.NewServiceHandler(recordSvc, categorySvc, store),
		Students:   handler.NewStudentHandler(studentSvc, store),
		Roles:      handler.NewRoleHandler(roleSvc, store),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(m.GinMiddleware())
	r.LoadHTMLGlob("web/templates/*.tmpl")

	handler.Register(r, handlers, handler.RouterDeps{
		Store:          store,
		Logger:         logr,
		MetricsHandler: m.Handler(),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("dashboard starting", "addr", addr, "env", cfg.Env, "backend", cfg.Backend.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
