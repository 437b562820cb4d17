package main

import (
	"context"
	"flag"
	"os"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/gctucker/cams/internal/config"
	"github.com/gctucker/cams/internal/domain"
	"github.com/gctucker/cams/internal/infrastructure/database"
	"github.com/gctucker/cams/internal/infrastructure/repository"
	"github.com/gctucker/cams/internal/interface/rest"
	restmw "github.com/gctucker/cams/internal/interface/rest/middleware"
	"github.com/gctucker/cams/internal/logger"
	"github.com/gctucker/cams/internal/metrics"
	"github.com/gctucker/cams/internal/service"
	"github.com/gctucker/cams/internal/telemetry"
	"github.com/gctucker/cams/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.Init(conf.Server.LogEnv)
	defer log.Sync()

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	if err := database.MigratePostgres(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, "", conf.Server.RedisDB)

	var mc *memcache.Client
	if conf.Server.MemcachedAddr != "" {
		mc = database.NewMemcached(conf.Server.MemcachedAddr)
	}

	if conf.Server.EnableTrace {
		shutdown, err := telemetry.Setup(context.Background(), conf.Server.TraceEndpoint)
		if err != nil {
			log.Fatal("failed to set up tracing", zap.Error(err))
		}
		defer shutdown(context.Background())
	}

	historyFile, err := os.OpenFile(conf.History.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatal("failed to open history file", zap.Error(err))
	}
	defer historyFile.Close()

	contactableRepo := repository.NewContactableRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	contactRepo := repository.NewContactRepository(db)
	fairRepo := repository.NewFairRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	eventRepo := repository.NewEventRepository(db)

	pins := usecase.NewPinUsecase[domain.Group](repository.NewGroupPinRepository(db))

	history := service.NewHistoryService(log, historyFile, rdb)
	parser := service.NewHistoryParser()

	handler := rest.NewHandler(
		usecase.NewContactableUsecase(contactableRepo),
		usecase.NewContactResolver(contactableRepo, memberRepo, contactRepo, groupRepo),
		usecase.NewFairUsecase(fairRepo),
		usecase.NewGroupUsecase(groupRepo, fairRepo, pins),
		usecase.NewInvoiceUsecase(invoiceRepo),
		usecase.NewEventUsecase(eventRepo),
		contactRepo,
		history,
		parser,
		conf.History.FilePath,
		mc,
		rdb,
	)

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(restmw.RequestID)
	e.Use(logger.Middleware(log))
	e.Use(metrics.Middleware)
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("cams"))
	}

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	handler.RegisterRoutes(e)

	log.Info("starting server", zap.String("listen", conf.Server.Listen))
	e.Logger.Fatal(e.Start(conf.Server.Listen))
}
