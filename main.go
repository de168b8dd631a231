package main

import (
	"log"
	"time"

	"github.com/entryx/ticketing/config"
	"github.com/entryx/ticketing/internal/auth"
	"github.com/entryx/ticketing/internal/handler"
	"github.com/entryx/ticketing/internal/ledger"
	"github.com/entryx/ticketing/internal/middleware"
	"github.com/entryx/ticketing/internal/repository"
	"github.com/entryx/ticketing/internal/service"
	"github.com/entryx/ticketing/pkg/cache"
	"github.com/entryx/ticketing/pkg/database"
	"github.com/entryx/ticketing/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	ldg, err := ledger.NewHorizonLedger(cfg.HorizonURL, cfg.NetworkPassphrase, cfg.IssuerSecret, cfg.DistributorSecret)
	if err != nil {
		log.Fatalf("failed to set up ledger client: %v", err)
	}

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("rabbitmq unavailable, events will not be published: %v", err)
	} else {
		defer publisher.Close()
	}

	kv := cache.New(cfg.RedisAddr)
	defer kv.Close()

	tokens := auth.NewManager(cfg.JWTSecret, 12*time.Hour)

	eventRepo := repository.NewEventRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	auctionRepo := repository.NewAuctionRepository(db)

	eventSvc := service.NewEventService(eventRepo, publisher)
	ticketSvc := service.NewTicketService(eventRepo, assetRepo, ldg, ldg.IssuerAddress(), publisher)
	auctionSvc := service.NewAuctionService(auctionRepo, assetRepo, ldg, publisher)
	analyticsSvc := service.NewAnalyticsService(eventRepo, assetRepo, ldg, kv)
	walletSvc := service.NewWalletService(kv, tokens)

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "ticketing"})
	})

	api := e.Group("/api/v1")
	requireWallet := middleware.RequireWallet(tokens)

	handler.NewEventHandler(eventSvc).RegisterRoutes(api, requireWallet)
	handler.NewTicketHandler(ticketSvc).RegisterRoutes(api, requireWallet)
	handler.NewMarketplaceHandler(auctionSvc).RegisterRoutes(api, requireWallet)
	handler.NewWalletHandler(walletSvc, analyticsSvc).RegisterRoutes(api, requireWallet)
	handler.NewAccountHandler(ldg, assetRepo).RegisterRoutes(api)

	log.Printf("Ticketing service starting on :%s (env=%s)", cfg.ServerPort, cfg.Env)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
