package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ratewise/bill-audit/client"
	"github.com/ratewise/bill-audit/config"
	"github.com/ratewise/bill-audit/handler"
	"github.com/ratewise/bill-audit/middleware"
	"github.com/ratewise/bill-audit/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		logger = logger.Level(level)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var notifier service.Notifier
	if cfg.Email.Enabled {
		sesNotifier, err := client.NewSESNotifier(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.ToAddress)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize SES notifier")
		}
		notifier = sesNotifier
	} else {
		notifier = client.NewNoopNotifier(logger)
	}

	pdfProcessor := service.NewPDFProcessor()
	auditService := service.NewAuditService(pdfProcessor, notifier, logger)

	maxFileSize := cfg.Upload.MaxFileSizeMB * 1024 * 1024
	billHandler := handler.NewBillHandler(auditService, maxFileSize, logger)

	router := gin.Default()
	router.MaxMultipartMemory = maxFileSize
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.LoadHTMLGlob("templates/*")

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Bill Audit",
		})
	})

	api := router.Group("/api/v1")
	{
		bills := api.Group("/bills")
		{
			bills.POST("/analyze", billHandler.AnalyzeBill)
			bills.POST("/report", billHandler.RenderReport)
			bills.POST("/proposal", billHandler.RenderProposal)
		}
	}

	logger.Info().Str("port", cfg.Server.Port).Msg("starting bill audit service")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
