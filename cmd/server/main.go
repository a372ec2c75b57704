package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/factuurlijk/factuurlijk/internal/api"
	v1 "github.com/factuurlijk/factuurlijk/internal/api/v1"
	"github.com/factuurlijk/factuurlijk/internal/config"
	"github.com/factuurlijk/factuurlijk/internal/logger"
	"github.com/factuurlijk/factuurlijk/internal/logo"
	"github.com/factuurlijk/factuurlijk/internal/pdf"
	"github.com/factuurlijk/factuurlijk/internal/postgres"
	"github.com/factuurlijk/factuurlijk/internal/render"
	"github.com/factuurlijk/factuurlijk/internal/repository"
	"github.com/factuurlijk/factuurlijk/internal/s3"
	"github.com/factuurlijk/factuurlijk/internal/service"
	"github.com/factuurlijk/factuurlijk/internal/typst"
	"github.com/factuurlijk/factuurlijk/internal/validator"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Blob store
			s3.NewService,

			// Document snapshot pipeline
			provideTypstCompiler,
			pdf.NewGenerator,
			logo.NewResolver,
			render.NewRegistry,
		),

		// Postgres
		postgres.Module(),

		// Repositories
		fx.Provide(
			repository.NewInvoiceRepository,
			repository.NewCustomerRepository,
			repository.NewProfileRepository,
			repository.NewPaymentRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewInvoiceService,
			service.NewInvoiceListService,
			service.NewExportService,
			service.NewCustomerService,
			service.NewProfileService,
			service.NewPaymentService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideTypstCompiler(cfg *config.Configuration, log *logger.Logger) typst.Compiler {
	return typst.NewCompiler(
		log,
		cfg.Pdf.TypstBinaryPath,
		cfg.Pdf.FontDir,
		cfg.Pdf.TemplateDir,
		cfg.Pdf.OutputDir,
	)
}

func provideHandlers(
	logger *logger.Logger,
	invoiceService service.InvoiceService,
	invoiceListService service.InvoiceListService,
	exportService service.ExportService,
	customerService service.CustomerService,
	profileService service.ProfileService,
	paymentService service.PaymentService,
) api.Handlers {
	return api.Handlers{
		Invoice:  v1.NewInvoiceHandler(invoiceService, invoiceListService, exportService, logger),
		Customer: v1.NewCustomerHandler(customerService, logger),
		Profile:  v1.NewProfileHandler(profileService, logger),
		Payment:  v1.NewPaymentHandler(paymentService, logger),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
