package service

import (
	"github.com/factuurlijk/factuurlijk/internal/config"
	"github.com/factuurlijk/factuurlijk/internal/domain/customer"
	"github.com/factuurlijk/factuurlijk/internal/domain/invoice"
	"github.com/factuurlijk/factuurlijk/internal/domain/payment"
	"github.com/factuurlijk/factuurlijk/internal/domain/profile"
	"github.com/factuurlijk/factuurlijk/internal/logger"
	"github.com/factuurlijk/factuurlijk/internal/logo"
	"github.com/factuurlijk/factuurlijk/internal/pdf"
	"github.com/factuurlijk/factuurlijk/internal/postgres"
	"github.com/factuurlijk/factuurlijk/internal/render"
	"github.com/factuurlijk/factuurlijk/internal/s3"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	DB           postgres.IClient
	PDFGenerator pdf.Generator
	BlobStore    s3.Service
	LogoResolver logo.Resolver
	Renderer     *render.Registry

	// Repositories
	InvoiceRepo  invoice.Repository
	CustomerRepo customer.Repository
	ProfileRepo  profile.Repository
	PaymentRepo  payment.Repository
}

// NewServiceParams assembles the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	pdfGenerator pdf.Generator,
	blobStore s3.Service,
	logoResolver logo.Resolver,
	renderer *render.Registry,
	invoiceRepo invoice.Repository,
	customerRepo customer.Repository,
	profileRepo profile.Repository,
	paymentRepo payment.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		DB:           db,
		PDFGenerator: pdfGenerator,
		BlobStore:    blobStore,
		LogoResolver: logoResolver,
		Renderer:     renderer,
		InvoiceRepo:  invoiceRepo,
		CustomerRepo: customerRepo,
		ProfileRepo:  profileRepo,
		PaymentRepo:  paymentRepo,
	}
}
