package repository

import (
	"github.com/factuurlijk/factuurlijk/internal/domain/customer"
	"github.com/factuurlijk/factuurlijk/internal/domain/invoice"
	"github.com/factuurlijk/factuurlijk/internal/domain/payment"
	"github.com/factuurlijk/factuurlijk/internal/domain/profile"
	"github.com/factuurlijk/factuurlijk/internal/logger"
	"github.com/factuurlijk/factuurlijk/internal/postgres"
	postgresRepo "github.com/factuurlijk/factuurlijk/internal/repository/postgres"
)

func NewInvoiceRepository(db postgres.IClient, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewCustomerRepository(db postgres.IClient, logger *logger.Logger) customer.Repository {
	return postgresRepo.NewCustomerRepository(db, logger)
}

func NewProfileRepository(db postgres.IClient, logger *logger.Logger) profile.Repository {
	return postgresRepo.NewProfileRepository(db, logger)
}

func NewPaymentRepository(db postgres.IClient, logger *logger.Logger) payment.Repository {
	return postgresRepo.NewPaymentRepository(db, logger)
}
