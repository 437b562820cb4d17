package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gctucker/cams/internal/domain"
	"github.com/gctucker/cams/internal/infrastructure/database/models"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Get(ctx context.Context, id uint) (domain.Invoice, error) {

	var inv models.Invoice
	err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Invoice{}, domain.NotFoundError{Resource: "invoice"}
		}
		return domain.Invoice{}, err
	}

	return domain.Invoice{
		ID:        inv.ID,
		Status:    domain.InvoiceStatus(inv.Status),
		Reference: inv.Reference,
		Amount:    inv.Amount,
		Created:   inv.CDate,
		Sent:      inv.Sent,
		Paid:      inv.Paid,
		Cancelled: inv.Cancelled,
		Banked:    inv.Banked,
	}, nil
}

func (r *InvoiceRepository) Save(ctx context.Context, inv *domain.Invoice) error {

	model := models.Invoice{
		ID:        inv.ID,
		Status:    int(inv.Status),
		Reference: inv.Reference,
		Amount:    inv.Amount,
		Sent:      inv.Sent,
		Paid:      inv.Paid,
		Cancelled: inv.Cancelled,
		Banked:    inv.Banked,
	}

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	inv.ID = model.ID
	return nil
}
