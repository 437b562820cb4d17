package usecase

import (
	"context"
	"time"

	"github.com/gctucker/cams/internal/domain"
)

type InvoiceUsecase struct {
	repo InvoiceRepository
	now  func() time.Time
}

func NewInvoiceUsecase(repo InvoiceRepository) *InvoiceUsecase {
	return &InvoiceUsecase{repo: repo, now: time.Now}
}

// Transition applies one table-driven status change and persists the
// invoice. A rejected transition leaves the stored row untouched.
func (uc *InvoiceUsecase) Transition(ctx context.Context, id uint, next domain.InvoiceStatus) (domain.Invoice, error) {
	inv, err := uc.repo.Get(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if err := inv.Transition(next, uc.now()); err != nil {
		return domain.Invoice{}, err
	}
	if err := uc.repo.Save(ctx, &inv); err != nil {
		return domain.Invoice{}, err
	}
	return inv, nil
}

// SetStatus force-assigns the status outside the transition table, fixing
// up the timestamps, and persists the invoice.
func (uc *InvoiceUsecase) SetStatus(ctx context.Context, id uint, status domain.InvoiceStatus) (domain.Invoice, error) {
	inv, err := uc.repo.Get(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	inv.SetStatus(status, uc.now())
	if err := uc.repo.Save(ctx, &inv); err != nil {
		return domain.Invoice{}, err
	}
	return inv, nil
}

func (uc *InvoiceUsecase) Save(ctx context.Context, inv *domain.Invoice) error {
	return uc.repo.Save(ctx, inv)
}

func (uc *InvoiceUsecase) Get(ctx context.Context, id uint) (domain.Invoice, error) {
	return uc.repo.Get(ctx, id)
}
