package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gctucker/cams/internal/domain"
	"github.com/gctucker/cams/internal/infrastructure/database/models"
	"github.com/gctucker/cams/internal/usecase"
)

type FairRepository struct {
	db *gorm.DB
}

func NewFairRepository(db *gorm.DB) *FairRepository {
	return &FairRepository{db: db}
}

func (r *FairRepository) InTx(ctx context.Context, fn func(usecase.FairRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&FairRepository{db: tx})
	})
}

func (r *FairRepository) List(ctx context.Context) ([]domain.Fair, error) {

	var rows []models.Fair
	err := r.db.WithContext(ctx).Order("date DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Fair, 0, len(rows))
	for _, f := range rows {
		out = append(out, fairToDomain(f))
	}
	return out, nil
}

func (r *FairRepository) GetCurrent(ctx context.Context) (domain.Fair, error) {

	var f models.Fair
	err := r.db.WithContext(ctx).Where("current = ?", true).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Fair{}, domain.NotFoundError{Resource: "fair"}
		}
		return domain.Fair{}, err
	}

	return fairToDomain(f), nil
}

func (r *FairRepository) Save(ctx context.Context, f *domain.Fair) error {

	model := models.Fair{
		ID:          f.ID,
		Date:        f.Date,
		Description: f.Description,
		Current:     f.Current,
	}

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	f.ID = model.ID
	return nil
}

func fairToDomain(f models.Fair) domain.Fair {
	return domain.Fair{
		ID:          f.ID,
		Date:        f.Date,
		Description: f.Description,
		Current:     f.Current,
	}
}
