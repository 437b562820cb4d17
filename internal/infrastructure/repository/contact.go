package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gctucker/cams/internal/domain"
	"github.com/gctucker/cams/internal/infrastructure/database/models"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// FirstByOwner returns the owner's preferred contact, lowest address order
// first.
func (r *ContactRepository) FirstByOwner(ctx context.Context, contactableID uint) (domain.Contact, error) {

	var c models.Contact
	err := r.db.WithContext(ctx).
		Where("contactable_id = ?", contactableID).
		Order("addr_order, addr_suborder, id").
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Contact{}, domain.NotFoundError{Resource: "contact"}
		}
		return domain.Contact{}, err
	}

	return contactToDomain(c), nil
}

func (r *ContactRepository) ListByOwner(ctx context.Context, contactableID uint) ([]domain.Contact, error) {

	var rows []models.Contact
	err := r.db.WithContext(ctx).
		Where("contactable_id = ?", contactableID).
		Order("addr_order, addr_suborder, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Contact, 0, len(rows))
	for _, c := range rows {
		out = append(out, contactToDomain(c))
	}
	return out, nil
}

func (r *ContactRepository) Save(ctx context.Context, c *domain.Contact) error {

	model := models.Contact{
		ID:            c.ID,
		ContactableID: c.ContactableID,
		Status:        int(c.Status),
		Line1:         c.Line1,
		Line2:         c.Line2,
		Line3:         c.Line3,
		Town:          c.Town,
		Postcode:      c.Postcode,
		Country:       c.Country,
		Email:         c.Email,
		Website:       c.Website,
		Telephone:     c.Telephone,
		Mobile:        c.Mobile,
		Fax:           c.Fax,
		AddrOrder:     c.AddrOrder,
		AddrSuborder:  c.AddrSuborder,
	}

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	c.ID = model.ID
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Contact{}, "id = ?", id).Error
}

func contactToDomain(c models.Contact) domain.Contact {
	return domain.Contact{
		Record: domain.Record{
			ID:      c.ID,
			Status:  domain.Status(c.Status),
			Created: c.CDate,
		},
		ContactableID: c.ContactableID,
		Line1:         c.Line1,
		Line2:         c.Line2,
		Line3:         c.Line3,
		Town:          c.Town,
		Postcode:      c.Postcode,
		Country:       c.Country,
		Email:         c.Email,
		Website:       c.Website,
		Telephone:     c.Telephone,
		Mobile:        c.Mobile,
		Fax:           c.Fax,
		AddrOrder:     c.AddrOrder,
		AddrSuborder:  c.AddrSuborder,
	}
}
