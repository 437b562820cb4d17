package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gctucker/cams/internal/domain"
	"github.com/gctucker/cams/internal/infrastructure/database/models"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) ListByPerson(ctx context.Context, personID uint) ([]domain.Member, error) {
	return r.list(ctx, "person_id = ?", personID)
}

func (r *MemberRepository) ListByOrganisation(ctx context.Context, organisationID uint) ([]domain.Member, error) {
	return r.list(ctx, "organisation_id = ?", organisationID)
}

func (r *MemberRepository) FirstByPerson(ctx context.Context, personID uint) (domain.Member, error) {
	return r.first(ctx, "person_id = ?", personID)
}

func (r *MemberRepository) FirstByOrganisation(ctx context.Context, organisationID uint) (domain.Member, error) {
	return r.first(ctx, "organisation_id = ?", organisationID)
}

// UpdateStatus writes the derived status onto the member's contactable row.
func (r *MemberRepository) UpdateStatus(ctx context.Context, memberID uint, status domain.Status) error {

	var m models.Member
	err := r.db.WithContext(ctx).First(&m, "id = ?", memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFoundError{Resource: "member"}
		}
		return err
	}

	return r.db.WithContext(ctx).
		Model(&models.Contactable{}).
		Where("id = ?", m.ContactableID).
		Update("status", int(status)).Error
}

func (r *MemberRepository) list(ctx context.Context, query string, arg uint) ([]domain.Member, error) {

	var rows []models.Member
	err := r.db.WithContext(ctx).Preload("Contactable").
		Where(query, arg).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Member, 0, len(rows))
	for _, m := range rows {
		out = append(out, memberToDomain(m, m.Contactable))
	}
	return out, nil
}

func (r *MemberRepository) first(ctx context.Context, query string, arg uint) (domain.Member, error) {

	var m models.Member
	err := r.db.WithContext(ctx).Preload("Contactable").
		Where(query, arg).
		Order("id").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Member{}, domain.NotFoundError{Resource: "member"}
		}
		return domain.Member{}, err
	}

	return memberToDomain(m, m.Contactable), nil
}
