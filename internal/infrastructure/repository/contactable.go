package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gctucker/cams/internal/domain"
	"github.com/gctucker/cams/internal/infrastructure/database/models"
	"github.com/gctucker/cams/internal/usecase"
)

type ContactableRepository struct {
	db *gorm.DB
}

func NewContactableRepository(db *gorm.DB) *ContactableRepository {
	return &ContactableRepository{db: db}
}

func (r *ContactableRepository) InTx(ctx context.Context, fn func(usecase.ContactableRepository, usecase.MemberRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ContactableRepository{db: tx}, &MemberRepository{db: tx})
	})
}

func (r *ContactableRepository) Get(ctx context.Context, id uint) (domain.Contactable, error) {

	var ct models.Contactable
	err := r.db.WithContext(ctx).First(&ct, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Contactable{}, domain.NotFoundError{Resource: "contactable"}
		}
		return domain.Contactable{}, err
	}

	out := domain.Contactable{
		Record:    recordFromContactable(ct),
		Type:      domain.ContactableType(ct.Type),
		BasicName: ct.BasicName,
	}

	switch out.Type {
	case domain.TypePerson:
		var p models.Person
		if err := r.db.WithContext(ctx).First(&p, "contactable_id = ?", ct.ID).Error; err != nil {
			return domain.Contactable{}, err
		}
		dp, err := r.personToDomain(ctx, p, ct)
		if err != nil {
			return domain.Contactable{}, err
		}
		out.Person = &dp
	case domain.TypeOrganisation:
		var o models.Organisation
		if err := r.db.WithContext(ctx).First(&o, "contactable_id = ?", ct.ID).Error; err != nil {
			return domain.Contactable{}, err
		}
		do := organisationToDomain(o, ct)
		out.Organisation = &do
	case domain.TypeMember:
		var m models.Member
		if err := r.db.WithContext(ctx).First(&m, "contactable_id = ?", ct.ID).Error; err != nil {
			return domain.Contactable{}, err
		}
		dm := memberToDomain(m, ct)
		out.Member = &dm
	}

	return out, nil
}

func (r *ContactableRepository) GetPerson(ctx context.Context, id uint) (domain.Person, error) {

	var p models.Person
	err := r.db.WithContext(ctx).Preload("Contactable").First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Person{}, domain.NotFoundError{Resource: "person"}
		}
		return domain.Person{}, err
	}

	return r.personToDomain(ctx, p, p.Contactable)
}

func (r *ContactableRepository) GetOrganisation(ctx context.Context, id uint) (domain.Organisation, error) {

	var o models.Organisation
	err := r.db.WithContext(ctx).Preload("Contactable").First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Organisation{}, domain.NotFoundError{Resource: "organisation"}
		}
		return domain.Organisation{}, err
	}

	return organisationToDomain(o, o.Contactable), nil
}

func (r *ContactableRepository) SavePerson(ctx context.Context, p *domain.Person, basicName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		ctID, err := saveContactable(tx, p.ContactableID, domain.TypePerson, p.Status, basicName)
		if err != nil {
			return err
		}
		p.ContactableID = ctID

		model := models.Person{
			ID:            p.ID,
			ContactableID: p.ContactableID,
			Title:         int(p.Title),
			FirstName:     p.FirstName,
			MiddleName:    p.MiddleName,
			LastName:      p.LastName,
			Nickname:      p.Nickname,
		}
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		p.ID = model.ID

		if err := tx.Delete(&models.PersonAlter{}, "person_id = ?", p.ID).Error; err != nil {
			return err
		}
		for _, alterID := range p.AlterIDs {
			link := models.PersonAlter{PersonID: p.ID, AlterID: alterID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *ContactableRepository) SaveOrganisation(ctx context.Context, o *domain.Organisation, basicName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		ctID, err := saveContactable(tx, o.ContactableID, domain.TypeOrganisation, o.Status, basicName)
		if err != nil {
			return err
		}
		o.ContactableID = ctID

		model := models.Organisation{
			ID:            o.ID,
			ContactableID: o.ContactableID,
			Name:          o.Name,
			Nickname:      o.Nickname,
		}
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		o.ID = model.ID

		return nil
	})
}

func (r *ContactableRepository) SaveMember(ctx context.Context, m *domain.Member, basicName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		ctID, err := saveContactable(tx, m.ContactableID, domain.TypeMember, m.Status, basicName)
		if err != nil {
			return err
		}
		m.ContactableID = ctID

		model := models.Member{
			ID:             m.ID,
			ContactableID:  m.ContactableID,
			OrganisationID: m.OrganisationID,
			PersonID:       m.PersonID,
			Title:          m.Title,
		}
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		m.ID = model.ID

		return nil
	})
}

// saveContactable writes the shared row, creating it when id is zero, and
// returns its id.
func saveContactable(tx *gorm.DB, id uint, typ domain.ContactableType, status domain.Status, basicName string) (uint, error) {
	ct := models.Contactable{
		ID:        id,
		Type:      int(typ),
		Status:    int(status),
		BasicName: basicName,
	}
	if err := tx.Save(&ct).Error; err != nil {
		return 0, err
	}
	return ct.ID, nil
}

func (r *ContactableRepository) personToDomain(ctx context.Context, p models.Person, ct models.Contactable) (domain.Person, error) {
	var links []models.PersonAlter
	if err := r.db.WithContext(ctx).Where("person_id = ?", p.ID).Find(&links).Error; err != nil {
		return domain.Person{}, err
	}
	var alters []uint
	for _, l := range links {
		alters = append(alters, l.AlterID)
	}

	return domain.Person{
		Record:        recordOf(p.ID, ct),
		ContactableID: p.ContactableID,
		Title:         domain.Title(p.Title),
		FirstName:     p.FirstName,
		MiddleName:    p.MiddleName,
		LastName:      p.LastName,
		Nickname:      p.Nickname,
		AlterIDs:      alters,
	}, nil
}

func organisationToDomain(o models.Organisation, ct models.Contactable) domain.Organisation {
	return domain.Organisation{
		Record:        recordOf(o.ID, ct),
		ContactableID: o.ContactableID,
		Name:          o.Name,
		Nickname:      o.Nickname,
	}
}

func memberToDomain(m models.Member, ct models.Contactable) domain.Member {
	return domain.Member{
		Record:         recordOf(m.ID, ct),
		ContactableID:  m.ContactableID,
		OrganisationID: m.OrganisationID,
		PersonID:       m.PersonID,
		Title:          m.Title,
	}
}

func recordFromContactable(ct models.Contactable) domain.Record {
	return recordOf(ct.ID, ct)
}

// recordOf builds the shared record fields with the concrete row's id and
// the contactable row's status and creation time.
func recordOf(id uint, ct models.Contactable) domain.Record {
	return domain.Record{
		ID:      id,
		Status:  domain.Status(ct.Status),
		Created: ct.CDate,
	}
}
