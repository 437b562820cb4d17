package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gctucker/cams/internal/domain"
	"github.com/gctucker/cams/internal/infrastructure/database/models"
	"github.com/gctucker/cams/internal/usecase"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Get(ctx context.Context, id uint) (domain.Group, error) {
	return getGroup(r.db.WithContext(ctx), id)
}

func (r *GroupRepository) List(ctx context.Context) ([]domain.Group, error) {

	var rows []models.Group
	err := r.db.WithContext(ctx).Order("name").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return groupsToDomain(rows), nil
}

func (r *GroupRepository) ListByContactable(ctx context.Context, contactableID uint) ([]domain.Group, error) {
	var rows []models.Group
	err := r.db.WithContext(ctx).
		Joins("JOIN roles ON roles.group_id = groups.id").
		Where("roles.contactable_id = ?", contactableID).
		Order("groups.name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return groupsToDomain(rows), nil
}

func (r *GroupRepository) Save(ctx context.Context, g *domain.Group) error {

	model := groupToModel(*g)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	g.ID = model.ID
	return nil
}

func (r *GroupRepository) SaveRole(ctx context.Context, role *domain.Role) error {

	model := models.Role{
		ID:            role.ID,
		ContactableID: role.ContactableID,
		GroupID:       role.GroupID,
		Role:          role.Role,
	}
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	role.ID = model.ID
	return nil
}

func (r *GroupRepository) DeleteRole(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Role{}, "id = ?", id).Error
}

// ListGroupContactables returns the group's entries of one concrete type
// with the given status. People are ordered by last name, organisations by
// name, members by id.
func (r *GroupRepository) ListGroupContactables(ctx context.Context, groupID uint, typ domain.ContactableType, status domain.Status) ([]domain.Contactable, error) {
	switch typ {
	case domain.TypePerson:
		return r.listGroupPeople(ctx, groupID, status)
	case domain.TypeOrganisation:
		return r.listGroupOrganisations(ctx, groupID, status)
	case domain.TypeMember:
		return r.listGroupMembers(ctx, groupID, status)
	}
	return nil, nil
}

func (r *GroupRepository) listGroupPeople(ctx context.Context, groupID uint, status domain.Status) ([]domain.Contactable, error) {

	var rows []models.Person
	err := r.db.WithContext(ctx).Preload("Contactable").
		Joins("JOIN contactables ON contactables.id = people.contactable_id").
		Joins("JOIN roles ON roles.contactable_id = people.contactable_id").
		Where("roles.group_id = ? AND contactables.status = ?", groupID, int(status)).
		Order("people.last_name, people.first_name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Contactable, 0, len(rows))
	for _, p := range rows {
		dp := domain.Person{
			Record:        recordOf(p.ID, p.Contactable),
			ContactableID: p.ContactableID,
			Title:         domain.Title(p.Title),
			FirstName:     p.FirstName,
			MiddleName:    p.MiddleName,
			LastName:      p.LastName,
			Nickname:      p.Nickname,
		}
		out = append(out, domain.Contactable{
			Record:    recordFromContactable(p.Contactable),
			Type:      domain.TypePerson,
			BasicName: p.Contactable.BasicName,
			Person:    &dp,
		})
	}
	return out, nil
}

func (r *GroupRepository) listGroupOrganisations(ctx context.Context, groupID uint, status domain.Status) ([]domain.Contactable, error) {

	var rows []models.Organisation
	err := r.db.WithContext(ctx).Preload("Contactable").
		Joins("JOIN contactables ON contactables.id = organisations.contactable_id").
		Joins("JOIN roles ON roles.contactable_id = organisations.contactable_id").
		Where("roles.group_id = ? AND contactables.status = ?", groupID, int(status)).
		Order("organisations.name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Contactable, 0, len(rows))
	for _, o := range rows {
		do := organisationToDomain(o, o.Contactable)
		out = append(out, domain.Contactable{
			Record:       recordFromContactable(o.Contactable),
			Type:         domain.TypeOrganisation,
			BasicName:    o.Contactable.BasicName,
			Organisation: &do,
		})
	}
	return out, nil
}

func (r *GroupRepository) listGroupMembers(ctx context.Context, groupID uint, status domain.Status) ([]domain.Contactable, error) {

	var rows []models.Member
	err := r.db.WithContext(ctx).Preload("Contactable").
		Joins("JOIN contactables ON contactables.id = members.contactable_id").
		Joins("JOIN roles ON roles.contactable_id = members.contactable_id").
		Where("roles.group_id = ? AND contactables.status = ?", groupID, int(status)).
		Order("members.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Contactable, 0, len(rows))
	for _, m := range rows {
		dm := memberToDomain(m, m.Contactable)
		out = append(out, domain.Contactable{
			Record:    recordFromContactable(m.Contactable),
			Type:      domain.TypeMember,
			BasicName: m.Contactable.BasicName,
			Member:    &dm,
		})
	}
	return out, nil
}

func (r *GroupRepository) GetBoard(ctx context.Context, id uint) (domain.Board, error) {
	return getBoard(r.db.WithContext(ctx), id)
}

func (r *GroupRepository) SaveBoard(ctx context.Context, b *domain.Board) error {

	model := models.Board{
		ID:          b.ID,
		Status:      int(b.Status),
		Name:        b.Name,
		Description: b.Description,
	}
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	b.ID = model.ID
	return nil
}

func (r *GroupRepository) ListBoards(ctx context.Context) ([]domain.Board, error) {

	var rows []models.Board
	err := r.db.WithContext(ctx).Order("name").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Board, 0, len(rows))
	for _, b := range rows {
		out = append(out, boardToDomain(b))
	}
	return out, nil
}

// GroupPinRepository walks and writes group version chains.
type GroupPinRepository struct {
	db *gorm.DB
}

func NewGroupPinRepository(db *gorm.DB) *GroupPinRepository {
	return &GroupPinRepository{db: db}
}

func (r *GroupPinRepository) InTx(ctx context.Context, fn func(usecase.PinRepository[domain.Group]) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GroupPinRepository{db: tx})
	})
}

func (r *GroupPinRepository) Get(ctx context.Context, id uint) (domain.Group, error) {
	return getGroup(r.db.WithContext(ctx), id)
}

func (r *GroupPinRepository) GetBoard(ctx context.Context, id uint) (domain.Board, error) {
	return getBoard(r.db.WithContext(ctx), id)
}

func (r *GroupPinRepository) Children(ctx context.Context, parentID uint) ([]domain.Group, error) {

	var rows []models.Group
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return groupsToDomain(rows), nil
}

// CreateCopy writes a snapshot of src assigned to the board, inheriting
// src's parent pointer, and clones the group's roles onto the copy.
func (r *GroupPinRepository) CreateCopy(ctx context.Context, src domain.Group, boardID uint) (domain.Group, error) {

	var out domain.Group
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		copied := models.Group{
			Name:        src.Name,
			Description: src.Description,
			FairID:      src.FairID,
			BoardID:     &boardID,
			ParentID:    src.ParentID,
		}
		if err := tx.Create(&copied).Error; err != nil {
			return err
		}

		var roles []models.Role
		if err := tx.Where("group_id = ?", src.ID).Find(&roles).Error; err != nil {
			return err
		}
		for _, role := range roles {
			clone := models.Role{
				ContactableID: role.ContactableID,
				GroupID:       copied.ID,
				Role:          role.Role,
			}
			if err := tx.Create(&clone).Error; err != nil {
				return err
			}
		}

		out = groupToDomain(copied)
		return nil
	})
	return out, err
}

func (r *GroupPinRepository) SetParent(ctx context.Context, id uint, parentID *uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Group{}).
		Where("id = ?", id).
		Update("parent_id", parentID).Error
}

func getGroup(db *gorm.DB, id uint) (domain.Group, error) {
	var g models.Group
	err := db.First(&g, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Group{}, domain.NotFoundError{Resource: "group"}
		}
		return domain.Group{}, err
	}
	return groupToDomain(g), nil
}

func getBoard(db *gorm.DB, id uint) (domain.Board, error) {
	var b models.Board
	err := db.First(&b, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Board{}, domain.NotFoundError{Resource: "board"}
		}
		return domain.Board{}, err
	}
	return boardToDomain(b), nil
}

func groupToModel(g domain.Group) models.Group {
	return models.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		FairID:      g.FairID,
		BoardID:     g.BoardID,
		ParentID:    g.ParentID,
	}
}

func groupToDomain(g models.Group) domain.Group {
	return domain.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		FairID:      g.FairID,
		BoardID:     g.BoardID,
		ParentID:    g.ParentID,
	}
}

func groupsToDomain(rows []models.Group) []domain.Group {
	out := make([]domain.Group, 0, len(rows))
	for _, g := range rows {
		out = append(out, groupToDomain(g))
	}
	return out
}

func boardToDomain(b models.Board) domain.Board {
	return domain.Board{
		ID:          b.ID,
		Status:      domain.BoardStatus(b.Status),
		Name:        b.Name,
		Description: b.Description,
	}
}
