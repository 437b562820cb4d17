package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gctucker/cams/internal/domain"
	"github.com/gctucker/cams/internal/infrastructure/database/models"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Get(ctx context.Context, id uint) (domain.Event, error) {

	var e models.Event
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Event{}, domain.NotFoundError{Resource: "event"}
		}
		return domain.Event{}, err
	}

	return eventToDomain(e), nil
}

// GetForFair returns the fair's occurrence of the event, matching either the
// event itself or any occurrence sharing its master.
func (r *EventRepository) GetForFair(ctx context.Context, eventID, fairID uint) (domain.Event, error) {

	event, err := r.Get(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}
	if event.FairID != nil && *event.FairID == fairID {
		return event, nil
	}

	mainID := event.MainID()

	var e models.Event
	err = r.db.WithContext(ctx).
		Where("fair_id = ? AND (id = ? OR master_id = ?)", fairID, mainID, mainID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Event{}, domain.NotFoundError{Resource: "event"}
		}
		return domain.Event{}, err
	}

	return eventToDomain(e), nil
}

func (r *EventRepository) Save(ctx context.Context, e *domain.Event) error {

	model := models.Event{
		ID:             e.ID,
		Status:         int(e.Status),
		Name:           e.Name,
		Description:    e.Description,
		OwnerID:        e.OwnerID,
		FairID:         e.FairID,
		MasterID:       e.MasterID,
		OrganisationID: e.OrganisationID,
		Date:           e.Date,
		Time:           e.Time,
		EndDate:        e.EndDate,
		EndTime:        e.EndTime,
		Location:       e.Location,
	}

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	e.ID = model.ID
	return nil
}

func (r *EventRepository) ListActors(ctx context.Context, eventID uint) ([]domain.Actor, error) {

	var rows []models.Actor
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Actor, 0, len(rows))
	for _, a := range rows {
		out = append(out, domain.Actor{
			Record:   domain.Record{ID: a.ID, Status: domain.Status(a.Status), Created: a.CDate},
			PersonID: a.PersonID,
			EventID:  a.EventID,
			Role:     a.Role,
		})
	}
	return out, nil
}

func (r *EventRepository) SaveActor(ctx context.Context, a *domain.Actor) error {

	model := models.Actor{
		ID:       a.ID,
		PersonID: a.PersonID,
		EventID:  a.EventID,
		Role:     a.Role,
		Status:   int(a.Status),
	}

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	a.ID = model.ID
	return nil
}

func (r *EventRepository) SaveComment(ctx context.Context, c *domain.EventComment) error {

	model := models.EventComment{
		ID:       c.ID,
		AuthorID: c.AuthorID,
		EventID:  c.EventID,
		Text:     c.Text,
	}

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	c.ID = model.ID
	return nil
}

func (r *EventRepository) ListComments(ctx context.Context, eventID uint) ([]domain.EventComment, error) {

	var rows []models.EventComment
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("cdate DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.EventComment, 0, len(rows))
	for _, c := range rows {
		out = append(out, domain.EventComment{
			Record:   domain.Record{ID: c.ID, Created: c.CDate},
			AuthorID: c.AuthorID,
			EventID:  c.EventID,
			Text:     c.Text,
		})
	}
	return out, nil
}

func (r *EventRepository) SaveApplication(ctx context.Context, a *domain.EventApplication) error {

	model := models.EventApplication{
		ID:       a.ID,
		PersonID: a.PersonID,
		EventID:  a.EventID,
		Status:   int(a.Status),
	}

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	a.ID = model.ID
	return nil
}

func (r *EventRepository) ListApplications(ctx context.Context, eventID uint) ([]domain.EventApplication, error) {

	var rows []models.EventApplication
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.EventApplication, 0, len(rows))
	for _, a := range rows {
		out = append(out, domain.EventApplication{
			ID:       a.ID,
			PersonID: a.PersonID,
			EventID:  a.EventID,
			Status:   domain.ApplicationStatus(a.Status),
			Created:  a.CDate,
		})
	}
	return out, nil
}

func eventToDomain(e models.Event) domain.Event {
	return domain.Event{
		Record:         domain.Record{ID: e.ID, Status: domain.Status(e.Status), Created: e.CDate},
		Name:           e.Name,
		Description:    e.Description,
		OwnerID:        e.OwnerID,
		FairID:         e.FairID,
		MasterID:       e.MasterID,
		OrganisationID: e.OrganisationID,
		Date:           e.Date,
		Time:           e.Time,
		EndDate:        e.EndDate,
		EndTime:        e.EndTime,
		Location:       e.Location,
	}
}
