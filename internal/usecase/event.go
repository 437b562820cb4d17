package usecase

import (
	"context"

	"github.com/gctucker/cams/internal/domain"
)

type EventUsecase struct {
	repo EventRepository
}

func NewEventUsecase(repo EventRepository) *EventUsecase {
	return &EventUsecase{repo: repo}
}

func (uc *EventUsecase) Get(ctx context.Context, id uint) (domain.Event, error) {
	return uc.repo.Get(ctx, id)
}

// GetForFair returns the occurrence of an event within one fair, matching
// either the event itself or any occurrence sharing its master.
func (uc *EventUsecase) GetForFair(ctx context.Context, eventID, fairID uint) (domain.Event, error) {
	return uc.repo.GetForFair(ctx, eventID, fairID)
}

func (uc *EventUsecase) Save(ctx context.Context, e *domain.Event) error {
	return uc.repo.Save(ctx, e)
}

func (uc *EventUsecase) SaveActor(ctx context.Context, a *domain.Actor) error {
	return uc.repo.SaveActor(ctx, a)
}

func (uc *EventUsecase) ListActors(ctx context.Context, eventID uint) ([]domain.Actor, error) {
	return uc.repo.ListActors(ctx, eventID)
}

func (uc *EventUsecase) SaveComment(ctx context.Context, c *domain.EventComment) error {
	return uc.repo.SaveComment(ctx, c)
}

func (uc *EventUsecase) ListComments(ctx context.Context, eventID uint) ([]domain.EventComment, error) {
	return uc.repo.ListComments(ctx, eventID)
}

func (uc *EventUsecase) SaveApplication(ctx context.Context, a *domain.EventApplication) error {
	return uc.repo.SaveApplication(ctx, a)
}

func (uc *EventUsecase) ListApplications(ctx context.Context, eventID uint) ([]domain.EventApplication, error) {
	return uc.repo.ListApplications(ctx, eventID)
}
