package usecase

import (
	"context"

	"github.com/gctucker/cams/internal/domain"
)

type FairUsecase struct {
	repo FairRepository
}

func NewFairUsecase(repo FairRepository) *FairUsecase {
	return &FairUsecase{repo: repo}
}

// Save persists the fair while keeping exactly one fair current. A current
// fair displaces every other current one; a non-current fair becomes
// current itself when no other is. The first fair saved into an empty
// collection therefore always ends up current.
func (uc *FairUsecase) Save(ctx context.Context, fair *domain.Fair) error {
	return uc.repo.InTx(ctx, func(r FairRepository) error {
		if fair.Current {
			if err := r.Save(ctx, fair); err != nil {
				return err
			}
			others, err := r.List(ctx)
			if err != nil {
				return err
			}
			for _, f := range others {
				if f.ID == fair.ID || !f.Current {
					continue
				}
				f.Current = false
				if err := r.Save(ctx, &f); err != nil {
					return err
				}
			}
			return nil
		}

		others, err := r.List(ctx)
		if err != nil {
			return err
		}
		found := false
		for _, f := range others {
			if f.Current && f.ID != fair.ID {
				found = true
				break
			}
		}
		if !found {
			fair.Current = true
		}
		return r.Save(ctx, fair)
	})
}

func (uc *FairUsecase) GetCurrent(ctx context.Context) (domain.Fair, error) {
	return uc.repo.GetCurrent(ctx)
}

func (uc *FairUsecase) List(ctx context.Context) ([]domain.Fair, error) {
	return uc.repo.List(ctx)
}
