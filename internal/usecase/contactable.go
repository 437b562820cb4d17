package usecase

import (
	"context"

	"github.com/gctucker/cams/internal/domain"
)

type ContactableUsecase struct {
	repo ContactableRepository
}

func NewContactableUsecase(repo ContactableRepository) *ContactableUsecase {
	return &ContactableUsecase{repo: repo}
}

// SavePerson persists the person, refreshes the cached basic name and
// propagates the person's status to directly referencing members. The
// propagation is one hop: a member write never triggers further saves.
// All writes, member status updates included, run in one transaction.
func (uc *ContactableUsecase) SavePerson(ctx context.Context, p *domain.Person) error {
	return uc.repo.InTx(ctx, func(r ContactableRepository, mr MemberRepository) error {
		if err := r.SavePerson(ctx, p, p.FullName()); err != nil {
			return err
		}
		members, err := mr.ListByPerson(ctx, p.ID)
		if err != nil {
			return err
		}
		return propagate(ctx, r, mr, members)
	})
}

// SaveOrganisation mirrors SavePerson for organisations.
func (uc *ContactableUsecase) SaveOrganisation(ctx context.Context, o *domain.Organisation) error {
	return uc.repo.InTx(ctx, func(r ContactableRepository, mr MemberRepository) error {
		if err := r.SaveOrganisation(ctx, o, o.Name); err != nil {
			return err
		}
		members, err := mr.ListByOrganisation(ctx, o.ID)
		if err != nil {
			return err
		}
		return propagate(ctx, r, mr, members)
	})
}

// SaveMember persists a membership row. The member's basic name mirrors the
// person's; its status is derived, not taken from the input.
func (uc *ContactableUsecase) SaveMember(ctx context.Context, m *domain.Member) error {
	person, err := uc.repo.GetPerson(ctx, m.PersonID)
	if err != nil {
		return err
	}
	org, err := uc.repo.GetOrganisation(ctx, m.OrganisationID)
	if err != nil {
		return err
	}
	m.Status = domain.DeriveMemberStatus(org.Status, person.Status, m.Status)
	return uc.repo.SaveMember(ctx, m, person.FullName())
}

func (uc *ContactableUsecase) Get(ctx context.Context, id uint) (domain.Contactable, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *ContactableUsecase) GetPerson(ctx context.Context, id uint) (domain.Person, error) {
	return uc.repo.GetPerson(ctx, id)
}

func (uc *ContactableUsecase) GetOrganisation(ctx context.Context, id uint) (domain.Organisation, error) {
	return uc.repo.GetOrganisation(ctx, id)
}

// propagate recomputes each member's derived status against both referenced
// sides and writes only the rows whose value changed. The repositories are
// the transaction-bound ones handed out by InTx.
func propagate(ctx context.Context, r ContactableRepository, mr MemberRepository, members []domain.Member) error {
	for _, m := range members {
		person, err := r.GetPerson(ctx, m.PersonID)
		if err != nil {
			return err
		}
		org, err := r.GetOrganisation(ctx, m.OrganisationID)
		if err != nil {
			return err
		}
		derived := domain.DeriveMemberStatus(org.Status, person.Status, m.Status)
		if derived != m.Status {
			if err := mr.UpdateStatus(ctx, m.ID, derived); err != nil {
				return err
			}
		}
	}
	return nil
}
