package usecase

import (
	"context"
	"errors"
	"iter"

	"github.com/gctucker/cams/internal/domain"
)

// ContactTier names the fallback level a contact lookup matched at.
type ContactTier string

const (
	TierPerson ContactTier = "person"
	TierMember ContactTier = "member"
	TierOrg    ContactTier = "org"
)

// ResolvedContact is one contact lookup result. Person is nil when the
// entry resolved for an organisation at its own tier; OrgName is empty when
// a person matched directly.
type ResolvedContact struct {
	Person  *domain.Person
	Tier    ContactTier
	OrgName string
	Contact domain.Contact
}

// ContactResolver finds the effective contact details for an entity by
// falling back through the ownership chain: the entity's own contact, its
// membership's contact, then the other side of the membership.
type ContactResolver struct {
	contactables ContactableRepository
	members      MemberRepository
	contacts     ContactRepository
	groups       GroupRepository
}

func NewContactResolver(
	contactables ContactableRepository,
	members MemberRepository,
	contacts ContactRepository,
	groups GroupRepository,
) *ContactResolver {
	return &ContactResolver{
		contactables: contactables,
		members:      members,
		contacts:     contacts,
		groups:       groups,
	}
}

// Resolve returns the best available contact for the entity, or ErrNotFound
// when no tier yields one.
func (cr *ContactResolver) Resolve(ctx context.Context, entity domain.Contactable) (ResolvedContact, error) {
	switch entity.Type {
	case domain.TypePerson:
		if entity.Person == nil {
			return ResolvedContact{}, domain.NotFoundError{Resource: "person"}
		}
		return cr.resolvePerson(ctx, *entity.Person)
	case domain.TypeOrganisation:
		if entity.Organisation == nil {
			return ResolvedContact{}, domain.NotFoundError{Resource: "organisation"}
		}
		return cr.resolveOrganisation(ctx, *entity.Organisation)
	case domain.TypeMember:
		if entity.Member == nil {
			return ResolvedContact{}, domain.NotFoundError{Resource: "member"}
		}
		return cr.resolveMember(ctx, *entity.Member)
	}
	return ResolvedContact{}, domain.NotFoundError{Resource: "contact"}
}

func (cr *ContactResolver) resolvePerson(ctx context.Context, person domain.Person) (ResolvedContact, error) {
	if c, err := cr.contacts.FirstByOwner(ctx, person.ContactableID); err == nil {
		return ResolvedContact{Person: &person, Tier: TierPerson, Contact: c}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return ResolvedContact{}, err
	}

	member, err := cr.members.FirstByPerson(ctx, person.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ResolvedContact{}, domain.NotFoundError{Resource: "contact"}
		}
		return ResolvedContact{}, err
	}
	if member.Status != domain.StatusActive {
		return ResolvedContact{}, domain.NotFoundError{Resource: "contact"}
	}
	org, err := cr.contactables.GetOrganisation(ctx, member.OrganisationID)
	if err != nil {
		return ResolvedContact{}, err
	}

	if c, err := cr.contacts.FirstByOwner(ctx, member.ContactableID); err == nil {
		return ResolvedContact{Person: &person, Tier: TierMember, OrgName: org.Name, Contact: c}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return ResolvedContact{}, err
	}

	if c, err := cr.contacts.FirstByOwner(ctx, org.ContactableID); err == nil {
		return ResolvedContact{Person: &person, Tier: TierOrg, OrgName: org.Name, Contact: c}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return ResolvedContact{}, err
	}

	return ResolvedContact{}, domain.NotFoundError{Resource: "contact"}
}

func (cr *ContactResolver) resolveOrganisation(ctx context.Context, org domain.Organisation) (ResolvedContact, error) {
	if c, err := cr.contacts.FirstByOwner(ctx, org.ContactableID); err == nil {
		return ResolvedContact{Tier: TierOrg, OrgName: org.Name, Contact: c}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return ResolvedContact{}, err
	}

	member, err := cr.members.FirstByOrganisation(ctx, org.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ResolvedContact{}, domain.NotFoundError{Resource: "contact"}
		}
		return ResolvedContact{}, err
	}
	person, err := cr.contactables.GetPerson(ctx, member.PersonID)
	if err != nil {
		return ResolvedContact{}, err
	}

	if c, err := cr.contacts.FirstByOwner(ctx, member.ContactableID); err == nil {
		return ResolvedContact{Person: &person, Tier: TierMember, OrgName: org.Name, Contact: c}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return ResolvedContact{}, err
	}

	if c, err := cr.contacts.FirstByOwner(ctx, person.ContactableID); err == nil {
		return ResolvedContact{Person: &person, Tier: TierPerson, OrgName: org.Name, Contact: c}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return ResolvedContact{}, err
	}

	return ResolvedContact{}, domain.NotFoundError{Resource: "contact"}
}

func (cr *ContactResolver) resolveMember(ctx context.Context, member domain.Member) (ResolvedContact, error) {
	org, err := cr.contactables.GetOrganisation(ctx, member.OrganisationID)
	if err != nil {
		return ResolvedContact{}, err
	}
	person, err := cr.contactables.GetPerson(ctx, member.PersonID)
	if err != nil {
		return ResolvedContact{}, err
	}

	if c, err := cr.contacts.FirstByOwner(ctx, member.ContactableID); err == nil {
		return ResolvedContact{Person: &person, Tier: TierMember, OrgName: org.Name, Contact: c}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return ResolvedContact{}, err
	}

	if c, err := cr.contacts.FirstByOwner(ctx, org.ContactableID); err == nil {
		return ResolvedContact{Person: &person, Tier: TierOrg, OrgName: org.Name, Contact: c}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return ResolvedContact{}, err
	}

	return ResolvedContact{}, domain.NotFoundError{Resource: "contact"}
}

// GroupContacts yields the resolvable contacts of a group's active members,
// people first ordered by last name, then organisations ordered by name.
// Members without a contact at any tier are skipped. The sequence is lazy
// and restartable; a repository failure is yielded once and ends the walk.
func (cr *ContactResolver) GroupContacts(ctx context.Context, groupID uint) iter.Seq2[ResolvedContact, error] {
	return func(yield func(ResolvedContact, error) bool) {
		for _, typ := range []domain.ContactableType{domain.TypePerson, domain.TypeOrganisation} {
			entries, err := cr.groups.ListGroupContactables(ctx, groupID, typ, domain.StatusActive)
			if err != nil {
				yield(ResolvedContact{}, err)
				return
			}
			for _, e := range entries {
				rc, err := cr.Resolve(ctx, e)
				if err != nil {
					if errors.Is(err, domain.ErrNotFound) {
						continue
					}
					yield(ResolvedContact{}, err)
					return
				}
				if !yield(rc, nil) {
					return
				}
			}
		}
	}
}
