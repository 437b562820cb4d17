package usecase

import (
	"context"

	"github.com/gctucker/cams/internal/domain"
)

// ContactableRepository defines persistence for address book entries. The
// Save methods persist the concrete row together with its contactable row
// (type tag and cached basic name) in one write.
type ContactableRepository interface {
	Get(ctx context.Context, id uint) (domain.Contactable, error)
	GetPerson(ctx context.Context, id uint) (domain.Person, error)
	GetOrganisation(ctx context.Context, id uint) (domain.Organisation, error)
	SavePerson(ctx context.Context, p *domain.Person, basicName string) error
	SaveOrganisation(ctx context.Context, o *domain.Organisation, basicName string) error
	SaveMember(ctx context.Context, m *domain.Member, basicName string) error
	// InTx runs fn inside one transaction, handing it repositories bound
	// to that transaction so member status propagation commits or rolls
	// back together with the triggering save.
	InTx(ctx context.Context, fn func(ContactableRepository, MemberRepository) error) error
}

// MemberRepository defines lookup and status writes for membership rows.
type MemberRepository interface {
	ListByPerson(ctx context.Context, personID uint) ([]domain.Member, error)
	ListByOrganisation(ctx context.Context, organisationID uint) ([]domain.Member, error)
	FirstByPerson(ctx context.Context, personID uint) (domain.Member, error)
	FirstByOrganisation(ctx context.Context, organisationID uint) (domain.Member, error)
	UpdateStatus(ctx context.Context, memberID uint, status domain.Status) error
}

// ContactRepository defines persistence for contact details keyed by the
// owning contactable.
type ContactRepository interface {
	FirstByOwner(ctx context.Context, contactableID uint) (domain.Contact, error)
	ListByOwner(ctx context.Context, contactableID uint) ([]domain.Contact, error)
	Save(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id uint) error
}

// FairRepository defines persistence for fairs.
type FairRepository interface {
	List(ctx context.Context) ([]domain.Fair, error)
	GetCurrent(ctx context.Context) (domain.Fair, error)
	Save(ctx context.Context, f *domain.Fair) error
	InTx(ctx context.Context, fn func(FairRepository) error) error
}

// GroupRepository defines persistence for groups and their roles.
type GroupRepository interface {
	Get(ctx context.Context, id uint) (domain.Group, error)
	List(ctx context.Context) ([]domain.Group, error)
	ListByContactable(ctx context.Context, contactableID uint) ([]domain.Group, error)
	Save(ctx context.Context, g *domain.Group) error
	SaveRole(ctx context.Context, r *domain.Role) error
	DeleteRole(ctx context.Context, id uint) error
	// ListGroupContactables returns the group's members of one concrete
	// type with the given status, people ordered by last name and
	// organisations by name.
	ListGroupContactables(ctx context.Context, groupID uint, typ domain.ContactableType, status domain.Status) ([]domain.Contactable, error)
	GetBoard(ctx context.Context, id uint) (domain.Board, error)
	SaveBoard(ctx context.Context, b *domain.Board) error
	ListBoards(ctx context.Context) ([]domain.Board, error)
}

// InvoiceRepository defines persistence for invoices.
type InvoiceRepository interface {
	Get(ctx context.Context, id uint) (domain.Invoice, error)
	Save(ctx context.Context, inv *domain.Invoice) error
}

// EventRepository defines persistence for the programme.
type EventRepository interface {
	Get(ctx context.Context, id uint) (domain.Event, error)
	// GetForFair returns the occurrence of the event (by id or master id)
	// scoped to the given fair.
	GetForFair(ctx context.Context, eventID, fairID uint) (domain.Event, error)
	Save(ctx context.Context, e *domain.Event) error
	ListActors(ctx context.Context, eventID uint) ([]domain.Actor, error)
	SaveActor(ctx context.Context, a *domain.Actor) error
	SaveComment(ctx context.Context, c *domain.EventComment) error
	ListComments(ctx context.Context, eventID uint) ([]domain.EventComment, error)
	SaveApplication(ctx context.Context, a *domain.EventApplication) error
	ListApplications(ctx context.Context, eventID uint) ([]domain.EventApplication, error)
}
