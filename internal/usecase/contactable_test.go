package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/gctucker/cams/internal/domain"
)

type mockContactableRepo struct {
	people  map[uint]domain.Person
	orgs    map[uint]domain.Organisation
	names   map[uint]string // contactable id -> basic name
	members *mockMemberRepo

	// txMembers, when set, is the member repository handed out by InTx
	// instead of members, standing in for a transaction-bound one.
	// txErr makes the transaction fail after fn has run.
	txMembers *mockMemberRepo
	txErr     error
}

func newMockContactableRepo() *mockContactableRepo {
	return &mockContactableRepo{
		people: map[uint]domain.Person{},
		orgs:   map[uint]domain.Organisation{},
		names:  map[uint]string{},
	}
}

func (m *mockContactableRepo) Get(ctx context.Context, id uint) (domain.Contactable, error) {
	return domain.Contactable{}, domain.NotFoundError{Resource: "contactable"}
}

func (m *mockContactableRepo) GetPerson(ctx context.Context, id uint) (domain.Person, error) {
	p, ok := m.people[id]
	if !ok {
		return domain.Person{}, domain.NotFoundError{Resource: "person"}
	}
	return p, nil
}

func (m *mockContactableRepo) GetOrganisation(ctx context.Context, id uint) (domain.Organisation, error) {
	o, ok := m.orgs[id]
	if !ok {
		return domain.Organisation{}, domain.NotFoundError{Resource: "organisation"}
	}
	return o, nil
}

func (m *mockContactableRepo) SavePerson(ctx context.Context, p *domain.Person, basicName string) error {
	m.people[p.ID] = *p
	m.names[p.ContactableID] = basicName
	return nil
}

func (m *mockContactableRepo) SaveOrganisation(ctx context.Context, o *domain.Organisation, basicName string) error {
	m.orgs[o.ID] = *o
	m.names[o.ContactableID] = basicName
	return nil
}

func (m *mockContactableRepo) SaveMember(ctx context.Context, mb *domain.Member, basicName string) error {
	m.names[mb.ContactableID] = basicName
	return nil
}

func (m *mockContactableRepo) InTx(ctx context.Context, fn func(ContactableRepository, MemberRepository) error) error {
	members := MemberRepository(m.members)
	if m.txMembers != nil {
		members = m.txMembers
	}
	if err := fn(m, members); err != nil {
		return err
	}
	return m.txErr
}

type mockMemberRepo struct {
	members       map[uint]domain.Member
	statusWrites  int
	statusUpdates map[uint]domain.Status
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: map[uint]domain.Member{}, statusUpdates: map[uint]domain.Status{}}
}

func (m *mockMemberRepo) ListByPerson(ctx context.Context, personID uint) ([]domain.Member, error) {
	var out []domain.Member
	for _, mb := range m.members {
		if mb.PersonID == personID {
			out = append(out, mb)
		}
	}
	return out, nil
}

func (m *mockMemberRepo) ListByOrganisation(ctx context.Context, organisationID uint) ([]domain.Member, error) {
	var out []domain.Member
	for _, mb := range m.members {
		if mb.OrganisationID == organisationID {
			out = append(out, mb)
		}
	}
	return out, nil
}

func (m *mockMemberRepo) FirstByPerson(ctx context.Context, personID uint) (domain.Member, error) {
	for _, mb := range m.members {
		if mb.PersonID == personID {
			return mb, nil
		}
	}
	return domain.Member{}, domain.NotFoundError{Resource: "member"}
}

func (m *mockMemberRepo) FirstByOrganisation(ctx context.Context, organisationID uint) (domain.Member, error) {
	for _, mb := range m.members {
		if mb.OrganisationID == organisationID {
			return mb, nil
		}
	}
	return domain.Member{}, domain.NotFoundError{Resource: "member"}
}

func (m *mockMemberRepo) UpdateStatus(ctx context.Context, memberID uint, status domain.Status) error {
	mb := m.members[memberID]
	mb.Status = status
	m.members[memberID] = mb
	m.statusWrites++
	m.statusUpdates[memberID] = status
	return nil
}

func activePair(repo *mockContactableRepo, members *mockMemberRepo) (domain.Person, domain.Organisation, domain.Member) {
	p := domain.Person{
		Record:        domain.Record{ID: 1, Status: domain.StatusActive},
		ContactableID: 10,
		FirstName:     "Ada",
		LastName:      "Lovelace",
	}
	o := domain.Organisation{
		Record:        domain.Record{ID: 1, Status: domain.StatusActive},
		ContactableID: 20,
		Name:          "Analytical Engines",
	}
	mb := domain.Member{
		Record:         domain.Record{ID: 1, Status: domain.StatusActive},
		ContactableID:  30,
		OrganisationID: o.ID,
		PersonID:       p.ID,
	}
	repo.people[p.ID] = p
	repo.orgs[o.ID] = o
	members.members[mb.ID] = mb
	return p, o, mb
}

func TestSavePersonPropagatesStatusToMembers(t *testing.T) {
	repo := newMockContactableRepo()
	members := newMockMemberRepo()
	repo.members = members
	uc := NewContactableUsecase(repo)

	p, _, mb := activePair(repo, members)

	p.Status = domain.StatusDisabled
	if err := uc.SavePerson(context.Background(), &p); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if got := members.members[mb.ID].Status; got != domain.StatusDisabled {
		t.Fatalf("expected member disabled, got %s", got)
	}
	if members.statusWrites != 1 {
		t.Fatalf("expected one status write, got %d", members.statusWrites)
	}
}

func TestSavePersonSkipsUnchangedMembers(t *testing.T) {
	repo := newMockContactableRepo()
	members := newMockMemberRepo()
	repo.members = members
	uc := NewContactableUsecase(repo)

	p, _, _ := activePair(repo, members)

	// Member is already ACTIVE, so a save without a status change must not
	// rewrite it.
	if err := uc.SavePerson(context.Background(), &p); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if members.statusWrites != 0 {
		t.Fatalf("expected no status writes, got %d", members.statusWrites)
	}
}

func TestSaveOrganisationPropagatesNew(t *testing.T) {
	repo := newMockContactableRepo()
	members := newMockMemberRepo()
	repo.members = members
	uc := NewContactableUsecase(repo)

	_, o, mb := activePair(repo, members)

	o.Status = domain.StatusNew
	if err := uc.SaveOrganisation(context.Background(), &o); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if got := members.members[mb.ID].Status; got != domain.StatusNew {
		t.Fatalf("expected member new, got %s", got)
	}
}

func TestSavePersonRefreshesBasicName(t *testing.T) {
	repo := newMockContactableRepo()
	members := newMockMemberRepo()
	repo.members = members
	uc := NewContactableUsecase(repo)

	p, _, _ := activePair(repo, members)
	p.LastName = "King"

	if err := uc.SavePerson(context.Background(), &p); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if got := repo.names[p.ContactableID]; got != "Ada King" {
		t.Fatalf("expected basic name refresh, got %q", got)
	}
}

func TestSaveMemberDerivesStatus(t *testing.T) {
	repo := newMockContactableRepo()
	members := newMockMemberRepo()
	repo.members = members
	uc := NewContactableUsecase(repo)

	p, o, mb := activePair(repo, members)
	o.Status = domain.StatusDisabled
	repo.orgs[o.ID] = o

	mb.Status = domain.StatusActive
	if err := uc.SaveMember(context.Background(), &mb); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if mb.Status != domain.StatusDisabled {
		t.Fatalf("expected derived status disabled, got %s", mb.Status)
	}
	if got := repo.names[mb.ContactableID]; got != p.FullName() {
		t.Fatalf("expected member basic name %q, got %q", p.FullName(), got)
	}
}

func TestGetPersonAndOrganisation(t *testing.T) {
	repo := newMockContactableRepo()
	members := newMockMemberRepo()
	repo.members = members
	uc := NewContactableUsecase(repo)

	p, o, _ := activePair(repo, members)

	got, err := uc.GetPerson(context.Background(), p.ID)
	if err != nil || got.LastName != p.LastName {
		t.Fatalf("GetPerson = %+v, %v", got, err)
	}
	gotOrg, err := uc.GetOrganisation(context.Background(), o.ID)
	if err != nil || gotOrg.Name != o.Name {
		t.Fatalf("GetOrganisation = %+v, %v", gotOrg, err)
	}
	if _, err := uc.GetPerson(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSavePersonMemberWritesShareTransaction(t *testing.T) {
	repo := newMockContactableRepo()
	members := newMockMemberRepo()
	repo.members = members
	uc := NewContactableUsecase(repo)

	p, _, mb := activePair(repo, members)

	// The transaction hands out its own member repository and then fails
	// to commit. The status write must land there, never on the outer
	// repository.
	txMembers := newMockMemberRepo()
	txMembers.members[mb.ID] = mb
	repo.txMembers = txMembers
	repo.txErr = errors.New("commit failed")

	p.Status = domain.StatusDisabled
	if err := uc.SavePerson(context.Background(), &p); err == nil {
		t.Fatal("expected the transaction error")
	}

	if members.statusWrites != 0 {
		t.Fatalf("member status written outside the transaction: %d writes", members.statusWrites)
	}
	if got := txMembers.statusUpdates[mb.ID]; got != domain.StatusDisabled {
		t.Fatalf("expected the write on the transaction repository, got %s", got)
	}
}
