package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gctucker/cams/internal/domain"
	"github.com/gctucker/cams/internal/service"
	"github.com/gctucker/cams/internal/usecase"
)

// --- mocks ---

type mockContactableRepo struct {
	entries map[uint]domain.Contactable
	people  map[uint]domain.Person
	orgs    map[uint]domain.Organisation
	members *mockMemberRepo
	nextID  uint
}

func newMockContactableRepo() *mockContactableRepo {
	return &mockContactableRepo{
		entries: map[uint]domain.Contactable{},
		people:  map[uint]domain.Person{},
		orgs:    map[uint]domain.Organisation{},
		nextID:  100,
	}
}

func (m *mockContactableRepo) Get(ctx context.Context, id uint) (domain.Contactable, error) {
	entry, ok := m.entries[id]
	if !ok {
		return domain.Contactable{}, domain.NotFoundError{Resource: "contactable"}
	}
	return entry, nil
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
	if p.ID == 0 {
		m.nextID++
		p.ID = m.nextID
	}
	if p.ContactableID == 0 {
		m.nextID++
		p.ContactableID = m.nextID
	}
	m.people[p.ID] = *p
	return nil
}

func (m *mockContactableRepo) SaveOrganisation(ctx context.Context, o *domain.Organisation, basicName string) error {
	if o.ID == 0 {
		m.nextID++
		o.ID = m.nextID
	}
	if o.ContactableID == 0 {
		m.nextID++
		o.ContactableID = m.nextID
	}
	m.orgs[o.ID] = *o
	return nil
}

func (m *mockContactableRepo) SaveMember(ctx context.Context, mem *domain.Member, basicName string) error {
	if mem.ID == 0 {
		m.nextID++
		mem.ID = m.nextID
	}
	if mem.ContactableID == 0 {
		m.nextID++
		mem.ContactableID = m.nextID
	}
	return nil
}

func (m *mockContactableRepo) InTx(ctx context.Context, fn func(usecase.ContactableRepository, usecase.MemberRepository) error) error {
	return fn(m, m.members)
}

type mockMemberRepo struct {
	members []domain.Member
}

func (m *mockMemberRepo) ListByPerson(ctx context.Context, personID uint) ([]domain.Member, error) {
	var out []domain.Member
	for _, mem := range m.members {
		if mem.PersonID == personID {
			out = append(out, mem)
		}
	}
	return out, nil
}

func (m *mockMemberRepo) ListByOrganisation(ctx context.Context, organisationID uint) ([]domain.Member, error) {
	var out []domain.Member
	for _, mem := range m.members {
		if mem.OrganisationID == organisationID {
			out = append(out, mem)
		}
	}
	return out, nil
}

func (m *mockMemberRepo) FirstByPerson(ctx context.Context, personID uint) (domain.Member, error) {
	for _, mem := range m.members {
		if mem.PersonID == personID {
			return mem, nil
		}
	}
	return domain.Member{}, domain.NotFoundError{Resource: "member"}
}

func (m *mockMemberRepo) FirstByOrganisation(ctx context.Context, organisationID uint) (domain.Member, error) {
	for _, mem := range m.members {
		if mem.OrganisationID == organisationID {
			return mem, nil
		}
	}
	return domain.Member{}, domain.NotFoundError{Resource: "member"}
}

func (m *mockMemberRepo) UpdateStatus(ctx context.Context, memberID uint, status domain.Status) error {
	return nil
}

type mockContactRepo struct {
	byOwner map[uint][]domain.Contact
	nextID  uint
}

func (m *mockContactRepo) FirstByOwner(ctx context.Context, contactableID uint) (domain.Contact, error) {
	cs := m.byOwner[contactableID]
	if len(cs) == 0 {
		return domain.Contact{}, domain.NotFoundError{Resource: "contact"}
	}
	return cs[0], nil
}

func (m *mockContactRepo) ListByOwner(ctx context.Context, contactableID uint) ([]domain.Contact, error) {
	return m.byOwner[contactableID], nil
}

func (m *mockContactRepo) Save(ctx context.Context, c *domain.Contact) error {
	if c.ID == 0 {
		m.nextID++
		c.ID = m.nextID
	}
	m.byOwner[c.ContactableID] = append(m.byOwner[c.ContactableID], *c)
	return nil
}

func (m *mockContactRepo) Delete(ctx context.Context, id uint) error { return nil }

type mockFairRepo struct {
	fairs  []*domain.Fair
	nextID uint
}

func (m *mockFairRepo) List(ctx context.Context) ([]domain.Fair, error) {
	out := make([]domain.Fair, 0, len(m.fairs))
	for _, f := range m.fairs {
		out = append(out, *f)
	}
	return out, nil
}

func (m *mockFairRepo) GetCurrent(ctx context.Context) (domain.Fair, error) {
	for _, f := range m.fairs {
		if f.Current {
			return *f, nil
		}
	}
	return domain.Fair{}, domain.NotFoundError{Resource: "fair"}
}

func (m *mockFairRepo) Save(ctx context.Context, f *domain.Fair) error {
	if f.ID == 0 {
		m.nextID++
		f.ID = m.nextID
		saved := *f
		m.fairs = append(m.fairs, &saved)
		return nil
	}
	for i, existing := range m.fairs {
		if existing.ID == f.ID {
			saved := *f
			m.fairs[i] = &saved
			return nil
		}
	}
	saved := *f
	m.fairs = append(m.fairs, &saved)
	return nil
}

func (m *mockFairRepo) InTx(ctx context.Context, fn func(usecase.FairRepository) error) error {
	return fn(m)
}

type mockGroupRepo struct {
	groups  map[uint]*domain.Group
	boards  map[uint]domain.Board
	entries map[domain.ContactableType][]domain.Contactable
	nextID  uint
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{
		groups:  map[uint]*domain.Group{},
		boards:  map[uint]domain.Board{},
		entries: map[domain.ContactableType][]domain.Contactable{},
		nextID:  100,
	}
}

func (m *mockGroupRepo) Get(ctx context.Context, id uint) (domain.Group, error) {
	g, ok := m.groups[id]
	if !ok {
		return domain.Group{}, domain.NotFoundError{Resource: "group"}
	}
	return *g, nil
}

func (m *mockGroupRepo) List(ctx context.Context) ([]domain.Group, error) {
	var out []domain.Group
	for _, g := range m.groups {
		out = append(out, *g)
	}
	return out, nil
}

func (m *mockGroupRepo) ListByContactable(ctx context.Context, contactableID uint) ([]domain.Group, error) {
	return nil, nil
}

func (m *mockGroupRepo) Save(ctx context.Context, g *domain.Group) error {
	if g.ID == 0 {
		m.nextID++
		g.ID = m.nextID
	}
	saved := *g
	m.groups[g.ID] = &saved
	return nil
}

func (m *mockGroupRepo) SaveRole(ctx context.Context, r *domain.Role) error {
	if r.ID == 0 {
		m.nextID++
		r.ID = m.nextID
	}
	return nil
}

func (m *mockGroupRepo) DeleteRole(ctx context.Context, id uint) error { return nil }

func (m *mockGroupRepo) ListGroupContactables(ctx context.Context, groupID uint, typ domain.ContactableType, status domain.Status) ([]domain.Contactable, error) {
	var out []domain.Contactable
	for _, e := range m.entries[typ] {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockGroupRepo) GetBoard(ctx context.Context, id uint) (domain.Board, error) {
	b, ok := m.boards[id]
	if !ok {
		return domain.Board{}, domain.NotFoundError{Resource: "board"}
	}
	return b, nil
}

func (m *mockGroupRepo) SaveBoard(ctx context.Context, b *domain.Board) error {
	if b.ID == 0 {
		m.nextID++
		b.ID = m.nextID
	}
	m.boards[b.ID] = *b
	return nil
}

func (m *mockGroupRepo) ListBoards(ctx context.Context) ([]domain.Board, error) {
	var out []domain.Board
	for _, b := range m.boards {
		out = append(out, b)
	}
	return out, nil
}

type mockPinRepo struct {
	groups *mockGroupRepo
}

func (m *mockPinRepo) Get(ctx context.Context, id uint) (domain.Group, error) {
	return m.groups.Get(ctx, id)
}

func (m *mockPinRepo) GetBoard(ctx context.Context, id uint) (domain.Board, error) {
	return m.groups.GetBoard(ctx, id)
}

func (m *mockPinRepo) Children(ctx context.Context, parentID uint) ([]domain.Group, error) {
	var out []domain.Group
	for _, g := range m.groups.groups {
		if g.ParentID != nil && *g.ParentID == parentID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *mockPinRepo) CreateCopy(ctx context.Context, src domain.Group, boardID uint) (domain.Group, error) {
	m.groups.nextID++
	copied := src
	copied.ID = m.groups.nextID
	copied.BoardID = &boardID
	m.groups.groups[copied.ID] = &copied
	return copied, nil
}

func (m *mockPinRepo) SetParent(ctx context.Context, id uint, parentID *uint) error {
	g, ok := m.groups.groups[id]
	if !ok {
		return domain.NotFoundError{Resource: "group"}
	}
	g.ParentID = parentID
	return nil
}

func (m *mockPinRepo) InTx(ctx context.Context, fn func(usecase.PinRepository[domain.Group]) error) error {
	return fn(m)
}

type mockInvoiceRepo struct {
	invoices map[uint]domain.Invoice
	nextID   uint
}

func (m *mockInvoiceRepo) Get(ctx context.Context, id uint) (domain.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return domain.Invoice{}, domain.NotFoundError{Resource: "invoice"}
	}
	return inv, nil
}

func (m *mockInvoiceRepo) Save(ctx context.Context, inv *domain.Invoice) error {
	if inv.ID == 0 {
		m.nextID++
		inv.ID = m.nextID
	}
	m.invoices[inv.ID] = *inv
	return nil
}

type mockEventRepo struct {
	events map[uint]domain.Event
}

func (m *mockEventRepo) Get(ctx context.Context, id uint) (domain.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return domain.Event{}, domain.NotFoundError{Resource: "event"}
	}
	return e, nil
}

func (m *mockEventRepo) GetForFair(ctx context.Context, eventID, fairID uint) (domain.Event, error) {
	return m.Get(ctx, eventID)
}

func (m *mockEventRepo) Save(ctx context.Context, e *domain.Event) error {
	if e.ID == 0 {
		e.ID = uint(len(m.events) + 1)
	}
	m.events[e.ID] = *e
	return nil
}

func (m *mockEventRepo) ListActors(ctx context.Context, eventID uint) ([]domain.Actor, error) {
	return nil, nil
}
func (m *mockEventRepo) SaveActor(ctx context.Context, a *domain.Actor) error { return nil }
func (m *mockEventRepo) SaveComment(ctx context.Context, c *domain.EventComment) error {
	return nil
}
func (m *mockEventRepo) ListComments(ctx context.Context, eventID uint) ([]domain.EventComment, error) {
	return nil, nil
}
func (m *mockEventRepo) SaveApplication(ctx context.Context, a *domain.EventApplication) error {
	return nil
}
func (m *mockEventRepo) ListApplications(ctx context.Context, eventID uint) ([]domain.EventApplication, error) {
	return nil, nil
}

// --- fixtures ---

type fixture struct {
	e            *echo.Echo
	contactables *mockContactableRepo
	contacts     *mockContactRepo
	groups       *mockGroupRepo
	invoices     *mockInvoiceRepo
	historyOut   *bytes.Buffer
	historyPath  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	contactables := newMockContactableRepo()
	members := &mockMemberRepo{}
	contactables.members = members
	contacts := &mockContactRepo{byOwner: map[uint][]domain.Contact{}}
	fairs := &mockFairRepo{}
	groups := newMockGroupRepo()
	invoices := &mockInvoiceRepo{invoices: map[uint]domain.Invoice{}}
	events := &mockEventRepo{events: map[uint]domain.Event{}}
	pins := usecase.NewPinUsecase[domain.Group](&mockPinRepo{groups: groups})

	historyOut := &bytes.Buffer{}
	historyPath := filepath.Join(t.TempDir(), "history.log")

	h := NewHandler(
		usecase.NewContactableUsecase(contactables),
		usecase.NewContactResolver(contactables, members, contacts, groups),
		usecase.NewFairUsecase(fairs),
		usecase.NewGroupUsecase(groups, fairs, pins),
		usecase.NewInvoiceUsecase(invoices),
		usecase.NewEventUsecase(events),
		contacts,
		service.NewHistoryService(zap.NewNop(), historyOut, nil),
		service.NewHistoryParser(),
		historyPath,
		nil,
		nil,
	)

	e := echo.New()
	h.RegisterRoutes(e)

	return &fixture{
		e:            e,
		contactables: contactables,
		contacts:     contacts,
		groups:       groups,
		invoices:     invoices,
		historyOut:   historyOut,
		historyPath:  historyPath,
	}
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res := httptest.NewRecorder()
	f.e.ServeHTTP(res, req)
	return res
}

// --- tests ---

func TestGetPerson(t *testing.T) {
	f := newFixture(t)
	f.contactables.people[3] = domain.Person{
		Record:        domain.Record{ID: 3, Status: domain.StatusActive},
		ContactableID: 30,
		FirstName:     "Ada",
		LastName:      "Lovelace",
	}

	res := f.do(http.MethodGet, "/api/v1/people/3", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}

	var person domain.Person
	if err := json.Unmarshal(res.Body.Bytes(), &person); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if person.FullName() != "Ada Lovelace" {
		t.Fatalf("unexpected person %+v", person)
	}

	res = f.do(http.MethodGet, "/api/v1/people/99", nil)
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", res.Code)
	}
}

func TestSavePersonRecordsHistory(t *testing.T) {
	f := newFixture(t)

	res := f.do(http.MethodPost, "/api/v1/people", domain.Person{
		FirstName: "Grace",
		LastName:  "Hopper",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}

	line := f.historyOut.String()
	if !strings.Contains(line, "[CREATE]") || !strings.Contains(line, `last_name: "Hopper"`) {
		t.Fatalf("unexpected history output %q", line)
	}
}

func TestInvoiceTransition(t *testing.T) {
	f := newFixture(t)
	f.invoices.invoices[1] = domain.Invoice{ID: 1, Status: domain.InvoiceNew}

	res := f.do(http.MethodPost, "/api/v1/invoices/1/transition", map[string]any{
		"status": domain.InvoiceBanked,
	})
	if res.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", res.Code)
	}

	res = f.do(http.MethodPost, "/api/v1/invoices/1/transition", map[string]any{
		"status": domain.InvoiceSent,
	})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}

	var inv domain.Invoice
	if err := json.Unmarshal(res.Body.Bytes(), &inv); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if inv.Status != domain.InvoiceSent || inv.Sent == nil {
		t.Fatalf("unexpected invoice %+v", inv)
	}
}

func TestPinGroupOntoLockedBoard(t *testing.T) {
	f := newFixture(t)
	f.groups.groups[1] = &domain.Group{ID: 1, Name: "Committee"}
	f.groups.boards[2] = domain.Board{ID: 2, Status: domain.BoardLocked, Name: "fair-2013"}

	res := f.do(http.MethodPost, "/api/v1/groups/1/pin", map[string]any{"boardId": 2})
	if res.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", res.Code)
	}
}

func TestPinGroup(t *testing.T) {
	f := newFixture(t)
	f.groups.groups[1] = &domain.Group{ID: 1, Name: "Committee"}
	f.groups.boards[2] = domain.Board{ID: 2, Status: domain.BoardOpen, Name: "fair-2013"}

	res := f.do(http.MethodPost, "/api/v1/groups/1/pin", map[string]any{"boardId": 2})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}

	var pinned domain.Group
	if err := json.Unmarshal(res.Body.Bytes(), &pinned); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if pinned.BoardID == nil || *pinned.BoardID != 2 {
		t.Fatalf("copy not assigned to board: %+v", pinned)
	}

	live, _ := f.groups.Get(context.Background(), 1)
	if live.ParentID == nil || *live.ParentID != pinned.ID {
		t.Fatalf("live group not repointed at copy: %+v", live)
	}

	// Same board again is refused.
	res = f.do(http.MethodPost, "/api/v1/groups/1/pin", map[string]any{"boardId": 2})
	if res.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", res.Code)
	}
}

func TestGroupCSVExport(t *testing.T) {
	f := newFixture(t)

	person := domain.Person{
		Record:        domain.Record{ID: 5, Status: domain.StatusActive},
		ContactableID: 50,
		FirstName:     "Mary",
		LastName:      "Seacole",
	}
	f.contactables.people[5] = person
	f.groups.entries[domain.TypePerson] = []domain.Contactable{{
		Record: domain.Record{ID: 50, Status: domain.StatusActive},
		Type:   domain.TypePerson,
		Person: &person,
	}}
	f.contacts.byOwner[50] = []domain.Contact{{
		ContactableID: 50,
		Line1:         "14 Soho Square",
		Town:          "London",
		Email:         "mary@example.org",
	}}

	res := f.do(http.MethodGet, "/api/v1/groups/1/contacts.csv", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}

	body := res.Body.String()
	if !strings.Contains(body, "name,organisation,tier") {
		t.Fatalf("missing header: %q", body)
	}
	if !strings.Contains(body, "Mary Seacole") || !strings.Contains(body, "14 Soho Square") {
		t.Fatalf("missing resolved row: %q", body)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	f := newFixture(t)

	line := service.FormatEntry(service.HistoryEntry{
		Time:       time.Date(2013, 6, 1, 9, 30, 0, 0, time.Local),
		User:       "admin",
		ObjectType: "Fair",
		ObjectID:   1,
		Action:     service.ActionCreate,
	})
	if err := os.WriteFile(f.historyPath, []byte(line+"\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	res := f.do(http.MethodGet, "/api/v1/history", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}

	var entries []service.HistoryEntry
	if err := json.Unmarshal(res.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ObjectType != "Fair" || entries[0].User != "admin" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestSavePersonDefaultsActive(t *testing.T) {
	f := newFixture(t)

	res := f.do(http.MethodPost, "/api/v1/people", map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", res.Code, res.Body.String())
	}

	var person domain.Person
	if err := json.Unmarshal(res.Body.Bytes(), &person); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if got := f.contactables.people[person.ID].Status; got != domain.StatusActive {
		t.Fatalf("expected new person to be active, got %s", got)
	}
}

func TestGroupCSVKeyIncludesFair(t *testing.T) {
	if got := groupCSVKey(3, 7); got != "cams:groupcsv:3:fair:7" {
		t.Fatalf("unexpected key %q", got)
	}
	if groupCSVKey(3, 7) == groupCSVKey(3, 8) {
		t.Fatal("key must change with the current fair")
	}
}
