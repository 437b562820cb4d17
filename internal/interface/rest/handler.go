package rest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gctucker/cams/internal/domain"
	"github.com/gctucker/cams/internal/logger"
	"github.com/gctucker/cams/internal/metrics"
	"github.com/gctucker/cams/internal/service"
	"github.com/gctucker/cams/internal/usecase"
)

// groupCSVTTL is how long a rendered group contact export stays cached, in
// seconds.
const groupCSVTTL = 300

type Handler struct {
	contactables *usecase.ContactableUsecase
	resolver     *usecase.ContactResolver
	fairs        *usecase.FairUsecase
	groups       *usecase.GroupUsecase
	invoices     *usecase.InvoiceUsecase
	events       *usecase.EventUsecase
	contacts     usecase.ContactRepository
	history      *service.HistoryService
	parser       *service.HistoryParser
	historyPath  string
	mc           *memcache.Client
	rdb          *redis.Client
	upgrader     websocket.Upgrader
}

func NewHandler(
	contactables *usecase.ContactableUsecase,
	resolver *usecase.ContactResolver,
	fairs *usecase.FairUsecase,
	groups *usecase.GroupUsecase,
	invoices *usecase.InvoiceUsecase,
	events *usecase.EventUsecase,
	contacts usecase.ContactRepository,
	history *service.HistoryService,
	parser *service.HistoryParser,
	historyPath string,
	mc *memcache.Client,
	rdb *redis.Client,
) *Handler {
	return &Handler{
		contactables: contactables,
		resolver:     resolver,
		fairs:        fairs,
		groups:       groups,
		invoices:     invoices,
		events:       events,
		contacts:     contacts,
		history:      history,
		parser:       parser,
		historyPath:  historyPath,
		mc:           mc,
		rdb:          rdb,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/contactables/:id", h.handleGetContactable)
	api.GET("/contactables/:id/contact", h.handleResolveContact)
	api.GET("/contactables/:id/groups", h.handleCurrentGroups)
	api.GET("/contactables/:id/contacts", h.handleListContacts)

	api.GET("/people/:id", h.handleGetPerson)
	api.POST("/people", h.handleSavePerson)
	api.GET("/organisations/:id", h.handleGetOrganisation)
	api.POST("/organisations", h.handleSaveOrganisation)
	api.POST("/members", h.handleSaveMember)

	api.POST("/contacts", h.handleSaveContact)
	api.DELETE("/contacts/:id", h.handleDeleteContact)

	api.GET("/fairs", h.handleListFairs)
	api.GET("/fairs/current", h.handleCurrentFair)
	api.POST("/fairs", h.handleSaveFair)

	api.GET("/groups", h.handleListGroups)
	api.GET("/groups/:id", h.handleGetGroup)
	api.POST("/groups", h.handleSaveGroup)
	api.POST("/groups/:id/roles", h.handleSaveRole)
	api.DELETE("/roles/:id", h.handleDeleteRole)
	api.GET("/groups/:id/contacts.csv", h.handleGroupCSV)
	api.POST("/groups/:id/pin", h.handlePinGroup)
	api.GET("/groups/:id/versions", h.handleGroupVersions)

	api.GET("/boards", h.handleListBoards)
	api.POST("/boards", h.handleSaveBoard)

	api.GET("/invoices/:id", h.handleGetInvoice)
	api.POST("/invoices", h.handleSaveInvoice)
	api.POST("/invoices/:id/transition", h.handleInvoiceTransition)
	api.PUT("/invoices/:id/status", h.handleInvoiceSetStatus)

	api.GET("/events/:id", h.handleGetEvent)
	api.POST("/events", h.handleSaveEvent)
	api.GET("/events/:id/actors", h.handleListActors)
	api.POST("/events/:id/actors", h.handleSaveActor)
	api.GET("/events/:id/comments", h.handleListComments)
	api.POST("/events/:id/comments", h.handleSaveComment)
	api.GET("/events/:id/applications", h.handleListApplications)
	api.POST("/events/:id/applications", h.handleSaveApplication)

	api.GET("/history", h.handleHistory)
	api.GET("/history/stream", h.handleHistoryStream)
}

// jsonError maps domain errors onto HTTP statuses: missing resources are
// 404, rejected state changes 409, anything else 500.
func jsonError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrBoardLocked),
		errors.Is(err, domain.ErrMalformedChain):
		status = http.StatusConflict
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// requestUser is the acting user recorded in history lines. Authentication
// is handled upstream; the header is trusted as-is.
func requestUser(c echo.Context) string {
	if user := c.Request().Header.Get("X-User"); user != "" {
		return user
	}
	return "anonymous"
}

// record emits a history entry for a completed write.
func (h *Handler) record(ctx context.Context, c echo.Context, action, objectType string, objectID uint, fields []service.Field) {
	if h.history == nil {
		return
	}
	if action == service.ActionCreate {
		h.history.Create(ctx, requestUser(c), objectType, objectID, fields)
	} else {
		h.history.Edit(ctx, requestUser(c), objectType, objectID, fields)
	}
}

func ref(objectType string, id uint) string {
	return objectType + ":" + strconv.FormatUint(uint64(id), 10)
}

func (h *Handler) handleGetContactable(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	entry, err := h.contactables.Get(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *Handler) handleResolveContact(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	entry, err := h.contactables.Get(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}

	resolved, err := h.resolver.Resolve(ctx, entry)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"tier":    resolved.Tier,
		"orgName": resolved.OrgName,
		"contact": resolved.Contact,
	})
}

func (h *Handler) handleCurrentGroups(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	groups, err := h.groups.CurrentGroups(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"groups": groups})
}

func (h *Handler) handleListContacts(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	contacts, err := h.contacts.ListByOwner(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, contacts)
}

func (h *Handler) handleGetPerson(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	person, err := h.contactables.GetPerson(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, person)
}

func (h *Handler) handleSavePerson(c echo.Context) error {
	ctx := c.Request().Context()

	var person domain.Person
	if err := c.Bind(&person); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	action := service.ActionEdit
	if person.ID == 0 {
		action = service.ActionCreate
	}

	if err := h.contactables.SavePerson(ctx, &person); err != nil {
		return jsonError(c, err)
	}

	h.record(ctx, c, action, "Person", person.ID, []service.Field{
		{Name: "first_name", Value: person.FirstName},
		{Name: "last_name", Value: person.LastName},
	})

	return c.JSON(http.StatusOK, person)
}

func (h *Handler) handleGetOrganisation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	org, err := h.contactables.GetOrganisation(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, org)
}

func (h *Handler) handleSaveOrganisation(c echo.Context) error {
	ctx := c.Request().Context()

	var org domain.Organisation
	if err := c.Bind(&org); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	action := service.ActionEdit
	if org.ID == 0 {
		action = service.ActionCreate
	}

	if err := h.contactables.SaveOrganisation(ctx, &org); err != nil {
		return jsonError(c, err)
	}

	h.record(ctx, c, action, "Organisation", org.ID, []service.Field{
		{Name: "name", Value: org.Name},
	})

	return c.JSON(http.StatusOK, org)
}

func (h *Handler) handleSaveMember(c echo.Context) error {
	ctx := c.Request().Context()

	var member domain.Member
	if err := c.Bind(&member); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	action := service.ActionEdit
	if member.ID == 0 {
		action = service.ActionCreate
	}

	if err := h.contactables.SaveMember(ctx, &member); err != nil {
		return jsonError(c, err)
	}

	h.record(ctx, c, action, "Member", member.ID, []service.Field{
		{Name: "organisation", Value: ref("Organisation", member.OrganisationID), Ref: true},
		{Name: "person", Value: ref("Person", member.PersonID), Ref: true},
	})

	return c.JSON(http.StatusOK, member)
}

func (h *Handler) handleSaveContact(c echo.Context) error {
	ctx := c.Request().Context()

	var contact domain.Contact
	if err := c.Bind(&contact); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	action := service.ActionEdit
	if contact.ID == 0 {
		action = service.ActionCreate
	}

	if err := h.contacts.Save(ctx, &contact); err != nil {
		return jsonError(c, err)
	}

	h.record(ctx, c, action, "Contact", contact.ID, []service.Field{
		{Name: "summary", Value: contact.Summary()},
	})

	return c.JSON(http.StatusOK, contact)
}

func (h *Handler) handleDeleteContact(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.contacts.Delete(ctx, id); err != nil {
		return jsonError(c, err)
	}

	if h.history != nil {
		h.history.Delete(ctx, requestUser(c), "Contact", id)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) handleListFairs(c echo.Context) error {
	fairs, err := h.fairs.List(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, fairs)
}

func (h *Handler) handleCurrentFair(c echo.Context) error {
	fair, err := h.fairs.GetCurrent(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, fair)
}

func (h *Handler) handleSaveFair(c echo.Context) error {
	ctx := c.Request().Context()

	var fair domain.Fair
	if err := c.Bind(&fair); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	action := service.ActionEdit
	if fair.ID == 0 {
		action = service.ActionCreate
	}

	if err := h.fairs.Save(ctx, &fair); err != nil {
		return jsonError(c, err)
	}

	h.record(ctx, c, action, "Fair", fair.ID, []service.Field{
		{Name: "date", Value: fair.Date.Format("2006-01-02")},
		{Name: "current", Value: strconv.FormatBool(fair.Current)},
	})

	return c.JSON(http.StatusOK, fair)
}

func (h *Handler) handleListGroups(c echo.Context) error {
	groups, err := h.groups.List(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, groups)
}

func (h *Handler) handleGetGroup(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	group, err := h.groups.Get(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, group)
}

func (h *Handler) handleSaveGroup(c echo.Context) error {
	ctx := c.Request().Context()

	var group domain.Group
	if err := c.Bind(&group); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	action := service.ActionEdit
	if group.ID == 0 {
		action = service.ActionCreate
	}

	if err := h.groups.Save(ctx, &group); err != nil {
		return jsonError(c, err)
	}

	h.record(ctx, c, action, "Group", group.ID, []service.Field{
		{Name: "name", Value: group.Name},
	})

	return c.JSON(http.StatusOK, group)
}

func (h *Handler) handleSaveRole(c echo.Context) error {
	ctx := c.Request().Context()

	groupID, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var role domain.Role
	if err := c.Bind(&role); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	role.GroupID = groupID

	action := service.ActionEdit
	if role.ID == 0 {
		action = service.ActionCreate
	}

	if err := h.groups.SaveRole(ctx, &role); err != nil {
		return jsonError(c, err)
	}

	h.record(ctx, c, action, "Role", role.ID, []service.Field{
		{Name: "contactable", Value: ref("Contactable", role.ContactableID), Ref: true},
		{Name: "group", Value: ref("Group", role.GroupID), Ref: true},
	})

	return c.JSON(http.StatusOK, role)
}

func (h *Handler) handleDeleteRole(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.groups.DeleteRole(ctx, id); err != nil {
		return jsonError(c, err)
	}

	if h.history != nil {
		h.history.Delete(ctx, requestUser(c), "Role", id)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// groupCSVKey builds the memcached key for a rendered group export. The
// current fair is part of the key so a fair change never serves the
// previous fair's roster for the cache TTL.
func groupCSVKey(groupID, fairID uint) string {
	return "cams:groupcsv:" + strconv.FormatUint(uint64(groupID), 10) +
		":fair:" + strconv.FormatUint(uint64(fairID), 10)
}

// handleGroupCSV streams the group's resolved contacts as CSV. The rendered
// document is cached in memcached so repeated exports of a stable group do
// not re-run the resolver.
func (h *Handler) handleGroupCSV(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	fairID := uint(0)
	if fair, err := h.fairs.GetCurrent(ctx); err == nil {
		fairID = fair.ID
	}
	cacheKey := groupCSVKey(id, fairID)
	if h.mc != nil {
		if item, err := h.mc.Get(cacheKey); err == nil {
			metrics.ContactExportsTotal.WithLabelValues("hit").Inc()
			return c.Blob(http.StatusOK, "text/csv", item.Value)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"name", "organisation", "tier", "address", "email", "telephone", "mobile"})

	for rc, err := range h.resolver.GroupContacts(ctx, id) {
		if err != nil {
			return jsonError(c, err)
		}
		name := rc.OrgName
		if rc.Person != nil {
			name = rc.Person.FullName()
		}
		w.Write([]string{
			name,
			rc.OrgName,
			string(rc.Tier),
			rc.Contact.Address(", "),
			rc.Contact.Email,
			rc.Contact.Telephone,
			rc.Contact.Mobile,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return jsonError(c, err)
	}

	if h.mc != nil {
		err := h.mc.Set(&memcache.Item{Key: cacheKey, Value: buf.Bytes(), Expiration: groupCSVTTL})
		if err != nil {
			logger.FromContext(c).Warn("group csv cache write failed", zap.Error(err))
		}
	}
	metrics.ContactExportsTotal.WithLabelValues("miss").Inc()

	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *Handler) handlePinGroup(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req struct {
		BoardID uint `json:"boardId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	pinned, err := h.groups.PinDown(ctx, id, req.BoardID)
	if err != nil {
		return jsonError(c, err)
	}
	metrics.PinDownsTotal.Inc()

	h.record(ctx, c, service.ActionEdit, "Group", id, []service.Field{
		{Name: "pinned", Value: ref("Board", req.BoardID), Ref: true},
	})

	return c.JSON(http.StatusOK, pinned)
}

func (h *Handler) handleGroupVersions(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	versions, err := h.groups.Versions(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, versions)
}

func (h *Handler) handleListBoards(c echo.Context) error {
	boards, err := h.groups.ListBoards(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, boards)
}

func (h *Handler) handleSaveBoard(c echo.Context) error {
	ctx := c.Request().Context()

	var board domain.Board
	if err := c.Bind(&board); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	action := service.ActionEdit
	if board.ID == 0 {
		action = service.ActionCreate
	}

	if err := h.groups.SaveBoard(ctx, &board); err != nil {
		return jsonError(c, err)
	}

	h.record(ctx, c, action, "Board", board.ID, []service.Field{
		{Name: "name", Value: board.Name},
		{Name: "status", Value: board.Status.String()},
	})

	return c.JSON(http.StatusOK, board)
}

func (h *Handler) handleGetInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	inv, err := h.invoices.Get(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) handleSaveInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	var inv domain.Invoice
	if err := c.Bind(&inv); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	action := service.ActionEdit
	if inv.ID == 0 {
		action = service.ActionCreate
	}

	if err := h.invoices.Save(ctx, &inv); err != nil {
		return jsonError(c, err)
	}

	h.record(ctx, c, action, "Invoice", inv.ID, []service.Field{
		{Name: "reference", Value: inv.Reference},
		{Name: "status", Value: inv.Status.String()},
	})

	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) handleInvoiceTransition(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req struct {
		Status domain.InvoiceStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	inv, err := h.invoices.Transition(ctx, id, req.Status)
	if err != nil {
		return jsonError(c, err)
	}

	h.record(ctx, c, service.ActionEdit, "Invoice", id, []service.Field{
		{Name: "status", Value: inv.Status.String()},
	})

	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) handleInvoiceSetStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req struct {
		Status domain.InvoiceStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	inv, err := h.invoices.SetStatus(ctx, id, req.Status)
	if err != nil {
		return jsonError(c, err)
	}

	h.record(ctx, c, service.ActionEdit, "Invoice", id, []service.Field{
		{Name: "status", Value: inv.Status.String()},
	})

	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) handleGetEvent(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if fairStr := c.QueryParam("fair"); fairStr != "" {
		fairID, err := strconv.ParseUint(fairStr, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fair parameter"})
		}
		event, err := h.events.GetForFair(ctx, id, uint(fairID))
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, event)
	}

	event, err := h.events.Get(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, event)
}

func (h *Handler) handleSaveEvent(c echo.Context) error {
	ctx := c.Request().Context()

	var event domain.Event
	if err := c.Bind(&event); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	action := service.ActionEdit
	if event.ID == 0 {
		action = service.ActionCreate
	}

	if err := h.events.Save(ctx, &event); err != nil {
		return jsonError(c, err)
	}

	h.record(ctx, c, action, "Event", event.ID, []service.Field{
		{Name: "name", Value: event.Name},
		{Name: "date", Value: event.Date.Format("2006-01-02")},
	})

	return c.JSON(http.StatusOK, event)
}

func (h *Handler) handleListActors(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	actors, err := h.events.ListActors(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, actors)
}

func (h *Handler) handleSaveActor(c echo.Context) error {
	ctx := c.Request().Context()

	eventID, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var actor domain.Actor
	if err := c.Bind(&actor); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	actor.EventID = eventID

	if err := h.events.SaveActor(ctx, &actor); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, actor)
}

func (h *Handler) handleListComments(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	comments, err := h.events.ListComments(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *Handler) handleSaveComment(c echo.Context) error {
	ctx := c.Request().Context()

	eventID, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var comment domain.EventComment
	if err := c.Bind(&comment); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	comment.EventID = eventID

	if err := h.events.SaveComment(ctx, &comment); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *Handler) handleListApplications(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	applications, err := h.events.ListApplications(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, applications)
}

func (h *Handler) handleSaveApplication(c echo.Context) error {
	ctx := c.Request().Context()

	eventID, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var application domain.EventApplication
	if err := c.Bind(&application); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	application.EventID = eventID

	if err := h.events.SaveApplication(ctx, &application); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, application)
}

// handleHistory returns the parsed audit trail, newest entry first.
func (h *Handler) handleHistory(c echo.Context) error {
	entries, err := h.parser.Parse(h.historyPath)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// handleHistoryStream upgrades to a websocket and relays history entries
// published on redis until the client goes away.
func (h *Handler) handleHistoryStream(c echo.Context) error {
	if h.rdb == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "history stream unavailable"})
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()
	sub := h.rdb.Subscribe(ctx, service.HistoryChannel)
	defer sub.Close()

	// Drain client frames so close handshakes are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return nil
			}
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}
