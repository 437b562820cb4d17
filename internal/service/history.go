package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/gctucker/cams/internal/metrics"
)

var tracer = otel.Tracer("history")

// HistoryChannel is the redis channel carrying live history entries.
const HistoryChannel = "cams:history"

const (
	ActionCreate = "CREATE"
	ActionEdit   = "EDIT"
	ActionDelete = "DELETE"
)

// Field is one changed field reported to the history log. A reference
// field carries a TypeName:pk value and is logged unquoted.
type Field struct {
	Name  string
	Value string
	Ref   bool
}

// HistoryEntry is one parsed or emitted history record.
type HistoryEntry struct {
	Time       time.Time `json:"time"`
	User       string    `json:"user"`
	ObjectType string    `json:"objectType"`
	ObjectID   uint      `json:"objectId"`
	Action     string    `json:"action"`
	Args       string    `json:"args,omitempty"`
}

// HistoryService records create/edit/delete actions performed through the
// admin surface. Entries go to the structured log, to the plain history
// file consumed by HistoryParser, and onto a redis channel for live
// subscribers. The service is a side channel: failures to publish are
// logged, never surfaced to the caller.
type HistoryService struct {
	log *zap.Logger
	out io.Writer
	rdb *redis.Client
}

func NewHistoryService(log *zap.Logger, out io.Writer, rdb *redis.Client) *HistoryService {
	return &HistoryService{log: log, out: out, rdb: rdb}
}

// Create records the creation of an object with its initial field values.
func (s *HistoryService) Create(ctx context.Context, user, objectType string, objectID uint, fields []Field) {
	s.record(ctx, user, objectType, objectID, ActionCreate, FormatFields(fields))
}

// Edit records changed fields on an existing object. No entry is written
// when nothing changed.
func (s *HistoryService) Edit(ctx context.Context, user, objectType string, objectID uint, fields []Field) {
	if len(fields) == 0 {
		return
	}
	s.record(ctx, user, objectType, objectID, ActionEdit, FormatFields(fields))
}

// Delete records the removal of an object.
func (s *HistoryService) Delete(ctx context.Context, user, objectType string, objectID uint) {
	s.record(ctx, user, objectType, objectID, ActionDelete, "")
}

func (s *HistoryService) record(ctx context.Context, user, objectType string, objectID uint, action, args string) {
	ctx, span := tracer.Start(ctx, "History.Service.Record")
	defer span.End()

	entry := HistoryEntry{
		Time:       time.Now(),
		User:       user,
		ObjectType: objectType,
		ObjectID:   objectID,
		Action:     action,
		Args:       args,
	}

	metrics.HistoryEntriesTotal.WithLabelValues(action).Inc()

	s.log.Info("history",
		zap.String("user", user),
		zap.String("object", fmt.Sprintf("%s:%d", objectType, objectID)),
		zap.String("action", action),
		zap.String("args", args),
	)

	if s.out != nil {
		if _, err := fmt.Fprintln(s.out, FormatEntry(entry)); err != nil {
			span.RecordError(errors.Wrap(err, "history file write failed"))
			s.log.Warn("history file write failed", zap.Error(err))
		}
	}

	if s.rdb != nil {
		payload, err := json.Marshal(entry)
		if err != nil {
			span.RecordError(err)
			return
		}
		if err := s.rdb.Publish(ctx, HistoryChannel, payload).Err(); err != nil {
			span.RecordError(errors.Wrap(err, "history publish failed"))
			s.log.Warn("history publish failed", zap.Error(err))
		}
	}
}

// FormatFields renders changed fields as `name: "value"` pairs, reference
// fields as `name: TypeName:pk`, joined with ", ".
func FormatFields(fields []Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Ref {
			parts = append(parts, fmt.Sprintf("%s: %s", f.Name, f.Value))
		} else {
			parts = append(parts, fmt.Sprintf(`%s: "%s"`, f.Name, Escape(f.Value)))
		}
	}
	return strings.Join(parts, ", ")
}

// Escape protects backslashes and double quotes in logged values.
func Escape(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}

// Unescape reverses Escape.
func Unescape(v string) string {
	v = strings.ReplaceAll(v, `\"`, `"`)
	return strings.ReplaceAll(v, `\\`, `\`)
}

// FormatEntry renders one plain history line:
//
//	[2013.6.1 12.30.5] [admin] [Group:7] [EDIT] name: "Volunteers"
func FormatEntry(e HistoryEntry) string {
	t := e.Time
	stamp := fmt.Sprintf("%d.%d.%d %d.%d.%d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	line := fmt.Sprintf("[%s] [%s] [%s:%d] [%s]", stamp, e.User, e.ObjectType, e.ObjectID, e.Action)
	if e.Args != "" {
		line += " " + e.Args
	}
	return line
}
