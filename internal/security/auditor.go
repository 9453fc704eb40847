package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/coregx/sqldialect/internal/logger"
)

// AuditEvent describes one statement executed against a connection.
type AuditEvent struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user,omitempty"`
	Dialect   string    `json:"dialect"`
	Table     string    `json:"table,omitempty"`
	SQL       string    `json:"sql"`
	SQLHash   string    `json:"sql_hash"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	Duration  int64     `json:"duration_ms"`
}

// Auditor writes audit events to a logger.
type Auditor struct {
	logger logger.Logger
	now    func() time.Time
}

// NewAuditor creates an auditor. A nil logger disables auditing.
func NewAuditor(l logger.Logger) *Auditor {
	if l == nil {
		l = &logger.NoopLogger{}
	}
	return &Auditor{logger: l, now: time.Now}
}

// Record logs the outcome of executing stmt for table. Failures are logged at
// warn level.
func (a *Auditor) Record(ctx context.Context, dialect, table, stmt string, err error, duration time.Duration) AuditEvent {
	event := AuditEvent{
		Timestamp: a.now().UTC(),
		User:      GetUser(ctx),
		Dialect:   dialect,
		Table:     table,
		SQL:       stmt,
		SQLHash:   hashStatement(stmt),
		Success:   err == nil,
		Duration:  duration.Milliseconds(),
	}
	if err != nil {
		event.Error = err.Error()
	}

	logFunc := a.logger.Info
	if !event.Success {
		logFunc = a.logger.Warn
	}
	logFunc("audit_event",
		"timestamp", event.Timestamp,
		"user", event.User,
		"dialect", event.Dialect,
		"table", event.Table,
		"sql", event.SQL,
		"sql_hash", event.SQLHash,
		"success", event.Success,
		"error", event.Error,
		"duration_ms", event.Duration,
	)
	return event
}

// RecordRejected logs a statement that was refused by a Validator.
func (a *Auditor) RecordRejected(ctx context.Context, dialect, stmt string, err error) {
	a.logger.Warn("security_event",
		"event_type", "statement_blocked",
		"user", GetUser(ctx),
		"dialect", dialect,
		"sql", stmt,
		"error", err.Error(),
	)
}

func hashStatement(stmt string) string {
	sum := sha256.Sum256([]byte(stmt))
	return hex.EncodeToString(sum[:])
}

type contextKey string

const userKey contextKey = "sqldialect:user"

// WithUser adds user information to the context for audit logging.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser retrieves the user stored by WithUser.
func GetUser(ctx context.Context) string {
	user, _ := ctx.Value(userKey).(string)
	return user
}
