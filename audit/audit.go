// Package audit persists a record of every tool call the server handles.
// Logging is best-effort: an unavailable audit store degrades the server to
// unaudited operation instead of failing requests.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/semanticdom/semdom/kit"
)

// Entry is one audit record. Zero fields are filled in by the logger.
type Entry struct {
	EntryID    string
	Action     string
	Parameters string
	Status     string
	Error      string
	Transport  string
	RequestID  string
	Timestamp  int64
}

// SQLiteLogger writes entries to a SQLite table. Synchronous via Log,
// buffered via LogAsync.
type SQLiteLogger struct {
	db    *sql.DB
	genID func() string

	ch        chan *Entry
	wg        sync.WaitGroup
	closeOnce sync.Once

	mu     sync.RWMutex
	closed bool
}

// Option configures a SQLiteLogger.
type Option func(*SQLiteLogger)

// WithIDGenerator replaces the entry-id generator. Tests use this to get
// predictable ids.
func WithIDGenerator(gen func() string) Option {
	return func(l *SQLiteLogger) { l.genID = gen }
}

// NewSQLiteLogger wraps an open database. The caller keeps ownership of db;
// Close only drains the async buffer.
func NewSQLiteLogger(db *sql.DB, opts ...Option) *SQLiteLogger {
	l := &SQLiteLogger{
		db:    db,
		genID: func() string { return "evt_" + uuid.Must(uuid.NewV7()).String() },
		ch:    make(chan *Entry, 256),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.wg.Add(1)
	go l.drain()
	return l
}

const schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	entry_id      TEXT PRIMARY KEY,
	action        TEXT NOT NULL,
	parameters    TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	transport     TEXT NOT NULL DEFAULT '',
	request_id    TEXT NOT NULL DEFAULT '',
	timestamp     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
CREATE INDEX IF NOT EXISTS idx_audit_log_timestamp ON audit_log(timestamp);
`

// Init creates the audit table if it does not exist.
func (l *SQLiteLogger) Init() error {
	if _, err := l.db.Exec(schema); err != nil {
		return fmt.Errorf("audit init: %w", err)
	}
	return nil
}

func (l *SQLiteLogger) fillDefaults(ctx context.Context, e *Entry) {
	if e.EntryID == "" {
		e.EntryID = l.genID()
	}
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}
	if e.Status == "" {
		if e.Error != "" {
			e.Status = "error"
		} else {
			e.Status = "success"
		}
	}
	if e.Transport == "" {
		e.Transport = kit.GetTransport(ctx)
	}
	if e.RequestID == "" {
		e.RequestID = kit.GetRequestID(ctx)
	}
}

// Log writes one entry synchronously, filling defaults first.
func (l *SQLiteLogger) Log(ctx context.Context, e *Entry) error {
	l.fillDefaults(ctx, e)
	return l.insert(e)
}

// LogAsync queues an entry for the background writer. Defaults are filled
// from the background context; a full buffer drops the entry with a warning
// rather than blocking the request path. Entries logged after Close are
// dropped.
func (l *SQLiteLogger) LogAsync(e *Entry) {
	l.fillDefaults(context.Background(), e)
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		slog.Warn("audit logger closed, entry dropped", "action", e.Action)
		return
	}
	select {
	case l.ch <- e:
	default:
		slog.Warn("audit buffer full, entry dropped", "action", e.Action)
	}
}

func (l *SQLiteLogger) drain() {
	defer l.wg.Done()
	for e := range l.ch {
		if err := l.insert(e); err != nil {
			slog.Warn("audit write failed", "action", e.Action, "error", err)
		}
	}
}

func (l *SQLiteLogger) insert(e *Entry) error {
	_, err := l.db.Exec(
		`INSERT INTO audit_log (entry_id, action, parameters, status, error_message, transport, request_id, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EntryID, e.Action, e.Parameters, e.Status, e.Error, e.Transport, e.RequestID, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("audit insert: %w", err)
	}
	return nil
}

// Cleanup deletes entries older than the retention window.
func (l *SQLiteLogger) Cleanup(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays).UnixMilli()
	res, err := l.db.ExecContext(ctx, "DELETE FROM audit_log WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("audit cleanup: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close stops accepting async entries and flushes the buffer. The database
// stays open.
func (l *SQLiteLogger) Close() {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		l.mu.Unlock()
		close(l.ch)
	})
	l.wg.Wait()
}

// Middleware records every call through the endpoint under the given
// action name. An empty action falls back to the tool name carried in the
// context, so one middleware instance can cover a whole server. Request
// payloads are stored as JSON; failures to marshal leave the parameters
// empty rather than failing the call.
func Middleware(l *SQLiteLogger, action string) kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, req any) (any, error) {
			resp, err := next(ctx, req)

			act := action
			if act == "" {
				act = kit.GetToolName(ctx)
			}
			e := &Entry{
				Action:    act,
				Transport: kit.GetTransport(ctx),
				RequestID: kit.GetRequestID(ctx),
			}
			if data, merr := json.Marshal(req); merr == nil {
				e.Parameters = string(data)
			}
			if err != nil {
				e.Error = err.Error()
			}
			l.LogAsync(e)
			return resp, err
		}
	}
}
