package audit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Entry struct {
	UserID     *string
	Action     string
	EntityType string
	EntityID   *string
	IP         *string
	UserAgent  *string
	Metadata   []byte
}

// Write records an audit entry; failures are returned so callers can ignore if needed.
func Write(ctx context.Context, db *pgxpool.Pool, e Entry) error {
	if db == nil {
		return nil
	}

	var metadata interface{}
	if len(e.Metadata) > 0 {
		raw := json.RawMessage(e.Metadata)
		metadata = raw
	}

	_, err := db.Exec(ctx, `
INSERT INTO audit_logs (user_id, action, entity_type, entity_id, ip, user_agent, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, e.UserID, e.Action, e.EntityType, e.EntityID, e.IP, e.UserAgent, metadata)

	return err
}

// Logger records resource mutations. A nil Logger is a no-op, which keeps
// handlers usable in tests without a database.
type Logger struct {
	DB *pgxpool.Pool
}

// Record writes an audit entry for a mutation, best-effort and off the
// request path.
func (l *Logger) Record(c *fiber.Ctx, userID, action, entityType, entityID string) {
	if l == nil || l.DB == nil {
		return
	}

	e := newEntry(c, userID, action, entityType, entityID)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := Write(ctx, l.DB, e); err != nil {
			log.Printf("audit write failed (%s %s): %v", action, entityType, err)
		}
	}()
}

// newEntry snapshots request-scoped values. Fiber reuses the underlying
// buffers once the handler returns, so every string read from the context
// (or derived from it, like path params) must be copied before it crosses
// into the async write.
func newEntry(c *fiber.Ctx, userID, action, entityType, entityID string) Entry {
	e := Entry{
		Action:     action,
		EntityType: entityType,
	}
	if userID != "" {
		uid := utils.CopyString(userID)
		e.UserID = &uid
	}
	if entityID != "" {
		eid := utils.CopyString(entityID)
		e.EntityID = &eid
	}
	if ip := utils.CopyString(c.IP()); ip != "" {
		e.IP = &ip
	}
	if ua := utils.CopyString(c.Get("User-Agent")); ua != "" {
		e.UserAgent = &ua
	}
	return e
}
