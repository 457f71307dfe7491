package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"shop_backoffice/internal/models"
)

// cart_details is stored as a JSON document; the back office never queries inside it.
const cartColumns = `cart_id, status, date_order, total_price, cart_details, user_name`

const cqlInsertCart = `INSERT INTO carts (` + cartColumns + `) VALUES (?, ?, ?, ?, ?, ?) IF NOT EXISTS`

type cartRow struct {
	id      gocql.UUID
	details string
	c       models.CartInfo
}

func (r *cartRow) dest() []interface{} {
	return []interface{}{&r.id, &r.c.Status, &r.c.DateOrder, &r.c.TotalPrice, &r.details, &r.c.UserName}
}

func (r *cartRow) cart() (models.CartInfo, error) {
	c := r.c
	c.ID = r.id.String()
	c.CartDetails = []models.CartDetailInfo{}
	if r.details != "" {
		if err := json.Unmarshal([]byte(r.details), &c.CartDetails); err != nil {
			return models.CartInfo{}, fmt.Errorf("decode cart %s details: %w", c.ID, err)
		}
	}
	return c, nil
}

func (s *Scylla) ListCarts(ctx context.Context) ([]models.CartInfo, error) {
	iter := s.orders.Query(`SELECT ` + cartColumns + ` FROM carts`).WithContext(ctx).Iter()

	carts := make([]models.CartInfo, 0)
	var row cartRow
	for iter.Scan(row.dest()...) {
		c, err := row.cart()
		if err != nil {
			iter.Close()
			return nil, err
		}
		carts = append(carts, c)
		row = cartRow{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}
	return carts, nil
}

func (s *Scylla) GetCart(ctx context.Context, id string) (models.CartInfo, error) {
	uid, err := parseID("cart", id)
	if err != nil {
		return models.CartInfo{}, err
	}
	var row cartRow
	if err := s.orders.Query(`SELECT `+cartColumns+` FROM carts WHERE cart_id = ?`, uid).
		WithContext(ctx).Scan(row.dest()...); err != nil {
		return models.CartInfo{}, wrapRead(err, "cart", id)
	}
	return row.cart()
}

func (s *Scylla) CreateCart(ctx context.Context, c models.CartInfo) (models.CartInfo, error) {
	uid := newRowID(c.ID)
	c.ID = uid.String()
	details, err := json.Marshal(c.CartDetails)
	if err != nil {
		return models.CartInfo{}, fmt.Errorf("encode cart details: %w", err)
	}

	q := s.orders.Query(cqlInsertCart,
		uid, c.Status, c.DateOrder, c.TotalPrice, string(details), c.UserName).WithContext(ctx)
	if err := insertIfAbsent(q, "cart", c.ID); err != nil {
		return models.CartInfo{}, err
	}
	return c, nil
}

func (s *Scylla) UpdateCartStatus(ctx context.Context, id, status string) (models.CartInfo, error) {
	c, err := s.GetCart(ctx, id)
	if err != nil {
		return models.CartInfo{}, err
	}
	uid, _ := gocql.ParseUUID(c.ID)
	if err := s.orders.Query(`UPDATE carts SET status = ? WHERE cart_id = ?`, status, uid).WithContext(ctx).Exec(); err != nil {
		return models.CartInfo{}, fmt.Errorf("update cart status: %w", err)
	}
	c.Status = status
	return c, nil
}

func (s *Scylla) DeleteCart(ctx context.Context, id string) error {
	if _, err := s.GetCart(ctx, id); err != nil {
		return err
	}
	uid, _ := gocql.ParseUUID(id)
	if err := s.orders.Query(`DELETE FROM carts WHERE cart_id = ?`, uid).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// --- audit ---

func (s *Scylla) RecordAudit(ctx context.Context, entry models.AuditLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return s.users.Query(`INSERT INTO audit_logs (
			id, actor, action, resource, resource_id, ip_address, user_agent, success, status, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gocql.TimeUUID(), entry.Actor, entry.Action, entry.Resource, entry.ResourceID,
		entry.IPAddress, entry.UserAgent, entry.Success, entry.Status, entry.Timestamp,
	).WithContext(ctx).Exec()
}

func (s *Scylla) ListAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	var conditions []string
	var args []interface{}
	if filter.Resource != "" {
		conditions = append(conditions, "resource = ?")
		args = append(args, filter.Resource)
	}
	if filter.Action != "" {
		conditions = append(conditions, "action = ?")
		args = append(args, filter.Action)
	}

	query := `SELECT id, actor, action, resource, resource_id, ip_address, user_agent, success, status, timestamp FROM audit_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ") + " ALLOW FILTERING"
	}

	iter := s.users.Query(query, args...).WithContext(ctx).Iter()
	logs := make([]models.AuditLog, 0)
	var (
		id gocql.UUID
		e  models.AuditLog
	)
	for iter.Scan(&id, &e.Actor, &e.Action, &e.Resource, &e.ResourceID,
		&e.IPAddress, &e.UserAgent, &e.Success, &e.Status, &e.Timestamp) {
		e.ID = id.String()
		logs = append(logs, e)
		e = models.AuditLog{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}

	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Timestamp.After(logs[j].Timestamp) })
	if filter.Limit > 0 && len(logs) > filter.Limit {
		logs = logs[:filter.Limit]
	}
	return logs, nil
}
