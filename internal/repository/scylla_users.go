package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"shop_backoffice/internal/models"
)

const userColumns = `user_id, user_name, user_password, user_full_name, user_address, user_phone, user_email, created_at`

const (
	cqlInsertUser = `INSERT INTO user_infos (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?) IF NOT EXISTS`
	cqlWriteUser  = `INSERT INTO user_infos (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
)

type userRow struct {
	id gocql.UUID
	u  models.UserInfo
}

func (r *userRow) dest() []interface{} {
	return []interface{}{&r.id, &r.u.UserName, &r.u.UserPassword, &r.u.UserFullName,
		&r.u.UserAddress, &r.u.UserPhone, &r.u.UserEmail, &r.u.CreatedAt}
}

func (r *userRow) user() models.UserInfo {
	u := r.u
	u.ID = r.id.String()
	return u
}

// user_infos_by_name is keyed on the lowercased name so lookups ignore case.
func nameKey(userName string) string {
	return strings.ToLower(userName)
}

func (s *Scylla) ListUsers(ctx context.Context) ([]models.UserInfo, error) {
	iter := s.users.Query(`SELECT ` + userColumns + ` FROM user_infos`).WithContext(ctx).Iter()

	users := make([]models.UserInfo, 0)
	var row userRow
	for iter.Scan(row.dest()...) {
		users = append(users, row.user())
		row = userRow{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Scylla) GetUser(ctx context.Context, id string) (models.UserInfo, error) {
	uid, err := parseID("user", id)
	if err != nil {
		return models.UserInfo{}, err
	}
	var row userRow
	if err := s.users.Query(`SELECT `+userColumns+` FROM user_infos WHERE user_id = ?`, uid).
		WithContext(ctx).Scan(row.dest()...); err != nil {
		return models.UserInfo{}, wrapRead(err, "user", id)
	}
	return row.user(), nil
}

func (s *Scylla) GetUserByName(ctx context.Context, userName string) (models.UserInfo, error) {
	var uid gocql.UUID
	if err := s.users.Query(`SELECT user_id FROM user_infos_by_name WHERE user_name = ?`, nameKey(userName)).
		WithContext(ctx).Scan(&uid); err != nil {
		return models.UserInfo{}, wrapRead(err, "user", userName)
	}
	return s.GetUser(ctx, uid.String())
}

// claimName reserves userName for uid with a lightweight transaction.
func (s *Scylla) claimName(ctx context.Context, userName string, uid gocql.UUID) error {
	existing := map[string]interface{}{}
	applied, err := s.users.Query(`INSERT INTO user_infos_by_name (user_name, user_id) VALUES (?, ?) IF NOT EXISTS`,
		nameKey(userName), uid).WithContext(ctx).MapScanCAS(existing)
	if err != nil {
		return fmt.Errorf("reserve username: %w", err)
	}
	if applied {
		return nil
	}
	if owner, ok := existing["user_id"].(gocql.UUID); ok && owner == uid {
		return nil
	}
	return fmt.Errorf("username %q: %w", userName, ErrConflict)
}

func (s *Scylla) userQuery(ctx context.Context, stmt string, uid gocql.UUID, u models.UserInfo) *gocql.Query {
	return s.users.Query(stmt,
		uid, u.UserName, u.UserPassword, u.UserFullName, u.UserAddress, u.UserPhone, u.UserEmail, u.CreatedAt).
		WithContext(ctx)
}

// CreateUser refuses an id or a username that is already stored.
func (s *Scylla) CreateUser(ctx context.Context, u models.UserInfo) (models.UserInfo, error) {
	uid := newRowID(u.ID)
	u.ID = uid.String()
	if _, err := s.GetUser(ctx, u.ID); err == nil {
		return models.UserInfo{}, fmt.Errorf("user %s: %w", u.ID, ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return models.UserInfo{}, err
	}
	if err := s.claimName(ctx, u.UserName, uid); err != nil {
		return models.UserInfo{}, err
	}
	u.CreatedAt = time.Now()

	if err := insertIfAbsent(s.userQuery(ctx, cqlInsertUser, uid, u), "user", u.ID); err != nil {
		return models.UserInfo{}, err
	}
	return u, nil
}

func (s *Scylla) UpdateUser(ctx context.Context, u models.UserInfo) (models.UserInfo, error) {
	old, err := s.GetUser(ctx, u.ID)
	if err != nil {
		return models.UserInfo{}, err
	}
	uid, _ := gocql.ParseUUID(old.ID)

	renamed := nameKey(old.UserName) != nameKey(u.UserName)
	if renamed {
		if err := s.claimName(ctx, u.UserName, uid); err != nil {
			return models.UserInfo{}, err
		}
	}
	if u.UserPassword == "" {
		u.UserPassword = old.UserPassword
	}
	u.CreatedAt = old.CreatedAt

	if err := s.userQuery(ctx, cqlWriteUser, uid, u).Exec(); err != nil {
		return models.UserInfo{}, fmt.Errorf("update user: %w", err)
	}
	if renamed {
		if err := s.users.Query(`DELETE FROM user_infos_by_name WHERE user_name = ?`, nameKey(old.UserName)).
			WithContext(ctx).Exec(); err != nil {
			log.Printf("⚠️ stale username %q left in user_infos_by_name: %v", old.UserName, err)
		}
	}
	return u, nil
}

func (s *Scylla) DeleteUser(ctx context.Context, id string) error {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	uid, _ := gocql.ParseUUID(u.ID)

	batch := s.users.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(`DELETE FROM user_infos WHERE user_id = ?`, uid)
	batch.Query(`DELETE FROM user_infos_by_name WHERE user_name = ?`, nameKey(u.UserName))
	if err := s.users.ExecuteBatch(batch); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
