package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

// fakeDB captura el último Exec; Query no se usa en estos tests.
type fakeDB struct {
	sql      string
	args     []any
	execErr  error
	queryErr error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql, f.args = sql, args
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.sql, f.args = sql, args
	return nil, f.queryErr
}

func TestAuditRepo_Record(t *testing.T) {
	db := &fakeDB{}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := NewAuditRepository(db).Record(context.Background(), &entity.AuditEvent{
		ID: "e1", Action: entity.AuditPartnershipStatusToggled, PartnershipID: 9, Actor: "ops",
		Detail: map[string]any{"from": "ativa", "to": "inativa"}, CreatedAt: at,
	})
	require.NoError(t, err)
	assert.Contains(t, db.sql, "ON CONFLICT (id) DO NOTHING")
	require.Len(t, db.args, 6)
	assert.Equal(t, "e1", db.args[0])
	assert.Equal(t, int64(9), *db.args[2].(*int64))

	var detail map[string]string
	require.NoError(t, json.Unmarshal(db.args[4].([]byte), &detail))
	assert.Equal(t, map[string]string{"from": "ativa", "to": "inativa"}, detail)
	assert.Equal(t, at, db.args[5])
}

func TestAuditRepo_RecordSinParceria(t *testing.T) {
	db := &fakeDB{}
	err := NewAuditRepository(db).Record(context.Background(), &entity.AuditEvent{ID: "e2", Action: entity.AuditPartnershipCreateRejected})
	require.NoError(t, err)
	assert.Nil(t, db.args[2].(*int64), "partnership_id queda NULL")
}

func TestAuditRepo_Errores(t *testing.T) {
	db := &fakeDB{execErr: errors.New("conn closed"), queryErr: errors.New("conn closed")}
	repo := NewAuditRepository(db)

	err := repo.Record(context.Background(), &entity.AuditEvent{ID: "e3"})
	assert.ErrorContains(t, err, "insert audit event")

	_, err = repo.List(context.Background(), 10, 0)
	assert.ErrorContains(t, err, "list audit events")
	assert.Equal(t, []any{10, 0}, db.args)
}

func TestMigrations_Embebidas(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		body, err := fs.ReadFile(migrationsFS, name)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), name)
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), name)
	}
}
