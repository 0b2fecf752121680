package appointment

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/studio-booking/internal/domain"
	"github.com/m04kA/studio-booking/pkg/dbmetrics"
	"github.com/m04kA/studio-booking/pkg/pgerr"
)

// stubResult ответ драйвера на один запрос
type stubResult struct {
	columns []string
	rows    [][]driver.Value
	err     error
}

// stubConnector драйвер database/sql, отдающий заранее заданные ответы
// и запоминающий выполненные запросы
type stubConnector struct {
	mu      sync.Mutex
	result  stubResult
	queries []string
	args    [][]driver.NamedValue
}

func (c *stubConnector) Connect(context.Context) (driver.Conn, error) { return &stubConn{c: c}, nil }
func (c *stubConnector) Driver() driver.Driver { return stubDriver{} }

func (c *stubConnector) lastQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queries) == 0 {
		return ""
	}
	return c.queries[len(c.queries)-1]
}

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return nil, errors.New("use sql.OpenDB") }

type stubConn struct {
	c *stubConnector
}

func (s *stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("prepare unsupported") }
func (s *stubConn) Close() error { return nil }
func (s *stubConn) Begin() (driver.Tx, error) { return nil, errors.New("begin unsupported") }

// CheckNamedValue аргументы передаются драйверу как есть
func (s *stubConn) CheckNamedValue(*driver.NamedValue) error { return nil }

func (s *stubConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	s.c.queries = append(s.c.queries, query)
	s.c.args = append(s.c.args, args)
	if s.c.result.err != nil {
		return nil, s.c.result.err
	}
	return &stubRows{columns: s.c.result.columns, rows: s.c.result.rows}, nil
}

type stubRows struct {
	columns []string
	rows    [][]driver.Value
	pos     int
}

func (r *stubRows) Columns() []string { return r.columns }
func (r *stubRows) Close() error { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}

// stubTx транзакция поверх того же соединения, нужна только для контекста
type stubTx struct {
	*sql.DB
}

func (stubTx) Commit() error { return nil }
func (stubTx) Rollback() error { return nil }

func newStubRepository(t *testing.T, result stubResult) (*Repository, *stubConnector, *sql.DB) {
	t.Helper()

	connector := &stubConnector{result: result}
	db := sql.OpenDB(connector)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db), connector, db
}

func newAppointment() *domain.Appointment {
	return &domain.Appointment{
		ClientID:  4,
		ServiceID: 2,
		Date:      time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
		StartTime: "10:30",
		Status:    domain.StatusPending,
	}
}

func TestCreate_ReturnsGeneratedFields(t *testing.T) {
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	repo, connector, _ := newStubRepository(t, stubResult{
		columns: []string{"id", "created_at", "updated_at"},
		rows:    [][]driver.Value{{int64(17), created, created}},
	})

	appt, err := repo.Create(context.Background(), newAppointment())
	require.NoError(t, err)
	assert.Equal(t, int64(17), appt.ID)
	assert.Equal(t, created, appt.CreatedAt)

	query := connector.lastQuery()
	assert.True(t, strings.HasPrefix(query, "INSERT INTO appointments"), query)
	assert.Contains(t, query, "RETURNING id, created_at, updated_at")

	args := connector.args[0]
	require.Len(t, args, 6)
	assert.Equal(t, "2026-03-11", args[2].Value, "date is sent as civil date")
}

func TestCreate_MapsConstraintViolations(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"slot already booked", &pq.Error{Code: pgerr.CodeUniqueViolation}, ErrSlotTaken},
		{"missing client or service", &pq.Error{Code: pgerr.CodeForeignKeyViolation}, ErrReferenceNotFound},
		{"other driver failure", errors.New("connection reset"), ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, _ := newStubRepository(t, stubResult{err: tt.err})

			appt, err := repo.Create(context.Background(), newAppointment())
			assert.Nil(t, appt)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExistsActiveAt(t *testing.T) {
	date := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)

	t.Run("booked", func(t *testing.T) {
		repo, connector, _ := newStubRepository(t, stubResult{
			columns: []string{"id"},
			rows:    [][]driver.Value{{int64(3)}},
		})

		exists, err := repo.ExistsActiveAt(context.Background(), date, "10:30")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.NotContains(t, connector.lastQuery(), "FOR UPDATE")
	})

	t.Run("free", func(t *testing.T) {
		repo, _, _ := newStubRepository(t, stubResult{columns: []string{"id"}})

		exists, err := repo.ExistsActiveAt(context.Background(), date, "10:30")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("locks row inside transaction", func(t *testing.T) {
		repo, connector, db := newStubRepository(t, stubResult{columns: []string{"id"}})
		ctx := dbmetrics.WithTx(context.Background(), stubTx{DB: db})

		_, err := repo.ExistsActiveAt(ctx, date, "10:30")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(connector.lastQuery(), "FOR UPDATE"), connector.lastQuery())
	})

	t.Run("driver failure", func(t *testing.T) {
		repo, _, _ := newStubRepository(t, stubResult{err: errors.New("connection reset")})

		_, err := repo.ExistsActiveAt(context.Background(), date, "10:30")
		assert.ErrorIs(t, err, ErrExecQuery)
	})
}
