package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/studio-booking/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	opts     *sql.TxOptions
	begins   int
	beginErr error
}

func (d *fakeDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	d.begins++
	d.opts = opts
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}

func TestDo_Commits(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)
	fnErr := errors.New("slot taken")

	err := m.Do(context.Background(), func(ctx context.Context) error { return fnErr })

	assert.ErrorIs(t, err, fnErr)
	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}

func TestDo_RollsBackOnPanic(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	assert.Panics(t, func() {
		_ = m.Do(context.Background(), func(ctx context.Context) error { panic("boom") })
	})
	assert.True(t, db.tx.rolledBack)
}

func TestDo_BeginAndCommitErrors(t *testing.T) {
	m := NewTransactionManager(&fakeDB{beginErr: errors.New("conn refused")})
	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)

	db := &fakeDB{tx: &fakeTx{commitErr: errors.New("serialization failure")}}
	err = NewTransactionManager(db).Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrCommitTx)
	assert.True(t, db.tx.rolledBack)
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, db.begins)
}

func TestIsolationOptions(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)
	noop := func(ctx context.Context) error { return nil }

	require.NoError(t, m.DoSerializable(context.Background(), noop))
	assert.Equal(t, sql.LevelSerializable, db.opts.Isolation)

	require.NoError(t, m.DoReadOnly(context.Background(), noop))
	assert.True(t, db.opts.ReadOnly)
}
