package services

import (
	"context"
	"errors"
	"testing"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	var out Outcome
	require.False(t, out.OK(), "no steps is not a success")

	out.Record("core", true)
	out.Record("details", true)
	require.True(t, out.OK())
	require.Empty(t, out.Failed())

	out.Record("role", false)
	require.False(t, out.OK())
	require.Equal(t, []string{"role"}, out.Failed())

	require.NoError(t, out.write("course", nil))
	require.Len(t, out.Steps, 4)

	boom := errors.New("boom")
	require.ErrorIs(t, out.write("course", boom), boom)
	require.Len(t, out.Steps, 4)
}

func TestAtomically(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	create := func(tx *repositories.Store, out *Outcome, nid string) error {
		emp := &models.Employee{FullName: "Tx", NationalID: nid, Gender: "male"}
		return out.write(stepCore, tx.Employees.Create(ctx, emp))
	}

	t.Run("false outcome rolls back", func(t *testing.T) {
		out, err := atomically(ctx, f.store, &Outcome{ID: 7}, "test.rollback", func(tx *repositories.Store) error {
			if err := create(tx, &Outcome{}, "1"); err != nil {
				return err
			}
			return nil
		})
		require.NoError(t, err)
		require.False(t, out.OK())
		require.Equal(t, uint(7), out.ID)
		require.Zero(t, f.count(t, &models.Employee{}))
	})

	t.Run("error rolls back", func(t *testing.T) {
		boom := errors.New("boom")
		out, err := atomically(ctx, f.store, &Outcome{}, "test.error", func(tx *repositories.Store) error {
			return boom
		})
		require.ErrorIs(t, err, boom)
		require.Nil(t, out)
	})

	t.Run("ok outcome commits", func(t *testing.T) {
		out := &Outcome{}
		out, err := atomically(WithOperator(ctx, 42), f.store, out, "test.commit", func(tx *repositories.Store) error {
			return create(tx, out, "2")
		})
		require.NoError(t, err)
		require.True(t, out.OK())
		require.Equal(t, int64(1), f.count(t, &models.Employee{}))
		for _, step := range out.Steps {
			require.False(t, step.RolledBack)
		}

		ops, err := f.store.UserOperations.All(ctx)
		require.NoError(t, err)
		require.Len(t, ops, 1)
		require.Equal(t, "test.commit", ops[0].OperationType)
		require.Equal(t, "id=0 steps=core", ops[0].Details)
		require.NotNil(t, ops[0].EmpID)
		require.Equal(t, uint(42), *ops[0].EmpID)
	})

	t.Run("rolled back steps are marked", func(t *testing.T) {
		out := &Outcome{}
		out, err := atomically(ctx, f.store, out, "test.partial", func(tx *repositories.Store) error {
			if err := create(tx, out, "3"); err != nil {
				return err
			}
			out.Record(stepDetails, true)
			out.Record(stepRole, false)
			return nil
		})
		require.NoError(t, err)
		require.False(t, out.OK())
		require.Equal(t, []string{stepRole}, out.Failed())
		require.Equal(t, []Step{
			{Name: stepCore, OK: true, RolledBack: true},
			{Name: stepDetails, OK: true, RolledBack: true},
			{Name: stepRole, OK: false},
		}, out.Steps)
		require.Equal(t, int64(1), f.count(t, &models.Employee{}))

		ops, err := f.store.UserOperations.All(ctx)
		require.NoError(t, err)
		require.Len(t, ops, 1, "only the committed run is audited")
	})
}

func TestOperatorFromCtx(t *testing.T) {
	ctx := context.Background()
	require.Nil(t, OperatorFromCtx(ctx))
	require.Nil(t, OperatorFromCtx(WithOperator(ctx, 0)))

	id := OperatorFromCtx(WithOperator(ctx, 9))
	require.NotNil(t, id)
	require.Equal(t, uint(9), *id)
}
