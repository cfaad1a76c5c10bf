package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/core/domain"
	"eduhub-records/internal/pkg/testdb"

	"github.com/stretchr/testify/require"
)

func TestStore_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Open(t))

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx *Store) error {
		if err := tx.Employees.Create(ctx, newEmployee("Ahmed Ali", "1")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	rows, total, err := store.Employees.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, rows)
}

func TestStore_TransactionCommits(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Open(t))

	var id uint
	err := store.Transaction(ctx, func(tx *Store) error {
		emp := newEmployee("Ahmed Ali", "1")
		if err := tx.Employees.Create(ctx, emp); err != nil {
			return err
		}
		id = emp.ID
		return tx.EmployeeRoles.Create(ctx, &models.EmployeeRole{EmpID: emp.ID, RoleID: 2})
	})
	require.NoError(t, err)

	role, err := store.EmployeeRoles.GetByOwner(ctx, id)
	require.NoError(t, err)
	require.Equal(t, uint(2), role.RoleID)
}

func TestPermissionRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Open(t))

	full := domain.PermissionSet{Add: true, Edit: true, Delete: true, View: true, Print: true, Customize: true}
	require.NoError(t, store.Permissions.Upsert(ctx, models.NewPermission(4, full)))
	require.NoError(t, store.Permissions.Upsert(ctx, models.NewPermission(4, domain.PermissionSet{Add: true, Print: true, Customize: true})))

	all, err := store.Permissions.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, domain.PermissionSet{Add: true, Print: true, Customize: true}, all[0].Set())
}

func TestAnalyticsRepository_SavePeriodReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Open(t))

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	row := func(rate float64) []*models.AttendanceAnalytics {
		return []*models.AttendanceAnalytics{{
			SourceID: 9, SourceType: string(domain.SourceStudent),
			AttendanceRate: rate, PeriodStart: from, PeriodEnd: to,
		}}
	}

	require.NoError(t, store.Analytics.SavePeriod(ctx, row(0.5)))
	require.NoError(t, store.Analytics.SavePeriod(ctx, row(0.75)))
	require.NoError(t, store.Analytics.SavePeriod(ctx, nil))

	rows, err := store.Analytics.ListBySource(ctx, domain.SourceStudent)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 0.75, rows[0].AttendanceRate)

	rows, err = store.Analytics.ListBySource(ctx, domain.SourceEmployee)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestMasterRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Seeded(t))

	role, err := store.Master.RoleByName(ctx, "Teacher")
	require.NoError(t, err)
	require.NotNil(t, role)

	name, err := store.Master.RoleName(ctx, role.ID)
	require.NoError(t, err)
	require.Equal(t, "Teacher", name)

	method, err := store.Master.PaymentMethodByName(ctx, "Bank Transfer")
	require.NoError(t, err)
	require.NotNil(t, method)

	missing, err := store.Master.PaymentMethodByName(ctx, "Bitcoin")
	require.NoError(t, err)
	require.Nil(t, missing)

	name, err = store.Master.CountryName(ctx, 999)
	require.NoError(t, err)
	require.Empty(t, name)
}
