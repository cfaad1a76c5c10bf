package services

import (
	"context"
	"sync"
	"testing"

	"eduhub-records/internal/adapters/persistence/repositories"
	"eduhub-records/internal/pkg/logger"
	"eduhub-records/internal/pkg/testdb"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

type fixture struct {
	store     *repositories.Store
	events    *recordingPublisher
	employees *EmployeeService
	students  *StudentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repositories.NewStore(testdb.Seeded(t))
	events := &recordingPublisher{}
	employees := NewEmployeeService(store, events, logger.Discard())
	employees.SetPasswordCost(bcrypt.MinCost)

	return &fixture{
		store:     store,
		events:    events,
		employees: employees,
		students:  NewStudentService(store, events, logger.Discard()),
	}
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.store.DB().Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func employeeInput(role, nationalID, email, phone string) *CreateEmployeeInput {
	return &CreateEmployeeInput{
		RoleName: role,
		Core: PersonInput{
			FullName:   "Employee " + nationalID,
			NationalID: nationalID,
			Birthday:   "1990-05-17",
			Gender:     "male",
		},
		Details: EmployeeDetailsInput{
			Address:       "12 Tahrir St",
			NationalityID: 1,
			GovernorateID: 1,
			Email:         email,
			PhoneNumber:   phone,
			Qualification: "B.Sc.",
			Salary:        decimal.NewFromInt(5000),
		},
		PaymentInput: PaymentInput{PaymentType: "Cash"},
	}
}

func ptr[T any](v T) *T {
	return &v
}
