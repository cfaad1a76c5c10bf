package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/adapters/persistence/repositories"
)

// Step names recorded in an Outcome
const (
	stepRolePolicy        = "role_policy"
	stepPaymentInstrument = "payment_instrument"
	stepDeleteGate        = "delete_gate"
	stepCore              = "core"
	stepDetails           = "details"
	stepRole              = "role"
	stepPermissions       = "permissions"
	stepCredentials       = "credentials"
	stepCourse            = "course"
	stepPaymentPreference = "payment_preference"
	stepEWallet           = "e_wallet"
	stepBankAccount       = "bank_account"
	stepBankCheck         = "bank_check"
)

var errRolledBack = errors.New("composite write rolled back")

// Step is the result of one adapter call within a composite operation
type Step struct {
	Name       string `json:"name"`
	OK         bool   `json:"ok"`
	RolledBack bool   `json:"rolled_back,omitempty"`
}

// Outcome aggregates the steps of a composite operation
type Outcome struct {
	ID    uint   `json:"id,omitempty"`
	Steps []Step `json:"steps"`
}

// Record appends a step result
func (o *Outcome) Record(name string, ok bool) {
	o.Steps = append(o.Steps, Step{Name: name, OK: ok})
}

// OK is the logical AND of every recorded step. No steps means nothing happened, which is not a success.
func (o *Outcome) OK() bool {
	if len(o.Steps) == 0 {
		return false
	}
	for _, s := range o.Steps {
		if !s.OK {
			return false
		}
	}
	return true
}

// Failed lists the names of failed steps
func (o *Outcome) Failed() []string {
	var names []string
	for _, s := range o.Steps {
		if !s.OK {
			names = append(names, s.Name)
		}
	}
	return names
}

// rollBack marks every successful step as undone, nothing of them reached the store
func (o *Outcome) rollBack() {
	for i := range o.Steps {
		if o.Steps[i].OK {
			o.Steps[i].RolledBack = true
		}
	}
}

// write records a successful step, or hands the store error back to abort the transaction
func (o *Outcome) write(name string, err error) error {
	if err != nil {
		return err
	}
	o.Record(name, true)
	return nil
}

// updateOwned patches one row of ownerID by id, or every row of ownerID when rowID is zero.
// A row id that belongs to someone else records a false step.
func updateOwned[T any](
	ctx context.Context,
	t *repositories.Table[T],
	out *Outcome,
	step string,
	rowID, ownerID uint,
	fields map[string]interface{},
) error {
	if rowID == 0 {
		return out.write(step, t.UpdateByOwner(ctx, ownerID, fields))
	}
	row, err := t.GetByIDForOwner(ctx, rowID, ownerID)
	if err != nil {
		return err
	}
	if row == nil {
		out.Record(step, false)
		return nil
	}
	return out.write(step, t.UpdateByIDForOwner(ctx, rowID, ownerID, fields))
}

// atomically runs fn in one transaction and rolls it back when fn fails or the outcome is not OK.
// A committed outcome leaves a user_operation row named op in the same transaction.
func atomically(
	ctx context.Context,
	store *repositories.Store,
	out *Outcome,
	op string,
	fn func(tx *repositories.Store) error,
) (*Outcome, error) {
	id := out.ID
	err := store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := fn(tx); err != nil {
			return err
		}
		if !out.OK() {
			return errRolledBack
		}
		return audit(ctx, tx, op, out)
	})
	if errors.Is(err, errRolledBack) {
		out.ID = id
		out.rollBack()
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func audit(ctx context.Context, tx *repositories.Store, op string, out *Outcome) error {
	names := make([]string, len(out.Steps))
	for i, step := range out.Steps {
		names[i] = step.Name
	}
	row := &models.UserOperation{
		EmpID:         OperatorFromCtx(ctx),
		OperationType: op,
		Details:       fmt.Sprintf("id=%d steps=%s", out.ID, strings.Join(names, ",")),
		Date:          time.Now().UTC(),
	}
	if err := tx.UserOperations.Create(ctx, row); err != nil {
		return fmt.Errorf("audit %s: %w", op, err)
	}
	return nil
}

func logOutcome(ctx context.Context, log *slog.Logger, op string, start time.Time, out *Outcome, err error) {
	elapsed := time.Since(start).Milliseconds()
	switch {
	case err != nil:
		log.ErrorContext(ctx, "operation failed", "op", op, "elapsed_ms", elapsed, "error", err)
	case out != nil && !out.OK():
		log.WarnContext(ctx, "operation rejected", "op", op, "elapsed_ms", elapsed, "failed_steps", out.Failed())
	default:
		log.InfoContext(ctx, "operation completed", "op", op, "elapsed_ms", elapsed)
	}
}
