package services

import (
	"context"
	"strings"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/adapters/persistence/repositories"
	"eduhub-records/internal/core/domain"
)

// PaymentPreferenceInput links a person to a payment method. A zero id is resolved from PaymentType.
type PaymentPreferenceInput struct {
	PaymentMethodID uint `json:"payment_method_id"`
}

// EWalletInput is the e-wallet payload
type EWalletInput struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
}

func (w *EWalletInput) empty() bool {
	return w == nil || (strings.TrimSpace(w.Number) == "" && strings.TrimSpace(w.HolderName) == "")
}

// BankAccountInput is the bank account payload
type BankAccountInput struct {
	HolderName    string  `json:"holder_name"`
	BankName      string  `json:"bank_name"`
	AccountNumber string  `json:"account_number"`
	IBAN          *string `json:"iban"`
}

func (b *BankAccountInput) empty() bool {
	return b == nil || (strings.TrimSpace(b.AccountNumber) == "" && strings.TrimSpace(b.HolderName) == "" &&
		strings.TrimSpace(b.BankName) == "" && b.IBAN == nil)
}

// BankCheckInput is the bank check payload
type BankCheckInput struct {
	BankName    string `json:"bank_name"`
	HolderName  string `json:"holder_name"`
	CheckNumber string `json:"check_number"`
}

func (c *BankCheckInput) empty() bool {
	return c == nil || (strings.TrimSpace(c.CheckNumber) == "" && strings.TrimSpace(c.HolderName) == "" &&
		strings.TrimSpace(c.BankName) == "")
}

// PaymentInput selects a payment method by name and carries the instrument payloads
type PaymentInput struct {
	PaymentType       string                 `json:"payment_type"`
	PaymentPreference PaymentPreferenceInput `json:"payment_preference"`
	Wallet            *EWalletInput          `json:"wallet,omitempty"`
	Bank              *BankAccountInput      `json:"bank,omitempty"`
	Check             *BankCheckInput        `json:"check,omitempty"`
}

// createPayment inserts the payment preference and the instrument matching kind
func createPayment(
	ctx context.Context,
	tx *repositories.Store,
	out *Outcome,
	source domain.SourceType,
	ownerID uint,
	kind domain.InstrumentKind,
	input *PaymentInput,
) error {
	methodID := input.PaymentPreference.PaymentMethodID
	if methodID == 0 {
		method, err := tx.Master.PaymentMethodByName(ctx, strings.TrimSpace(input.PaymentType))
		if err != nil {
			return err
		}
		if method == nil {
			out.Record(stepPaymentPreference, false)
			return nil
		}
		methodID = method.ID
	}

	pref := &models.PaymentPreference{
		SourceID:        ownerID,
		SourceType:      string(source),
		PaymentMethodID: methodID,
	}
	if err := out.write(stepPaymentPreference, tx.PaymentPreferences.Create(ctx, pref)); err != nil {
		return err
	}

	switch kind {
	case domain.InstrumentEWallet:
		if input.Wallet.empty() {
			return nil
		}
		return out.write(stepEWallet, tx.EWallets.Create(ctx, &models.EWallet{
			PaymentMethodID: methodID,
			SourceID:        ownerID,
			SourceType:      string(source),
			Number:          input.Wallet.Number,
			HolderName:      input.Wallet.HolderName,
		}))
	case domain.InstrumentBankAccount:
		if input.Bank.empty() {
			return nil
		}
		return out.write(stepBankAccount, tx.BankAccounts.Create(ctx, &models.BankAccount{
			PaymentMethodID: methodID,
			SourceID:        ownerID,
			SourceType:      string(source),
			HolderName:      input.Bank.HolderName,
			BankName:        input.Bank.BankName,
			AccountNumber:   input.Bank.AccountNumber,
			IBAN:            input.Bank.IBAN,
		}))
	case domain.InstrumentBankCheck:
		if input.Check.empty() {
			return nil
		}
		return out.write(stepBankCheck, tx.BankChecks.Create(ctx, &models.BankCheck{
			PaymentMethodID: methodID,
			SourceID:        ownerID,
			SourceType:      string(source),
			BankName:        input.Check.BankName,
			HolderName:      input.Check.HolderName,
			CheckNumber:     input.Check.CheckNumber,
		}))
	}
	return nil
}

// ============================================================
// Patches
// ============================================================

// PaymentPreferencePatch changes the payment method of a person
type PaymentPreferencePatch struct {
	PaymentMethodID *uint `json:"payment_method_id"`
}

func (p *PaymentPreferencePatch) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p != nil {
		setUint(fields, "payment_method_id", p.PaymentMethodID)
	}
	return fields
}

// EWalletPatch updates e-wallet columns
type EWalletPatch struct {
	Number     *string `json:"number"`
	HolderName *string `json:"holder_name"`
}

func (p *EWalletPatch) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p != nil {
		setString(fields, "number", p.Number)
		setString(fields, "holder_name", p.HolderName)
	}
	return fields
}

// BankAccountPatch updates bank account columns
type BankAccountPatch struct {
	HolderName    *string `json:"holder_name"`
	BankName      *string `json:"bank_name"`
	AccountNumber *string `json:"account_number"`
	IBAN          *string `json:"iban"`
}

func (p *BankAccountPatch) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p != nil {
		setString(fields, "holder_name", p.HolderName)
		setString(fields, "bank_name", p.BankName)
		setString(fields, "account_number", p.AccountNumber)
		setString(fields, "iban", p.IBAN)
	}
	return fields
}

// BankCheckPatch updates bank check columns
type BankCheckPatch struct {
	BankName    *string `json:"bank_name"`
	HolderName  *string `json:"holder_name"`
	CheckNumber *string `json:"check_number"`
}

func (p *BankCheckPatch) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p != nil {
		setString(fields, "bank_name", p.BankName)
		setString(fields, "holder_name", p.HolderName)
		setString(fields, "check_number", p.CheckNumber)
	}
	return fields
}

// PaymentPatches carries the payment related update payloads
type PaymentPatches struct {
	Payment *PaymentPreferencePatch `json:"payment,omitempty"`
	Wallet  *EWalletPatch           `json:"wallet,omitempty"`
	Bank    *BankAccountPatch       `json:"bank,omitempty"`
	Check   *BankCheckPatch         `json:"check,omitempty"`
}

// updatePayment applies the is_payment and is_info_payment gates
func updatePayment(
	ctx context.Context,
	tx *repositories.Store,
	out *Outcome,
	source domain.SourceType,
	ownerID uint,
	isPayment, isInfoPayment bool,
	patches *PaymentPatches,
) error {
	if isPayment {
		if fields := patches.Payment.fields(); len(fields) > 0 {
			prefs := tx.PaymentPreferences.For(source)
			if err := out.write(stepPaymentPreference, prefs.UpdateByOwner(ctx, ownerID, fields)); err != nil {
				return err
			}
		}
	}

	if !isInfoPayment {
		return nil
	}

	// First non-empty instrument wins
	if fields := patches.Wallet.fields(); len(fields) > 0 {
		return out.write(stepEWallet, tx.EWallets.For(source).UpdateByOwner(ctx, ownerID, fields))
	}
	if fields := patches.Bank.fields(); len(fields) > 0 {
		return out.write(stepBankAccount, tx.BankAccounts.For(source).UpdateByOwner(ctx, ownerID, fields))
	}
	if fields := patches.Check.fields(); len(fields) > 0 {
		return out.write(stepBankCheck, tx.BankChecks.For(source).UpdateByOwner(ctx, ownerID, fields))
	}
	out.Record(stepPaymentInstrument, false)
	return nil
}

// deletePayment removes the preference and every instrument of a person
func deletePayment(ctx context.Context, tx *repositories.Store, out *Outcome, source domain.SourceType, ownerID uint) error {
	if err := out.write(stepPaymentPreference, tx.PaymentPreferences.For(source).DeleteByOwner(ctx, ownerID)); err != nil {
		return err
	}
	if err := out.write(stepEWallet, tx.EWallets.For(source).DeleteByOwner(ctx, ownerID)); err != nil {
		return err
	}
	if err := out.write(stepBankAccount, tx.BankAccounts.For(source).DeleteByOwner(ctx, ownerID)); err != nil {
		return err
	}
	return out.write(stepBankCheck, tx.BankChecks.For(source).DeleteByOwner(ctx, ownerID))
}

// PaymentView is the payment section merged into a person view
type PaymentView struct {
	PaymentMethodID uint                    `json:"payment_method_id,omitempty"`
	EWallet         *models.EWalletView     `json:"e_wallet,omitempty"`
	BankAccount     *models.BankAccountView `json:"bank_account,omitempty"`
	BankCheck       *models.BankCheckView   `json:"bank_check,omitempty"`
}

// loadPayment merges the latest preference and any instrument, absent parts are skipped
func loadPayment(ctx context.Context, store *repositories.Store, source domain.SourceType, ownerID uint) (PaymentView, error) {
	var view PaymentView

	prefs, err := store.PaymentPreferences.For(source).ListByOwner(ctx, ownerID)
	if err != nil {
		return view, err
	}
	if len(prefs) > 0 {
		view.PaymentMethodID = prefs[len(prefs)-1].PaymentMethodID
	}

	wallet, err := store.EWallets.For(source).GetByOwner(ctx, ownerID)
	if err != nil {
		return view, err
	}
	if wallet != nil {
		view.EWallet = wallet.ToView()
	}

	bank, err := store.BankAccounts.For(source).GetByOwner(ctx, ownerID)
	if err != nil {
		return view, err
	}
	if bank != nil {
		view.BankAccount = bank.ToView()
	}

	check, err := store.BankChecks.For(source).GetByOwner(ctx, ownerID)
	if err != nil {
		return view, err
	}
	if check != nil {
		view.BankCheck = check.ToView()
	}

	return view, nil
}
