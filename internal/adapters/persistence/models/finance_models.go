package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Shared financial tables, polymorphic over (source_id, source_type)
// ============================================================

// PaymentPreference represents payment_preferences table
type PaymentPreference struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SourceID        uint      `gorm:"index:idx_payment_preferences_source;not null" json:"source_id"`
	SourceType      string    `gorm:"index:idx_payment_preferences_source;size:10;not null" json:"source_type"`
	PaymentMethodID uint      `gorm:"not null" json:"payment_method_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PaymentPreference) TableName() string {
	return "payment_preferences"
}

// EWallet represents e_wallets table
type EWallet struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PaymentMethodID uint      `gorm:"not null" json:"payment_method_id"`
	SourceID        uint      `gorm:"index:idx_e_wallets_source;not null" json:"source_id"`
	SourceType      string    `gorm:"index:idx_e_wallets_source;size:10;not null" json:"source_type"`
	Number          string    `gorm:"uniqueIndex;size:30;not null" json:"number"`
	HolderName      string    `gorm:"size:150;not null" json:"holder_name"`
	Date            time.Time `gorm:"autoCreateTime" json:"date"`
}

func (EWallet) TableName() string {
	return "e_wallets"
}

// EWalletView is the wallet projection merged into a person view
type EWalletView struct {
	PaymentMethodID uint   `json:"payment_method_id"`
	Number          string `json:"number"`
	HolderName      string `json:"holder_name"`
}

func (w *EWallet) ToView() *EWalletView {
	return &EWalletView{
		PaymentMethodID: w.PaymentMethodID,
		Number:          w.Number,
		HolderName:      w.HolderName,
	}
}

// BankAccount represents bank_accounts table
type BankAccount struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PaymentMethodID uint      `gorm:"not null" json:"payment_method_id"`
	SourceID        uint      `gorm:"index:idx_bank_accounts_source;not null" json:"source_id"`
	SourceType      string    `gorm:"index:idx_bank_accounts_source;size:10;not null" json:"source_type"`
	HolderName      string    `gorm:"size:150;not null" json:"holder_name"`
	BankName        string    `gorm:"size:100;not null" json:"bank_name"`
	AccountNumber   string    `gorm:"uniqueIndex;size:34;not null" json:"account_number"`
	IBAN            *string   `gorm:"column:iban;uniqueIndex;size:34" json:"iban"`
	Date            time.Time `gorm:"autoCreateTime" json:"date"`
}

func (BankAccount) TableName() string {
	return "bank_accounts"
}

// BankAccountView is the bank account projection merged into a person view
type BankAccountView struct {
	PaymentMethodID uint    `json:"payment_method_id"`
	HolderName      string  `json:"holder_name"`
	BankName        string  `json:"bank_name"`
	AccountNumber   string  `json:"account_number"`
	IBAN            *string `json:"iban,omitempty"`
}

func (b *BankAccount) ToView() *BankAccountView {
	return &BankAccountView{
		PaymentMethodID: b.PaymentMethodID,
		HolderName:      b.HolderName,
		BankName:        b.BankName,
		AccountNumber:   b.AccountNumber,
		IBAN:            b.IBAN,
	}
}

// BankCheck represents bank_checks table
type BankCheck struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PaymentMethodID uint      `gorm:"not null" json:"payment_method_id"`
	SourceID        uint      `gorm:"index:idx_bank_checks_source;not null" json:"source_id"`
	SourceType      string    `gorm:"index:idx_bank_checks_source;size:10;not null" json:"source_type"`
	BankName        string    `gorm:"size:100;not null" json:"bank_name"`
	HolderName      string    `gorm:"size:150;not null" json:"holder_name"`
	CheckNumber     string    `gorm:"uniqueIndex;size:30;not null" json:"check_number"`
	Date            time.Time `gorm:"autoCreateTime" json:"date"`
}

func (BankCheck) TableName() string {
	return "bank_checks"
}

// BankCheckView is the check projection merged into a person view
type BankCheckView struct {
	PaymentMethodID uint   `json:"payment_method_id"`
	BankName        string `json:"bank_name"`
	HolderName      string `json:"holder_name"`
	CheckNumber     string `json:"check_number"`
}

func (b *BankCheck) ToView() *BankCheckView {
	return &BankCheckView{
		PaymentMethodID: b.PaymentMethodID,
		BankName:        b.BankName,
		HolderName:      b.HolderName,
		CheckNumber:     b.CheckNumber,
	}
}

// Revenue represents revenues table (student fees and other income)
type Revenue struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	IncomeType      string          `gorm:"size:50;not null" json:"income_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	SourceID        uint            `gorm:"index:idx_revenues_source;not null" json:"source_id"`
	SourceType      string          `gorm:"index:idx_revenues_source;size:10;not null" json:"source_type"`
	EmpID           *uint           `gorm:"index" json:"emp_id,omitempty"`
	TransactionDate time.Time       `gorm:"not null" json:"transaction_date"`
	PaymentMethodID uint            `gorm:"not null" json:"payment_method_id"`
	Notes           string          `gorm:"type:text" json:"notes"`
}

func (Revenue) TableName() string {
	return "revenues"
}

// IncomeTypeFees marks revenue rows produced by student fee payments
const IncomeTypeFees = "fees"

// Expense represents expenses table, money paid out by an employee of the institute
type Expense struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ExpenseType     string          `gorm:"size:50;not null" json:"expense_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Receiver        string          `gorm:"size:150" json:"receiver"`
	EmpID           uint            `gorm:"index;not null" json:"emp_id"`
	ExpenseDate     time.Time       `gorm:"type:date;not null" json:"expense_date"`
	PaymentMethodID uint            `gorm:"not null" json:"payment_method_id"`
	Notes           string          `gorm:"type:text" json:"notes"`
}

func (Expense) TableName() string {
	return "expenses"
}

// AttendanceAnalytics represents attendance_analytics table
type AttendanceAnalytics struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SourceID       uint      `gorm:"uniqueIndex:idx_attendance_analytics_period;not null" json:"source_id"`
	SourceType     string    `gorm:"uniqueIndex:idx_attendance_analytics_period;size:10;not null" json:"source_type"`
	AttendanceRate float64   `gorm:"not null" json:"attendance_rate"`
	LateCount      int       `gorm:"not null" json:"late_count"`
	TotalHours     float64   `gorm:"not null" json:"total_hours"`
	PeriodStart    time.Time `gorm:"uniqueIndex:idx_attendance_analytics_period;type:date;not null" json:"period_start"`
	PeriodEnd      time.Time `gorm:"uniqueIndex:idx_attendance_analytics_period;type:date;not null" json:"period_end"`
	GeneratedAt    time.Time `gorm:"autoCreateTime" json:"generated_at"`
}

func (AttendanceAnalytics) TableName() string {
	return "attendance_analytics"
}
