package domain

import "strings"

// SourceType discriminates the person variant on shared financial tables
type SourceType string

const (
	SourceEmployee SourceType = "employee"
	SourceStudent  SourceType = "student"
)

// Valid reports whether s is a known person variant
func (s SourceType) Valid() bool {
	return s == SourceEmployee || s == SourceStudent
}

// Gender is stored on the core person tables
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender normalizes a gender string
func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	}
	return "", ErrInvalidGender
}

// AttendanceType is the direction of an attendance punch
type AttendanceType string

const (
	AttendanceIn  AttendanceType = "in"
	AttendanceOut AttendanceType = "out"
)

// ParseAttendanceType validates an attendance punch type
func ParseAttendanceType(s string) (AttendanceType, error) {
	switch AttendanceType(strings.ToLower(strings.TrimSpace(s))) {
	case AttendanceIn:
		return AttendanceIn, nil
	case AttendanceOut:
		return AttendanceOut, nil
	}
	return "", ErrInvalidAttendanceType
}

// ============================================================
// Roles
// ============================================================

// RoleKind is the closed set of employee roles the orchestrator knows how to provision
type RoleKind int

const (
	RoleUnknown RoleKind = iota
	RoleAdministrator
	RoleManager
	RoleSupervisor
	RoleDataEntry
	RoleTeacher
)

var roleNames = map[RoleKind]string{
	RoleAdministrator: "Administrator",
	RoleManager:       "Manager",
	RoleSupervisor:    "Supervisor",
	RoleDataEntry:     "Data Entry",
	RoleTeacher:       "Teacher",
}

// RoleNames lists the role vocabulary in seeding order
func RoleNames() []string {
	return []string{
		roleNames[RoleAdministrator],
		roleNames[RoleManager],
		roleNames[RoleSupervisor],
		roleNames[RoleDataEntry],
		roleNames[RoleTeacher],
	}
}

// ParseRoleKind matches a role name case-insensitively. Unknown names yield RoleUnknown.
func ParseRoleKind(name string) RoleKind {
	n := strings.TrimSpace(name)
	for kind, roleName := range roleNames {
		if strings.EqualFold(roleName, n) {
			return kind
		}
	}
	return RoleUnknown
}

func (k RoleKind) String() string {
	if name, ok := roleNames[k]; ok {
		return name
	}
	return "Unknown"
}

// HasSystemAccess reports whether the role gets a login and a permission set
func (k RoleKind) HasSystemAccess() bool {
	switch k {
	case RoleAdministrator, RoleManager, RoleSupervisor, RoleDataEntry:
		return true
	}
	return false
}

// RequiresCourse reports whether the role is provisioned with a course assignment
func (k RoleKind) RequiresCourse() bool {
	return k == RoleTeacher
}

// PermissionSet is the capability sextuple granted per role
type PermissionSet struct {
	Add       bool `json:"add"`
	Edit      bool `json:"edit"`
	Delete    bool `json:"delete"`
	View      bool `json:"view"`
	Print     bool `json:"print"`
	Customize bool `json:"customize"`
}

// Permissions returns the preset for an access role. ok is false for roles without system access.
func (k RoleKind) Permissions() (set PermissionSet, ok bool) {
	switch k {
	case RoleAdministrator, RoleManager, RoleSupervisor:
		return PermissionSet{Add: true, Edit: true, Delete: true, View: true, Print: true, Customize: true}, true
	case RoleDataEntry:
		return PermissionSet{Add: true, Print: true, Customize: true}, true
	}
	return PermissionSet{}, false
}

// ============================================================
// Payment methods
// ============================================================

// InstrumentKind is the payment sub-record selected by a payment method name
type InstrumentKind int

const (
	InstrumentUnknown InstrumentKind = iota
	InstrumentNone                   // cash, nothing to store
	InstrumentEWallet
	InstrumentBankAccount
	InstrumentBankCheck
)

// CashMethod needs no instrument record
const CashMethod = "Cash"

// EWalletMethods is the e-wallet vocabulary
var EWalletMethods = []string{
	"InstaPay",
	"Vodafone Cash",
	"e& money",
	"Orange Money",
	"We Pay",
	"CIB Smart Wallet",
	"QNB Al Ahli E-Wallet",
	"BM Wallet",
	"Easycash",
	"EBank Wallet (Gebe)",
}

// BankAccountMethods is the bank-instrument vocabulary
var BankAccountMethods = []string{
	"Bank Transfer",
	"Credit Cards",
	"Debit Cards",
	"Meeza Cards",
	"Point of Sale (POS)",
}

// BankCheckMethods is the check vocabulary
var BankCheckMethods = []string{
	"Bank Check",
}

// PaymentMethodNames lists every payment method in seeding order
func PaymentMethodNames() []string {
	names := []string{CashMethod}
	names = append(names, EWalletMethods...)
	names = append(names, BankAccountMethods...)
	names = append(names, BankCheckMethods...)
	return names
}

// ResolveInstrument maps a payment method name onto its instrument kind
func ResolveInstrument(method string) InstrumentKind {
	m := strings.TrimSpace(method)
	if strings.EqualFold(m, CashMethod) {
		return InstrumentNone
	}
	if contains(EWalletMethods, m) {
		return InstrumentEWallet
	}
	if contains(BankAccountMethods, m) {
		return InstrumentBankAccount
	}
	if contains(BankCheckMethods, m) {
		return InstrumentBankCheck
	}
	return InstrumentUnknown
}

func (k InstrumentKind) String() string {
	switch k {
	case InstrumentNone:
		return "none"
	case InstrumentEWallet:
		return "e_wallet"
	case InstrumentBankAccount:
		return "bank_account"
	case InstrumentBankCheck:
		return "bank_check"
	}
	return "unknown"
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
