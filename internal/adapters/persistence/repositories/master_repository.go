package repositories

import (
	"context"

	"eduhub-records/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// MasterRepository resolves lookup vocabularies (countries, governorates, roles, payment methods)
type MasterRepository struct {
	Countries      *Table[models.Country]
	Governorates   *Table[models.Governorate]
	Roles          *Table[models.Role]
	PaymentMethods *Table[models.PaymentMethod]
	Courses        *Table[models.Course]
	ClassRooms     *Table[models.ClassRoom]
}

// NewMasterRepository creates a new master repository
func NewMasterRepository(db *gorm.DB) *MasterRepository {
	return &MasterRepository{
		Countries:      NewTable[models.Country](db, "id"),
		Governorates:   NewTable[models.Governorate](db, "country_id"),
		Roles:          NewTable[models.Role](db, "id"),
		PaymentMethods: NewTable[models.PaymentMethod](db, "id"),
		Courses:        NewTable[models.Course](db, "id"),
		ClassRooms:     NewTable[models.ClassRoom](db, "id"),
	}
}

// RoleByName gets a role by its vocabulary name
func (r *MasterRepository) RoleByName(ctx context.Context, name string) (*models.Role, error) {
	return r.Roles.GetBy(ctx, "role_name", name)
}

// PaymentMethodByName gets a payment method by its vocabulary name
func (r *MasterRepository) PaymentMethodByName(ctx context.Context, name string) (*models.PaymentMethod, error) {
	return r.PaymentMethods.GetBy(ctx, "method_name", name)
}

// CountryName returns the country name of an id, empty when unknown
func (r *MasterRepository) CountryName(ctx context.Context, id uint) (string, error) {
	c, err := r.Countries.GetByID(ctx, id)
	if err != nil || c == nil {
		return "", err
	}
	return c.CountryName, nil
}

// GovernorateName returns the governorate name of an id, empty when unknown
func (r *MasterRepository) GovernorateName(ctx context.Context, id uint) (string, error) {
	g, err := r.Governorates.GetByID(ctx, id)
	if err != nil || g == nil {
		return "", err
	}
	return g.GovernorateName, nil
}

// RoleName returns the role name of an id, empty when unknown
func (r *MasterRepository) RoleName(ctx context.Context, id uint) (string, error) {
	role, err := r.Roles.GetByID(ctx, id)
	if err != nil || role == nil {
		return "", err
	}
	return role.RoleName, nil
}
