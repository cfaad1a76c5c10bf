package services

import (
	"fmt"
	"strings"
	"time"

	"eduhub-records/internal/core/domain"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// PersonInput carries the core identity columns shared by employees and students
type PersonInput struct {
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id"`
	Birthday   string `json:"birthday"` // YYYY-MM-DD
	Gender     string `json:"gender"`
	IDPhoto    string `json:"id_photo"`
	Photo      string `json:"photo"`
}

func (p *PersonInput) parse() (time.Time, domain.Gender, error) {
	if strings.TrimSpace(p.FullName) == "" {
		return time.Time{}, "", fmt.Errorf("%w: full_name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(p.NationalID) == "" {
		return time.Time{}, "", fmt.Errorf("%w: national_id is required", domain.ErrInvalidInput)
	}
	birthday, err := parseDate(p.Birthday)
	if err != nil {
		return time.Time{}, "", err
	}
	gender, err := domain.ParseGender(p.Gender)
	if err != nil {
		return time.Time{}, "", err
	}
	return birthday, gender, nil
}

// PersonPatch updates core identity columns, nil fields are left untouched
type PersonPatch struct {
	FullName   *string `json:"full_name"`
	NationalID *string `json:"national_id"`
	Birthday   *string `json:"birthday"`
	Gender     *string `json:"gender"`
	IDPhoto    *string `json:"id_photo"`
	Photo      *string `json:"photo"`
}

func (p *PersonPatch) fields() (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if p == nil {
		return fields, nil
	}
	setString(fields, "full_name", p.FullName)
	setString(fields, "national_id", p.NationalID)
	setString(fields, "id_photo", p.IDPhoto)
	setString(fields, "photo", p.Photo)
	if p.Birthday != nil {
		birthday, err := parseDate(*p.Birthday)
		if err != nil {
			return nil, err
		}
		fields["birthday"] = birthday
	}
	if p.Gender != nil {
		gender, err := domain.ParseGender(*p.Gender)
		if err != nil {
			return nil, err
		}
		fields["gender"] = string(gender)
	}
	return fields, nil
}

// parseDate parses a YYYY-MM-DD date in UTC, the empty string is the zero date
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return t, nil
}

// dateOrToday parses a date, defaulting to the current UTC day
func dateOrToday(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	return parseDate(s)
}

func setString(fields map[string]interface{}, column string, v *string) {
	if v != nil {
		fields[column] = *v
	}
}

func setUint(fields map[string]interface{}, column string, v *uint) {
	if v != nil {
		fields[column] = *v
	}
}

func setBool(fields map[string]interface{}, column string, v *bool) {
	if v != nil {
		fields[column] = *v
	}
}

func setDecimal(fields map[string]interface{}, column string, v *decimal.Decimal) {
	if v != nil {
		fields[column] = *v
	}
}
