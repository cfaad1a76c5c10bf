package config

import (
	"errors"
	"log"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/core/domain"

	"gorm.io/gorm"
)

// SeedMasterData seeds the lookup vocabularies. Existing rows are left untouched.
func SeedMasterData(db *gorm.DB) error {
	// Seed Roles
	if err := seedRoles(db); err != nil {
		return err
	}

	// Seed Payment Methods
	if err := seedPaymentMethods(db); err != nil {
		return err
	}

	// Seed Countries and Governorates
	if err := seedCountries(db); err != nil {
		return err
	}

	// Seed Courses
	if err := seedCourses(db); err != nil {
		return err
	}

	// Seed Class Rooms
	if err := seedClassRooms(db); err != nil {
		return err
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}

// findOrCreate inserts row unless a row matching query already exists
func findOrCreate[T any](db *gorm.DB, row *T, label, query string, args ...interface{}) error {
	var existing T
	err := db.Where(query, args...).First(&existing).Error
	if err == nil {
		*row = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := db.Create(row).Error; err != nil {
		return err
	}
	log.Printf("   Created %s", label)
	return nil
}

func seedRoles(db *gorm.DB) error {
	for _, name := range domain.RoleNames() {
		role := models.Role{RoleName: name}
		if err := findOrCreate(db, &role, "role: "+name, "role_name = ?", name); err != nil {
			return err
		}
	}
	return nil
}

func seedPaymentMethods(db *gorm.DB) error {
	for _, name := range domain.PaymentMethodNames() {
		method := models.PaymentMethod{MethodName: name}
		if err := findOrCreate(db, &method, "payment_method: "+name, "method_name = ?", name); err != nil {
			return err
		}
	}
	return nil
}

func seedCountries(db *gorm.DB) error {
	countries := map[string][]string{
		"Egypt":        {"Cairo", "Giza", "Alexandria", "Dakahlia", "Sharqia", "Qalyubia", "Aswan", "Luxor"},
		"Saudi Arabia": {"Riyadh", "Makkah", "Eastern Province"},
		"Jordan":       {"Amman", "Irbid", "Zarqa"},
	}

	for _, name := range []string{"Egypt", "Saudi Arabia", "Jordan"} {
		country := models.Country{CountryName: name}
		if err := findOrCreate(db, &country, "country: "+name, "country_name = ?", name); err != nil {
			return err
		}
		for _, gov := range countries[name] {
			governorate := models.Governorate{CountryID: country.ID, GovernorateName: gov}
			if err := findOrCreate(db, &governorate, "governorate: "+gov,
				"country_id = ? AND governorate_name = ?", country.ID, gov); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedCourses(db *gorm.DB) error {
	courses := []models.Course{
		{CourseCode: "MATH", CourseName: "Mathematics"},
		{CourseCode: "PHYS", CourseName: "Physics"},
		{CourseCode: "CHEM", CourseName: "Chemistry"},
		{CourseCode: "ARAB", CourseName: "Arabic"},
		{CourseCode: "ENGL", CourseName: "English"},
	}

	for i := range courses {
		c := &courses[i]
		if err := findOrCreate(db, c, "course: "+c.CourseName, "course_code = ?", c.CourseCode); err != nil {
			return err
		}
	}
	return nil
}

func seedClassRooms(db *gorm.DB) error {
	rooms := []models.ClassRoom{
		{ClassroomCode: "A101", ClassroomName: "Hall A101", Counter: 30},
		{ClassroomCode: "A102", ClassroomName: "Hall A102", Counter: 30},
		{ClassroomCode: "LAB1", ClassroomName: "Science Lab", Counter: 20},
	}

	for i := range rooms {
		r := &rooms[i]
		if err := findOrCreate(db, r, "class_room: "+r.ClassroomName, "classroom_code = ?", r.ClassroomCode); err != nil {
			return err
		}
	}
	return nil
}
