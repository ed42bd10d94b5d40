package models

import "time"

// Teacher represents an instructor record. The teacher id is assigned by the
// allocator on creation and never supplied by callers.
type Teacher struct {
	TeacherID    string    `db:"teacher_id" json:"teacher_id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	FatherName   string    `db:"father_name" json:"father_name"`
	SerialNumber string    `db:"serial_number" json:"serial_number"`
	SerialLetter string    `db:"serial_letter" json:"serial_letter"`
	SerialCode   string    `db:"serial_code" json:"serial_code"`
	BirthCity    string    `db:"birth_city" json:"birth_city"`
	Address      string    `db:"address" json:"address"`
	PostalCode   string    `db:"postal_code" json:"postal_code"`
	HomePhone    string    `db:"home_phone" json:"home_phone"`
	Department   string    `db:"department" json:"department"`
	NationalID   string    `db:"national_id" json:"national_id"`
	BirthDate    string    `db:"birth_date" json:"birth_date"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Department string
	Search     string
	Limit      int
	Offset     int
}
