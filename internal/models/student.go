package models

import "time"

// Student represents a learner registered at the institution. The student
// number (STID) is the primary key; the national id carries its own unique
// index.
type Student struct {
	STID          string    `db:"stid" json:"stid"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	FatherName    string    `db:"father_name" json:"father_name"`
	SerialNumber  string    `db:"serial_number" json:"serial_number"`
	SerialLetter  string    `db:"serial_letter" json:"serial_letter"`
	SerialCode    string    `db:"serial_code" json:"serial_code"`
	BirthCity     string    `db:"birth_city" json:"birth_city"`
	Address       string    `db:"address" json:"address"`
	PostalCode    string    `db:"postal_code" json:"postal_code"`
	HomePhone     string    `db:"home_phone" json:"home_phone"`
	Department    string    `db:"department" json:"department"`
	Major         string    `db:"major" json:"major"`
	MaritalStatus string    `db:"marital_status" json:"marital_status"`
	NationalID    string    `db:"national_id" json:"national_id"`
	BirthDate     string    `db:"birth_date" json:"birth_date"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Department string
	Major      string
	Search     string
	Limit      int
	Offset     int
}
