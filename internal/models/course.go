package models

import "time"

// Course represents a taught course. TeacherID is a non-owning reference to a
// teacher record; existence is checked on create and update but a deleted
// teacher leaves the reference dangling.
type Course struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Units      int       `db:"units" json:"units"`
	Department string    `db:"department" json:"department"`
	TeacherID  string    `db:"teacher_id" json:"teacher_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// CourseFilter captures filtering options for listing courses.
type CourseFilter struct {
	Department string
	Search     string
	Limit      int
	Offset     int
}
