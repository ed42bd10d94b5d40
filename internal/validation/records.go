package validation

import "github.com/parsuni/registry-api/internal/models"

// Per-entity validation passes. Rules run in a fixed declaration order and
// the first violation aborts the pass; a record is either accepted whole or
// rejected with that single violation.

// Student validates a complete student record.
func Student(s *models.Student) *Violation {
	rules := []func() *Violation{
		func() *Violation { return StudentNumber(s.STID) },
		func() *Violation { return PersianText("first_name", s.FirstName) },
		func() *Violation { return PersianText("last_name", s.LastName) },
		func() *Violation { return PersianText("father_name", s.FatherName) },
		func() *Violation { return SerialNumber(s.SerialNumber) },
		func() *Violation { return SerialLetter(s.SerialLetter) },
		func() *Violation { return SerialCode(s.SerialCode) },
		func() *Violation { return BirthCity(s.BirthCity) },
		func() *Violation { return Address(s.Address) },
		func() *Violation { return PostalCode(s.PostalCode) },
		func() *Violation { return HomePhone(s.HomePhone) },
		func() *Violation { return Department(s.Department) },
		func() *Violation { return MajorFor(s.Department, s.Major) },
		func() *Violation { return MaritalStatus(s.MaritalStatus) },
		func() *Violation { return NationalID(s.NationalID) },
		func() *Violation { return BirthDate(s.BirthDate) },
	}
	return run(rules)
}

// Teacher validates a complete teacher record. The teacher id is allocator
// assigned and carries no field rule here.
func Teacher(t *models.Teacher) *Violation {
	rules := []func() *Violation{
		func() *Violation { return PersianText("first_name", t.FirstName) },
		func() *Violation { return PersianText("last_name", t.LastName) },
		func() *Violation { return PersianText("father_name", t.FatherName) },
		func() *Violation { return SerialNumber(t.SerialNumber) },
		func() *Violation { return SerialLetter(t.SerialLetter) },
		func() *Violation { return SerialCode(t.SerialCode) },
		func() *Violation { return BirthCity(t.BirthCity) },
		func() *Violation { return Address(t.Address) },
		func() *Violation { return PostalCode(t.PostalCode) },
		func() *Violation { return HomePhone(t.HomePhone) },
		func() *Violation { return Department(t.Department) },
		func() *Violation { return NationalID(t.NationalID) },
		func() *Violation { return BirthDate(t.BirthDate) },
	}
	return run(rules)
}

// Course validates a complete course record.
func Course(c *models.Course) *Violation {
	rules := []func() *Violation{
		func() *Violation { return CourseName(c.Name) },
		func() *Violation { return Units(c.Units) },
		func() *Violation { return Department(c.Department) },
		func() *Violation { return TeacherReference(c.TeacherID) },
	}
	return run(rules)
}

func run(rules []func() *Violation) *Violation {
	for _, rule := range rules {
		if v := rule(); v != nil {
			return v
		}
	}
	return nil
}
