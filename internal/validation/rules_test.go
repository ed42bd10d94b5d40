package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentNumber(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"valid", "40211415012", true},
		{"too short", "4021141501", false},
		{"too long", "402114150123", false},
		{"wrong program code", "40211415112", false},
		{"non digit", "4021141501x", false},
		{"persian digits rejected", "۴۰۲۱۱۴۱۵۰۱۲", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := StudentNumber(tt.value)
			if tt.ok {
				assert.Nil(t, v)
			} else {
				require.NotNil(t, v)
				assert.Equal(t, "stid", v.Field)
			}
		})
	}
}

func TestPersianText(t *testing.T) {
	assert.Nil(t, PersianText("first_name", "علی"))
	assert.Nil(t, PersianText("first_name", "علی رضا"))
	assert.NotNil(t, PersianText("first_name", ""))
	assert.NotNil(t, PersianText("first_name", "Ali"))
	assert.NotNil(t, PersianText("first_name", "علی2"))
}

func TestBirthDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"valid", "1380/05/12", true},
		{"lower year bound", "1300/01/01", true},
		{"upper year bound", "1400/12/31", true},
		{"month thirteen", "1402/13/01", false},
		{"year out of range", "1402/05/12", false},
		{"day 30 in month 2 accepted", "1380/02/30", true},
		{"day 31 in month 2 accepted", "1380/02/31", true},
		{"day zero", "1380/02/00", false},
		{"two segments", "1380/05", false},
		{"four segments", "1380/05/12/01", false},
		{"non numeric", "1380/xx/12", false},
		{"wrong delimiter", "1380-05-12", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := BirthDate(tt.value)
			if tt.ok {
				assert.Nil(t, v)
			} else {
				require.NotNil(t, v)
				assert.Equal(t, "birth_date", v.Field)
			}
		})
	}
}

func TestIdentitySerialRules(t *testing.T) {
	assert.Nil(t, SerialNumber("123456"))
	assert.NotNil(t, SerialNumber("12345"))
	assert.NotNil(t, SerialNumber("12345a"))

	assert.Nil(t, SerialLetter("ب"))
	assert.Nil(t, SerialLetter("ژ"))
	assert.NotNil(t, SerialLetter(""))
	assert.NotNil(t, SerialLetter("بب"))
	assert.NotNil(t, SerialLetter("b"))

	assert.Nil(t, SerialCode("12"))
	assert.NotNil(t, SerialCode("1"))
	assert.NotNil(t, SerialCode("123"))
}

func TestBirthCity(t *testing.T) {
	assert.Nil(t, BirthCity("تهران"))
	assert.Nil(t, BirthCity("یاسوج"))
	assert.NotNil(t, BirthCity("کاشان"))
	assert.NotNil(t, BirthCity(""))
}

func TestAddress(t *testing.T) {
	assert.Nil(t, Address(""))
	long := make([]rune, 0, 101)
	for i := 0; i < 100; i++ {
		long = append(long, 'آ')
	}
	assert.Nil(t, Address(string(long)))
	long = append(long, 'آ')
	assert.NotNil(t, Address(string(long)))
}

func TestPostalCodeAndPhone(t *testing.T) {
	assert.Nil(t, PostalCode("1234567890"))
	assert.NotNil(t, PostalCode("123456789"))
	assert.NotNil(t, PostalCode("12345678901"))
	assert.NotNil(t, PostalCode("12345678x0"))

	assert.Nil(t, HomePhone("02112345678"))
	assert.Nil(t, HomePhone("021312345678"))
	assert.NotNil(t, HomePhone("2112345678"))
	assert.NotNil(t, HomePhone("0211234567"))
	assert.NotNil(t, HomePhone("0211234567890"))
}

func TestDepartmentAndMajor(t *testing.T) {
	assert.Nil(t, Department("فنی مهندسی"))
	assert.Nil(t, Department("اقتصاد"))
	assert.NotNil(t, Department("هنر"))

	// The same major flips between accepted and rejected purely on the
	// sibling department value.
	assert.Nil(t, MajorFor("فنی مهندسی", "مهندسی کامپیوتر"))
	assert.NotNil(t, MajorFor("علوم پایه", "مهندسی کامپیوتر"))
	assert.NotNil(t, MajorFor("اقتصاد", "مهندسی کامپیوتر"))
	assert.Nil(t, MajorFor("علوم پایه", "علوم کامپیوتر"))
	assert.NotNil(t, MajorFor("هنر", "مهندسی کامپیوتر"))
}

func TestMaritalStatus(t *testing.T) {
	assert.Nil(t, MaritalStatus("مجرد"))
	assert.Nil(t, MaritalStatus("متاهل"))
	assert.NotNil(t, MaritalStatus("متأهل"))
	assert.NotNil(t, MaritalStatus(""))
}

func TestNationalID(t *testing.T) {
	assert.Nil(t, NationalID("1234567890"))
	assert.NotNil(t, NationalID("123456789"))
	assert.NotNil(t, NationalID("123456789a"))
}

func TestCourseRules(t *testing.T) {
	assert.Nil(t, CourseName("ریاضی عمومی"))
	assert.NotNil(t, CourseName(""))
	assert.NotNil(t, CourseName("   "))
	assert.NotNil(t, CourseName("Math"))

	assert.Nil(t, Units(1))
	assert.Nil(t, Units(4))
	assert.NotNil(t, Units(0))
	assert.NotNil(t, Units(5))

	assert.Nil(t, TeacherReference("123456"))
	assert.NotNil(t, TeacherReference("12345"))
	assert.NotNil(t, TeacherReference("1234567"))
	assert.NotNil(t, TeacherReference("12345x"))
}
