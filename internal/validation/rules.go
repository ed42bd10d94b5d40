// Package validation implements the registry's domain rules: per-field
// format checks and cross-field checks over raw record values. Rules are pure
// functions; each entity kind composes them in a fixed order and stops at the
// first violation.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/parsuni/registry-api/internal/models"
)

// Violation describes a single failed rule, attributable to one field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (v *Violation) Error() string {
	if v == nil {
		return "<nil>"
	}
	return v.Message
}

var (
	persianTextPattern = regexp.MustCompile(`^[\x{0600}-\x{06FF}\s]+$`)
	homePhonePattern   = regexp.MustCompile(`^0\d{2,3}\d{8}$`)
)

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func contains(set []string, v string) bool {
	for _, item := range set {
		if item == v {
			return true
		}
	}
	return false
}

// StudentNumber checks the 11-digit student number whose digits 4–9 must be
// the fixed program code.
func StudentNumber(v string) *Violation {
	if !isDigits(v, 11) || v[3:9] != models.StudentNumberProgramCode {
		return &Violation{Field: "stid", Message: "شماره دانشجویی باید ۱۱ رقم باشد و ارقام چهارم تا نهم باید ۱۱۴۱۵۰ باشد"}
	}
	return nil
}

// PersianText accepts only Persian letters and whitespace; the empty string
// fails the character class.
func PersianText(field, v string) *Violation {
	if !persianTextPattern.MatchString(v) {
		return &Violation{Field: field, Message: "نام، نام خانوادگی و نام پدر باید فقط شامل حروف فارسی و فاصله باشد"}
	}
	return nil
}

// BirthDate checks a Jalali YYYY/MM/DD date. Day 31 is accepted for every
// month; the original system never checked month lengths and callers depend
// on that looseness.
func BirthDate(v string) *Violation {
	parts := strings.Split(v, "/")
	if len(parts) != 3 {
		return &Violation{Field: "birth_date", Message: "فرمت تاریخ تولد باید به صورت YYYY/MM/DD باشد"}
	}
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return &Violation{Field: "birth_date", Message: "فرمت تاریخ تولد باید به صورت YYYY/MM/DD باشد"}
		}
		nums[i] = n
	}
	year, month, day := nums[0], nums[1], nums[2]
	if year < 1300 || year > 1400 || month < 1 || month > 12 || day < 1 || day > 31 {
		return &Violation{Field: "birth_date", Message: "تاریخ تولد باید به فرمت شمسی YYYY/MM/DD باشد (سال: ۱۳۰۰-۱۴۰۰، ماه: ۱-۱۲، روز: ۱-۳۱)"}
	}
	return nil
}

// SerialNumber checks the 6-digit identity-document serial.
func SerialNumber(v string) *Violation {
	if !isDigits(v, 6) {
		return &Violation{Field: "serial_number", Message: "سریال شناسنامه باید یک عدد ۶ رقمی باشد"}
	}
	return nil
}

// SerialLetter checks that the value is a single letter of the Persian
// alphabet.
func SerialLetter(v string) *Violation {
	if utf8.RuneCountInString(v) != 1 || !strings.Contains(models.PersianAlphabet, v) {
		return &Violation{Field: "serial_letter", Message: "حرف سریال شناسنامه باید یکی از حروف الفبای فارسی باشد"}
	}
	return nil
}

// SerialCode checks the 2-digit identity-document code.
func SerialCode(v string) *Violation {
	if !isDigits(v, 2) {
		return &Violation{Field: "serial_code", Message: "کد سریال شناسنامه باید یک عدد ۲ رقمی باشد"}
	}
	return nil
}

// BirthCity checks membership in the fixed provincial-capital list.
func BirthCity(v string) *Violation {
	if !contains(models.ProvincialCapitals, v) {
		return &Violation{Field: "birth_city", Message: "شهر محل تولد باید یکی از مراکز استان‌های ایران باشد"}
	}
	return nil
}

// Address caps the address at 100 characters; no charset restriction.
func Address(v string) *Violation {
	if utf8.RuneCountInString(v) > 100 {
		return &Violation{Field: "address", Message: "آدرس نباید بیشتر از ۱۰۰ کاراکتر باشد"}
	}
	return nil
}

// PostalCode checks the 10-digit postal code.
func PostalCode(v string) *Violation {
	if !isDigits(v, 10) {
		return &Violation{Field: "postal_code", Message: "کد پستی باید یک عدد ۱۰ رقمی باشد"}
	}
	return nil
}

// HomePhone checks the Iranian landline shape: 0, a 2–3 digit area code and
// an 8-digit subscriber number.
func HomePhone(v string) *Violation {
	if !homePhonePattern.MatchString(v) {
		return &Violation{Field: "home_phone", Message: "شماره تلفن ثابت باید با فرمت استاندارد ایران باشد (مثال: ۰۲۱۱۲۳۴۵۶۷۸)"}
	}
	return nil
}

// Department checks membership in the closed faculty set.
func Department(v string) *Violation {
	if !contains(models.Departments, v) {
		return &Violation{Field: "department", Message: "دانشکده باید یکی از گزینه‌های فنی مهندسی، علوم پایه یا اقتصاد باشد"}
	}
	return nil
}

// MajorFor is the cross-field rule tying a major to its already-validated
// department.
func MajorFor(department, major string) *Violation {
	majors, ok := models.DepartmentMajors[department]
	if !ok || !contains(majors, major) {
		return &Violation{Field: "major", Message: "رشته تحصیلی باید با دانشکده انتخاب‌شده مطابقت داشته باشد"}
	}
	return nil
}

// MaritalStatus checks the closed pair of marital states.
func MaritalStatus(v string) *Violation {
	if !contains(models.MaritalStatuses, v) {
		return &Violation{Field: "marital_status", Message: "وضعیت تأهل باید یکی از گزینه‌های مجرد یا متأهل باشد"}
	}
	return nil
}

// NationalID checks the 10-digit national id shape; global uniqueness is
// enforced at write time, not here.
func NationalID(v string) *Violation {
	if !isDigits(v, 10) {
		return &Violation{Field: "national_id", Message: "کد ملی باید یک عدد ۱۰ رقمی باشد"}
	}
	return nil
}

// CourseName accepts a non-empty Persian course name.
func CourseName(v string) *Violation {
	if !persianTextPattern.MatchString(v) {
		return &Violation{Field: "name", Message: "نام درس باید فقط شامل حروف فارسی و فاصله باشد"}
	}
	if strings.TrimSpace(v) == "" {
		return &Violation{Field: "name", Message: "نام درس نمی‌تواند خالی باشد"}
	}
	return nil
}

// Units checks the course unit count.
func Units(v int) *Violation {
	if v < 1 || v > 4 {
		return &Violation{Field: "units", Message: "تعداد واحدهای درس باید بین ۱ تا ۴ باشد"}
	}
	return nil
}

// TeacherReference checks the 6-digit teacher-id shape; existence of the
// referenced teacher is checked at write time.
func TeacherReference(v string) *Violation {
	if !isDigits(v, 6) {
		return &Violation{Field: "teacher_id", Message: "شناسه استاد باید یک عدد ۶ رقمی باشد"}
	}
	return nil
}
