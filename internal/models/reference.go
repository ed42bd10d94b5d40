package models

// Fixed reference data for the registry's Persian academic domain. These
// tables are static configuration: validation consults them and the
// departments endpoint exposes the department→major mapping verbatim.

// StudentNumberProgramCode is the fixed program code occupying digits 4–9 of
// every student number.
const StudentNumberProgramCode = "114150"

// Departments is the closed set of faculties.
var Departments = []string{"فنی مهندسی", "علوم پایه", "اقتصاد"}

// DepartmentMajors maps each department to its admissible majors.
var DepartmentMajors = map[string][]string{
	"فنی مهندسی": {
		"مهندسی کامپیوتر", "مهندسی برق", "مهندسی مکانیک", "مهندسی عمران",
		"مهندسی صنایع", "مهندسی شیمی", "مهندسی مواد", "مهندسی هوافضا",
		"مهندسی نفت", "مهندسی معماری",
	},
	"علوم پایه": {
		"ریاضی", "فیزیک", "شیمی", "زیست‌شناسی", "زمین‌شناسی",
		"آمار", "علوم کامپیوتر", "بیوشیمی", "میکروبیولوژی", "ژنتیک",
	},
	"اقتصاد": {
		"اقتصاد", "مدیریت بازرگانی", "حسابداری", "مدیریت مالی",
		"مدیریت صنعتی", "اقتصاد کشاورزی", "اقتصاد بین‌الملل",
		"بانکداری", "بیمه", "مدیریت دولتی",
	},
}

// ProvincialCapitals lists the 31 Iranian provincial capitals accepted as
// birth cities.
var ProvincialCapitals = []string{
	"تهران", "مشهد", "اصفهان", "کرج", "شیراز", "تبریز", "قم", "اهواز", "کرمانشاه",
	"ارومیه", "رشت", "زاهدان", "همدان", "کرمان", "یزد", "اردبیل", "بندرعباس",
	"اراک", "اسلامشهر", "زنجان", "سنندج", "قزوین", "خرم‌آباد", "گرگان",
	"ساری", "بجنورد", "بوشهر", "بیرجند", "ایلام", "شهرکرد", "یاسوج",
}

// PersianAlphabet holds the 32 letters accepted as an identity serial letter.
const PersianAlphabet = "الفبپتثجچحخدذرزژسشصضطظعغفقکگلمنوهی"

// MaritalStatuses is the closed pair of accepted marital states.
var MaritalStatuses = []string{"مجرد", "متاهل"}
