package catalog

// QuestionKey identifies one fixed survey question. The set of keys is closed:
// the form, the persistence layer and the report all iterate the same catalog,
// so a key that is not declared here can neither be submitted nor rendered.
type QuestionKey string

const (
	AttendanceAll        QuestionKey = "attendance_all"
	DepartmentsRep       QuestionKey = "departments_rep"
	BuildingCleanInside  QuestionKey = "building_clean_inside"
	BuildingCleanOutside QuestionKey = "building_clean_outside"
	ProductionClean      QuestionKey = "production_clean"
	WarehouseClean       QuestionKey = "warehouse_clean"
	UniformCompany       QuestionKey = "uniform_company"
	Appearance           QuestionKey = "appearance"
	UniformFactory       QuestionKey = "uniform_factory"
	TrucksLoaded         QuestionKey = "trucks_loaded"
	ProductionOrders     QuestionKey = "production_orders"
	CafeteriaReady       QuestionKey = "cafeteria_ready"
	LeavingOnTime        QuestionKey = "leaving_on_time"
)

// Answer tokens stored on the wire. Display strings are produced by LocalizeAnswer.
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

const (
	// MaxCustomTasks is the number of free-text follow-up lines on the form.
	MaxCustomTasks = 5
	// MaxDepartments caps the department tags on a single action row.
	MaxDepartments = 2
	// Placeholder renders wherever a value is absent or not applicable.
	Placeholder = "-"
)

// Section groups questions the way the printed report lays them out.
type Section struct {
	Title string
	Keys  []QuestionKey
}

// Sections in report order. The custom-tasks block sits between the third and
// fourth section in the printed report and is handled separately by the renderer.
var Sections = []Section{
	{Title: "1- الحضور", Keys: []QuestionKey{AttendanceAll, DepartmentsRep}},
	{Title: "2- جولة تفقدية", Keys: []QuestionKey{
		BuildingCleanInside, BuildingCleanOutside, ProductionClean,
		WarehouseClean, UniformCompany, Appearance, UniformFactory,
	}},
	{Title: "3- سير العمل", Keys: []QuestionKey{TrucksLoaded, ProductionOrders, CafeteriaReady}},
	{Title: "4- الإنصراف", Keys: []QuestionKey{LeavingOnTime}},
}

// CustomTasksTitle heads the free-text follow-up block in the report.
const CustomTasksTitle = "5- أعمال محددة من مدير كل قسم للمتابعة"

var questionLabels = map[QuestionKey]string{
	AttendanceAll:        "حضور جميع العاملين في الوقت المحدد",
	DepartmentsRep:       "جميع الإدارات ممثلة بموظف واحد على الأقل",
	BuildingCleanInside:  "النظافة الداخلية للمبنى",
	BuildingCleanOutside: "النظافة الخارجية للمبنى",
	ProductionClean:      "النظافة داخل صالة الإنتاج",
	WarehouseClean:       "النظافة داخل المخازن",
	UniformCompany:       "ارتداء جميع العاملين زي الشركة",
	Appearance:           "التزام جميع العاملين بالمظهر العام (حلاقة الذقن)",
	UniformFactory:       "ارتداء جميع العاملين بالمصنع زي التصنيع (غطاء الرأس – الكمامة – القفازات)",
	TrucksLoaded:         "جميع السيارات تم تحميلها و خروجها للتوزيع",
	ProductionOrders:     "جميع أوامر الإنتاج منفذة و مفعلة على النظام",
	CafeteriaReady:       "الكافتيريا مجهزة و معدة لاستقبال العاملين",
	LeavingOnTime:        "جميع العاملين ملتزمون بموعد الانصراف",
}

// Departments is the closed set of valid department tags for action rows.
var Departments = []string{"الإنتاج", "التشغيل", "التفعيل", "الإدراك"}

// Questions returns every question key in section order.
func Questions() []QuestionKey {
	keys := make([]QuestionKey, 0, len(questionLabels))
	for _, sec := range Sections {
		keys = append(keys, sec.Keys...)
	}
	return keys
}

// Label returns the Arabic label for a question, or the raw key when unknown.
func Label(key QuestionKey) string {
	if l, ok := questionLabels[key]; ok {
		return l
	}
	return string(key)
}

// IsQuestion reports whether key belongs to the fixed catalog.
func IsQuestion(key QuestionKey) bool {
	_, ok := questionLabels[key]
	return ok
}

// IsDepartment reports whether d belongs to the department catalog.
func IsDepartment(d string) bool {
	for _, known := range Departments {
		if known == d {
			return true
		}
	}
	return false
}

// LocalizeAnswer maps the internal answer tokens to their display strings.
// Empty answers render as the placeholder glyph; unrecognized values pass
// through verbatim.
func LocalizeAnswer(answer string) string {
	switch answer {
	case "":
		return Placeholder
	case AnswerYes:
		return "نعم"
	case AnswerNo:
		return "لا"
	default:
		return answer
	}
}
