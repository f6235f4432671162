package models

type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorPurple Color = "purple"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorIndigo Color = "indigo"
	ColorPink   Color = "pink"
	ColorOrange Color = "orange"
)

// Colors — порядок, в котором цвета предлагаются в форме курса.
var Colors = []Color{ColorBlue, ColorGreen, ColorPurple, ColorRed, ColorYellow, ColorIndigo, ColorPink, ColorOrange}

func (c Color) Valid() bool {
	for _, v := range Colors {
		if v == c {
			return true
		}
	}
	return false
}

// Class — CSS-класс для отображения; неизвестный цвет показываем как "primary".
func (c Color) Class() string {
	if !c.Valid() {
		return "primary"
	}
	return string(c) + "-500"
}

type Course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
	Credits    int    `json:"credits"`
	Schedule   string `json:"schedule"`
	Semester   string `json:"semester"`
	Color      Color  `json:"color"`
}

// CourseByID — поиск курса по id в уже загруженном списке.
func CourseByID(courses []Course, id int64) (Course, bool) {
	for _, c := range courses {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}
