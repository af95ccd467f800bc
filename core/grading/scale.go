package grading

import "fmt"

// Band is one step of the marks scale: marks >= MinMarks earn Grade.
type Band struct {
	MinMarks float64 `json:"min_marks"`
	Grade    Grade   `json:"grade"`
	Points   float64 `json:"points"`
	Remarks  string  `json:"remarks"`
	Range    string  `json:"range"`
}

// Classification is the outcome of grading a single course from its marks.
type Classification struct {
	Marks   float64 `json:"marks"`
	Grade   Grade   `json:"grade"`
	Points  float64 `json:"points"`
	Remarks string  `json:"remarks"`
	Passing bool    `json:"passing"`
}

// marks scale, lower bounds inclusive; the last band catches everything below.
var scale = [...]struct {
	min     float64
	grade   Grade
	remarks string
}{
	{84.5, GradeAPlus, "Exceptional"},
	{79.5, GradeA, "Outstanding"},
	{74.5, GradeBPlus, "Excellent"},
	{69.5, GradeB, "Very Good"},
	{64.5, GradeBMin, "Good"},
	{59.5, GradeCPlus, "Average"},
	{54.5, GradeC, "Satisfactory"},
	{49.5, GradeD, "Pass"},
	{0, GradeF, "Fail"},
}

// Classify maps marks to a grade on the scale.
// Marks are expected in [0, 100]; range checking is the caller's business.
func Classify(marks float64) Classification {
	b := scale[len(scale)-1]
	for _, band := range scale {
		if marks >= band.min {
			b = band
			break
		}
	}
	return Classification{
		Marks:   marks,
		Grade:   b.grade,
		Points:  b.grade.Points(),
		Remarks: b.remarks,
		Passing: b.grade != GradeF,
	}
}

// Bands returns the marks scale as a printable reference table.
func Bands() []Band {
	bands := make([]Band, len(scale))
	for i, b := range scale {
		var rng string
		switch {
		case i == 0:
			rng = fmt.Sprintf("%.2f and Above", b.min)
		case i == len(scale)-1:
			rng = fmt.Sprintf("%.2f and below", scale[i-1].min-0.01)
		default:
			rng = fmt.Sprintf("%.2f - %.2f", b.min, scale[i-1].min-0.01)
		}
		bands[i] = Band{
			MinMarks: b.min,
			Grade:    b.grade,
			Points:   b.grade.Points(),
			Remarks:  b.remarks,
			Range:    rng,
		}
	}
	return bands
}
