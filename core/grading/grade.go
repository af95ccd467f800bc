package grading

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownGrade is returned (or panicked with) for a symbol outside the grade table.
var ErrUnknownGrade = errors.New("unknown grade")

// Grade is a letter grade. The zero value, NoGrade, means the course is not graded yet.
type Grade string

const (
	NoGrade    Grade = ""
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeBMin  Grade = "B-"
	GradeCPlus Grade = "C+"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"

	noneSymbol = "NONE" // what grade pickers send for "no grade"
)

// GradePoint is one row of the grade-point table.
type GradePoint struct {
	Grade  Grade   `json:"grade" yaml:"grade"`
	Points float64 `json:"points" yaml:"points"`
}

var (
	// ordered from best to worst; never mutated
	gradeTable = [...]GradePoint{
		{GradeAPlus, 4.0},
		{GradeA, 3.7},
		{GradeBPlus, 3.4},
		{GradeB, 3.0},
		{GradeBMin, 2.5},
		{GradeCPlus, 2.0},
		{GradeC, 1.5},
		{GradeD, 1.0},
		{GradeF, 0.0},
	}

	gradePoints = func() map[Grade]float64 {
		m := make(map[Grade]float64, len(gradeTable))
		for _, gp := range gradeTable {
			m[gp.Grade] = gp.Points
		}
		return m
	}()
)

// Grades returns the grade-point table, best grade first.
func Grades() []GradePoint {
	table := make([]GradePoint, len(gradeTable))
	copy(table, gradeTable[:])
	return table
}

// ParseGrade converts user input into a Grade.
// Blank input and "none" are NoGrade; lookups are case-insensitive.
func ParseGrade(s string) (Grade, error) {
	sym := strings.ToUpper(strings.TrimSpace(s))
	if sym == "" || sym == noneSymbol {
		return NoGrade, nil
	}
	g := Grade(sym)
	if !g.Valid() {
		return NoGrade, errors.Wrapf(ErrUnknownGrade, "%q", s)
	}
	return g, nil
}

// Valid reports whether g is one of the letter grades of the table.
func (g Grade) Valid() bool {
	_, ok := gradePoints[g]
	return ok
}

// Graded reports whether a grade was assigned.
func (g Grade) Graded() bool {
	return g != NoGrade
}

// Points returns the grade points of g.
// It panics for NoGrade or any symbol outside the table: grades reaching the
// engine are validated upstream, so an unknown one is a programming error.
func (g Grade) Points() float64 {
	pts, ok := gradePoints[g]
	if !ok {
		panic(fmt.Sprintf("grading: %v: %q", ErrUnknownGrade, string(g)))
	}
	return pts
}

func (g Grade) String() string {
	if g == NoGrade {
		return "None"
	}
	return string(g)
}

// IsRetakeGrade reports whether a course graded g may be improved (D) or repeated (F).
func IsRetakeGrade(g Grade) bool {
	return g == GradeD || g == GradeF
}
