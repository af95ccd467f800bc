package grading

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// MaxCGPA is the top of the grade-point scale.
	MaxCGPA = 4.0

	// CumulativePrecision is the number of decimals a cumulative GPA is rounded to
	// before it is handed out, so repeated recomputations do not drift.
	CumulativePrecision = 4

	// DisplayPrecision is the default number of decimals shown to users.
	DisplayPrecision = 2
)

// Outcomes that leave a GPA undefined ("N/A"). None of them is a fault.
var (
	ErrInsufficientData = errors.New("not enough graded courses")
	ErrNoStanding       = errors.New("previous CGPA and credit hours not provided")
	ErrInvalidStanding  = errors.New("previous CGPA must be between 0 and 4 and credit hours cannot be negative")
	ErrInvalidRetake    = errors.New("only courses previously graded D or F can be improved")
)

// CreditOptions are the credit hours a course may carry.
var CreditOptions = []int{2, 3, 4, 6}

type (
	// Course is one row of a grade sheet.
	Course struct {
		ID            string `json:"id" yaml:"id"`
		Name          string `json:"name" yaml:"name"`
		Credits       int    `json:"credits" yaml:"credits"`
		Grade         Grade  `json:"grade" yaml:"grade"`
		Improved      bool   `json:"improved" yaml:"improved"`
		PreviousGrade Grade  `json:"previous_grade" yaml:"previous_grade"` // only meaningful when Improved
	}

	// Standing is the academic record prior to the current term.
	Standing struct {
		CGPA    float64 `json:"cgpa" yaml:"cgpa"`
		Credits int     `json:"credits" yaml:"credits"`
	}

	// GPA is a computed grade-point average. The zero value is undefined.
	GPA struct {
		Value         float64 `json:"value"`
		Credits       int     `json:"credits"`
		QualityPoints float64 `json:"quality_points"`
	}

	// Summary holds the term and cumulative GPAs of a set of courses.
	// A non-nil error means the matching GPA is undefined.
	Summary struct {
		Term          GPA
		TermErr       error
		Cumulative    GPA
		CumulativeErr error
	}
)

// Defined reports whether the GPA could be computed.
func (g GPA) Defined() bool {
	return g.Credits > 0
}

// Validate checks that the standing is usable for a cumulative GPA.
func (s Standing) Validate() error {
	if math.IsNaN(s.CGPA) || s.CGPA < 0 || s.CGPA > MaxCGPA || s.Credits < 0 {
		return ErrInvalidStanding
	}
	return nil
}

// ParseStanding builds a Standing out of raw form values.
func ParseStanding(cgpa, credits string) (Standing, error) {
	cgpa, credits = strings.TrimSpace(cgpa), strings.TrimSpace(credits)
	if cgpa == "" || credits == "" {
		return Standing{}, ErrNoStanding
	}
	c, err := strconv.ParseFloat(cgpa, 64)
	if err != nil {
		return Standing{}, errors.Wrap(ErrInvalidStanding, err.Error())
	}
	cr, err := strconv.Atoi(credits)
	if err != nil {
		return Standing{}, errors.Wrap(ErrInvalidStanding, err.Error())
	}
	s := Standing{CGPA: c, Credits: cr}
	return s, s.Validate()
}

// IsUndefined reports whether err only means a GPA cannot be shown (N/A).
func IsUndefined(err error) bool {
	switch errors.Cause(err) {
	case ErrInsufficientData, ErrNoStanding, ErrInvalidStanding, ErrInvalidRetake:
		return true
	}
	return false
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// FormatGPA renders a GPA for display, "N/A" when undefined.
func FormatGPA(g GPA, places int) string {
	if !g.Defined() {
		return "N/A"
	}
	return strconv.FormatFloat(Round(g.Value, places), 'f', places, 64)
}

// TermGPA computes the credit-weighted average of the graded courses.
// Ungraded courses are ignored. The value is returned at full precision.
func TermGPA(courses []Course) (GPA, error) {
	var gpa GPA
	for _, c := range courses {
		if !c.Grade.Graded() {
			continue
		}
		gpa.Credits += c.Credits
		gpa.QualityPoints += float64(c.Credits) * c.Grade.Points()
	}
	if gpa.Credits <= 0 {
		return GPA{}, ErrInsufficientData
	}
	gpa.Value = gpa.QualityPoints / float64(gpa.Credits)
	return gpa, nil
}

// CumulativeGPA blends the prior standing with the graded courses of the term.
//
// Improved (previously D) and repeated (previously F) courses are assumed to be
// part of prior.Credits already, so they only add quality points: the grade
// delta over a D for improved courses, the full new points for repeated ones.
// An improved course with no previous grade yet counts as a regular course.
// The result is rounded to CumulativePrecision decimals.
func CumulativeGPA(courses []Course, prior Standing, term GPA) (GPA, error) {
	if !term.Defined() {
		return GPA{}, ErrInsufficientData
	}
	if err := prior.Validate(); err != nil {
		return GPA{}, err
	}

	qp := prior.CGPA * float64(prior.Credits)
	credits := prior.Credits
	for _, c := range courses {
		if !c.Grade.Graded() {
			continue
		}
		pts := float64(c.Credits) * c.Grade.Points()
		switch {
		case !c.Improved || !c.PreviousGrade.Graded():
			qp += pts
			credits += c.Credits
		case c.PreviousGrade == GradeD:
			qp += pts - float64(c.Credits)*GradeD.Points()
		case c.PreviousGrade == GradeF:
			qp += pts
		default:
			return GPA{}, errors.Wrapf(ErrInvalidRetake, "course %q previously graded %s", c.Name, c.PreviousGrade)
		}
	}
	if credits <= 0 {
		return GPA{}, ErrInsufficientData
	}

	return GPA{
		Value:         Round(qp/float64(credits), CumulativePrecision),
		Credits:       credits,
		QualityPoints: qp,
	}, nil
}

// Summarize computes the term GPA and, when prior is set, the cumulative GPA.
func Summarize(courses []Course, prior *Standing) Summary {
	var sum Summary
	sum.Term, sum.TermErr = TermGPA(courses)
	switch {
	case prior == nil:
		sum.CumulativeErr = ErrNoStanding
	case sum.TermErr != nil:
		sum.CumulativeErr = sum.TermErr
	default:
		sum.Cumulative, sum.CumulativeErr = CumulativeGPA(courses, *prior, sum.Term)
	}
	return sum
}
