package grading

import (
	"fmt"
	"time"

	"github.com/trezcool/gpacalc/core"
)

// CourseInput is a course as sent by a client.
type CourseInput struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Credits       int    `json:"credits" yaml:"credits" validate:"credits"`
	Grade         string `json:"grade" yaml:"grade" validate:"grade"`
	Improved      bool   `json:"improved" yaml:"improved"`
	PreviousGrade string `json:"previous_grade" yaml:"previous_grade" validate:"grade"`
}

func (ci CourseInput) course(seq int) Course {
	// grades were validated already
	grade, _ := ParseGrade(ci.Grade)
	prev, _ := ParseGrade(ci.PreviousGrade)
	name := core.CleanString(ci.Name)
	if name == "" {
		name = fmt.Sprintf("Course %d", seq)
	}
	return Course{
		ID:            core.CleanString(ci.ID),
		Name:          name,
		Credits:       ci.Credits,
		Grade:         grade,
		Improved:      ci.Improved,
		PreviousGrade: prev,
	}
}

// EvaluateRequest contains the courses of a term and, optionally, the prior standing.
// PreviousCGPA and PreviousCredits go together.
type EvaluateRequest struct {
	Courses         []CourseInput `json:"courses" yaml:"courses" validate:"required,min=1,dive"`
	PreviousCGPA    *float64      `json:"previous_cgpa" yaml:"previous_cgpa" validate:"omitempty,min=0,max=4"`
	PreviousCredits *int          `json:"previous_credits" yaml:"previous_credits" validate:"omitempty,min=0"`
}

func (er *EvaluateRequest) Validate() error {
	if err := core.Validate.Struct(er); err != nil {
		return err
	}
	var flds []core.FieldError
	if er.PreviousCGPA == nil && er.PreviousCredits != nil {
		flds = append(flds, core.FieldError{Field: "previous_cgpa", Error: requiredWithText})
	}
	if er.PreviousCredits == nil && er.PreviousCGPA != nil {
		flds = append(flds, core.FieldError{Field: "previous_credits", Error: requiredWithText})
	}
	if len(flds) > 0 {
		return core.NewValidationError(ErrNoStanding, flds...)
	}
	return nil
}

func (er *EvaluateRequest) courses() []Course {
	courses := make([]Course, len(er.Courses))
	for i, ci := range er.Courses {
		courses[i] = ci.course(i + 1)
	}
	return courses
}

func (er *EvaluateRequest) standing() *Standing {
	if er.PreviousCGPA == nil || er.PreviousCredits == nil {
		return nil
	}
	return &Standing{CGPA: *er.PreviousCGPA, Credits: *er.PreviousCredits}
}

// Evaluation is the presentable outcome of Summarize. Undefined GPAs are null.
type Evaluation struct {
	GPA          *float64 `json:"gpa"`
	GPADisplay   string   `json:"gpa_display"`
	TermCredits  int      `json:"term_credits"`
	CGPA         *float64 `json:"cgpa"`
	CGPADisplay  string   `json:"cgpa_display"`
	TotalCredits int      `json:"total_credits"`
	Note         string   `json:"note,omitempty"` // why the CGPA is N/A
}

// NewEvaluation presents sum with GPAs shown to the given number of decimals.
func NewEvaluation(sum Summary, places int) Evaluation {
	ev := Evaluation{
		GPADisplay:  FormatGPA(sum.Term, places),
		CGPADisplay: FormatGPA(sum.Cumulative, places),
	}
	if sum.Term.Defined() {
		v := Round(sum.Term.Value, CumulativePrecision)
		ev.GPA = &v
		ev.TermCredits = sum.Term.Credits
	}
	if sum.Cumulative.Defined() {
		v := sum.Cumulative.Value
		ev.CGPA = &v
		ev.TotalCredits = sum.Cumulative.Credits
	} else if sum.CumulativeErr != nil {
		ev.Note = sum.CumulativeErr.Error()
	}
	return ev
}

// ClassifyRequest holds the marks of a single course.
type ClassifyRequest struct {
	Marks *float64 `json:"marks" yaml:"marks"`
}

// NewSheetRequest configures a new sheet; zero values fall back to the defaults.
type NewSheetRequest struct {
	Courses int `json:"courses" validate:"omitempty,min=1,max=50"`
	Credits int `json:"credits" validate:"omitempty,credits"`
}

// UpdateCourseRequest defines what may be changed on a sheet course.
type UpdateCourseRequest struct {
	Name          *string `json:"name"`
	Credits       *int    `json:"credits" validate:"omitempty,credits"`
	Grade         *string `json:"grade" validate:"omitempty,grade"`
	PreviousGrade *string `json:"previous_grade" validate:"omitempty,grade"`
}

func (ur *UpdateCourseRequest) Validate() error {
	return core.Validate.Struct(ur)
}

func (ur *UpdateCourseRequest) update() CourseUpdate {
	var upd CourseUpdate
	if ur.Name != nil {
		name := core.CleanString(*ur.Name)
		upd.Name = &name
	}
	upd.Credits = ur.Credits
	if ur.Grade != nil {
		g, _ := ParseGrade(*ur.Grade)
		upd.Grade = &g
	}
	if ur.PreviousGrade != nil {
		g, _ := ParseGrade(*ur.PreviousGrade)
		upd.PreviousGrade = &g
	}
	return upd
}

// StandingRequest sets the prior standing of a sheet.
type StandingRequest struct {
	CGPA    *float64 `json:"cgpa" validate:"required,min=0,max=4"`
	Credits *int     `json:"credits" validate:"required,min=0"`
}

func (sr *StandingRequest) Validate() error {
	return core.Validate.Struct(sr)
}

// SheetView is a sheet as shown to clients.
type SheetView struct {
	ID        string     `json:"id"`
	Courses   []Course   `json:"courses"`
	Standing  *Standing  `json:"standing"`
	Result    Evaluation `json:"result"`
	UpdatedAt time.Time  `json:"updated_at"`
}
