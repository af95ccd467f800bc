package grading_test

import (
	"io/ioutil"
	"log"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/gpacalc/core"
	"github.com/trezcool/gpacalc/core/grading"
	"github.com/trezcool/gpacalc/services/logger"
	"github.com/trezcool/gpacalc/storage/database/inmem"
)

func setup(t *testing.T) *grading.Service {
	db, err := inmemdb.Open(10)
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	std := log.New(ioutil.Discard, "", 0)
	return grading.NewService(inmemdb.NewSheetRepository(db), logsvc.NewConsoleLogger(std, true), grading.Options{})
}

func float(f float64) *float64 { return &f }
func integer(i int) *int       { return &i }
func str(s string) *string     { return &s }

func fieldErrors(t *testing.T, err error) map[string]string {
	if vErrs, ok := err.(validator.ValidationErrors); ok {
		return core.FieldErrors(vErrs)
	}
	vErr, ok := core.AsValidationError(err)
	if !ok {
		t.Fatalf("not a validation error: %v", err)
	}
	flds := make(map[string]string)
	for _, f := range vErr.Fields {
		flds[f.Field] = f.Error
	}
	return flds
}

func TestService_Evaluate(t *testing.T) {
	svc := setup(t)

	tests := []struct {
		name       string
		req        grading.EvaluateRequest
		wantGPA    *float64
		wantCGPA   *float64
		wantDisp   [2]string
		wantNote   string
		wantFields []string
	}{
		{name: "no courses", req: grading.EvaluateRequest{}, wantFields: []string{"courses"}},
		{
			name:       "invalid courses",
			req:        grading.EvaluateRequest{Courses: []grading.CourseInput{{Credits: 5, Grade: "E"}}},
			wantFields: []string{"courses[0].credits", "courses[0].grade"},
		},
		{
			name: "previous grade not D or F",
			req: grading.EvaluateRequest{Courses: []grading.CourseInput{
				{Credits: 3, Grade: "A", Improved: true, PreviousGrade: "B"},
			}},
			wantFields: []string{"courses[0].previous_grade"},
		},
		{
			name: "half standing",
			req: grading.EvaluateRequest{
				Courses:      []grading.CourseInput{{Credits: 3, Grade: "A"}},
				PreviousCGPA: float(3),
			},
			wantFields: []string{"previous_credits"},
		},
		{
			name: "standing out of range",
			req: grading.EvaluateRequest{
				Courses:         []grading.CourseInput{{Credits: 3, Grade: "A"}},
				PreviousCGPA:    float(4.5),
				PreviousCredits: integer(-1),
			},
			wantFields: []string{"previous_cgpa", "previous_credits"},
		},
		{
			name:     "nothing graded",
			req:      grading.EvaluateRequest{Courses: []grading.CourseInput{{Credits: 3}, {Credits: 4, Grade: "none"}}},
			wantDisp: [2]string{"N/A", "N/A"},
			wantNote: grading.ErrNoStanding.Error(),
		},
		{
			name:     "term only",
			req:      grading.EvaluateRequest{Courses: []grading.CourseInput{{Credits: 3, Grade: "A+"}, {Credits: 3, Grade: "f"}}},
			wantGPA:  float(2),
			wantDisp: [2]string{"2.00", "N/A"},
			wantNote: grading.ErrNoStanding.Error(),
		},
		{
			name: "with standing",
			req: grading.EvaluateRequest{
				Courses: []grading.CourseInput{
					{Name: "Algebra", Credits: 3, Grade: "A"},
					{Credits: 3, Grade: "A+", Improved: true, PreviousGrade: "D"},
				},
				PreviousCGPA:    float(3),
				PreviousCredits: integer(60),
			},
			wantGPA:  float(3.85),
			wantCGPA: float(3.1762),
			wantDisp: [2]string{"3.85", "3.18"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Evaluate(tt.req)
			if len(tt.wantFields) > 0 {
				if !assert.Error(t, err) {
					return
				}
				flds := fieldErrors(t, err)
				for _, f := range tt.wantFields {
					assert.Contains(t, flds, f)
				}
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tt.wantGPA, got.GPA)
			assert.Equal(t, tt.wantCGPA, got.CGPA)
			assert.Equal(t, tt.wantDisp[0], got.GPADisplay)
			assert.Equal(t, tt.wantDisp[1], got.CGPADisplay)
			assert.Equal(t, tt.wantNote, got.Note)
		})
	}
}

func TestService_Classify(t *testing.T) {
	svc := setup(t)

	tests := []struct {
		name      string
		marks     *float64
		wantGrade grading.Grade
		wantErr   string
	}{
		{name: "missing", wantErr: "Please enter a valid number for marks."},
		{name: "too high", marks: float(100.5), wantErr: "Marks should be between 0 and 100."},
		{name: "negative", marks: float(-0.1), wantErr: "Marks should be between 0 and 100."},
		{name: "zero", marks: float(0), wantGrade: grading.GradeF},
		{name: "full marks", marks: float(100), wantGrade: grading.GradeAPlus},
		{name: "B-", marks: float(64.5), wantGrade: grading.GradeBMin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Classify(grading.ClassifyRequest{Marks: tt.marks})
			if tt.wantErr != "" {
				assert.Equal(t, map[string]string{"marks": tt.wantErr}, fieldErrors(t, err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantGrade, got.Grade)
		})
	}
}

func TestService_sheet(t *testing.T) {
	svc := setup(t)

	_, err := svc.CreateSheet(grading.NewSheetRequest{Credits: 5})
	assert.Contains(t, fieldErrors(t, err), "credits")

	view, err := svc.CreateSheet(grading.NewSheetRequest{})
	if !assert.NoError(t, err) {
		return
	}
	assert.Len(t, view.Courses, 6)
	assert.Equal(t, 3, view.Courses[0].Credits)
	assert.Equal(t, "N/A", view.Result.GPADisplay)
	id := view.ID

	first, second := view.Courses[0].ID, view.Courses[1].ID

	_, err = svc.UpdateCourse(id, first, grading.UpdateCourseRequest{Grade: str("Z")})
	assert.Contains(t, fieldErrors(t, err), "grade")

	view, err = svc.UpdateCourse(id, first, grading.UpdateCourseRequest{Name: str(" Algebra "), Grade: str("a")})
	if assert.NoError(t, err) {
		assert.Equal(t, "Algebra", view.Courses[0].Name)
		assert.Equal(t, "3.70", view.Result.GPADisplay)
	}

	// improvement needs a grade first
	_, err = svc.ToggleImprovement(id, second)
	assert.Equal(t, map[string]string{"grade": grading.ErrNotGraded.Error()}, fieldErrors(t, err))

	_, err = svc.UpdateCourse(id, second, grading.UpdateCourseRequest{Grade: str("A+")})
	assert.NoError(t, err)
	_, err = svc.ToggleImprovement(id, second)
	assert.NoError(t, err)
	_, err = svc.UpdateCourse(id, second, grading.UpdateCourseRequest{PreviousGrade: str("B")})
	assert.Contains(t, fieldErrors(t, err), "previous_grade")
	_, err = svc.UpdateCourse(id, second, grading.UpdateCourseRequest{PreviousGrade: str("D")})
	assert.NoError(t, err)

	_, err = svc.SetStanding(id, grading.StandingRequest{CGPA: float(4.2), Credits: integer(60)})
	assert.Contains(t, fieldErrors(t, err), "cgpa")
	_, err = svc.SetStanding(id, grading.StandingRequest{CGPA: float(3)})
	assert.Contains(t, fieldErrors(t, err), "credits")

	view, err = svc.SetStanding(id, grading.StandingRequest{CGPA: float(3), Credits: integer(60)})
	if assert.NoError(t, err) {
		assert.Equal(t, "3.85", view.Result.GPADisplay)
		assert.Equal(t, "3.18", view.Result.CGPADisplay)
		assert.Equal(t, 63, view.Result.TotalCredits)
	}

	view, err = svc.ClearStanding(id)
	if assert.NoError(t, err) {
		assert.Nil(t, view.Result.CGPA)
		assert.Equal(t, grading.ErrNoStanding.Error(), view.Result.Note)
	}

	view, err = svc.AddCourse(id)
	if assert.NoError(t, err) {
		assert.Len(t, view.Courses, 7)
		assert.Equal(t, "Course 7", view.Courses[6].Name)
	}

	view, err = svc.RemoveCourse(id, first)
	if assert.NoError(t, err) {
		assert.Len(t, view.Courses, 6)
		assert.Equal(t, "4.00", view.Result.GPADisplay)
	}
	_, err = svc.RemoveCourse(id, first)
	assert.Equal(t, grading.ErrCourseNotFound, errors.Cause(err))

	view, err = svc.ResetSheet(id)
	if assert.NoError(t, err) {
		assert.Len(t, view.Courses, 6)
		assert.Equal(t, "N/A", view.Result.GPADisplay)
		for _, c := range view.Courses {
			assert.False(t, c.Improved)
		}
	}

	got, err := svc.GetSheet(id)
	if assert.NoError(t, err) {
		assert.Equal(t, view, got)
	}

	assert.NoError(t, svc.DeleteSheet(id))
	_, err = svc.GetSheet(id)
	assert.Equal(t, grading.ErrSheetNotFound, err)
}

func TestService_RemoveCourse_last(t *testing.T) {
	svc := setup(t)

	view, err := svc.CreateSheet(grading.NewSheetRequest{Courses: 1, Credits: 4})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, 4, view.Courses[0].Credits)

	_, err = svc.RemoveCourse(view.ID, view.Courses[0].ID)
	vErr, ok := core.AsValidationError(err)
	if assert.True(t, ok) {
		assert.Equal(t, grading.ErrLastCourse, vErr.Err)
		assert.Empty(t, vErr.Fields)
	}
}
