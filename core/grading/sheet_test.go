package grading

import (
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestSheet(t *testing.T, size int) *Sheet {
	var seq int
	origNewID := newID
	newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	t.Cleanup(func() { newID = origNewID })
	return NewSheet(size, 3)
}

func gradePtr(g Grade) *Grade { return &g }
func intPtr(i int) *int       { return &i }
func TestNewSheet(t *testing.T) {
	s := newTestSheet(t, 3)

	assert.Equal(t, "id-1", s.ID)
	if assert.Len(t, s.Courses, 3) {
		for i, c := range s.Courses {
			assert.Equal(t, fmt.Sprintf("Course %d", i+1), c.Name)
			assert.Equal(t, 3, c.Credits)
			assert.False(t, c.Grade.Graded())
		}
	}
	assert.Equal(t, ErrInsufficientData, s.Summary.TermErr)
	assert.Equal(t, ErrNoStanding, s.Summary.CumulativeErr)
	assert.False(t, s.UpdatedAt.IsZero())

	assert.Len(t, NewSheet(0, 3).Courses, 1)
}

func TestSheet_recompute(t *testing.T) {
	s := newTestSheet(t, 2)

	var calls int
	var last Summary
	s.OnChange(func(sum Summary) {
		calls++
		last = sum
	})

	first, second := s.Courses[0].ID, s.Courses[1].ID
	assert.NoError(t, s.UpdateCourse(first, CourseUpdate{Grade: gradePtr(GradeAPlus)}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "4.00", FormatGPA(last.Term, 2))

	assert.NoError(t, s.UpdateCourse(second, CourseUpdate{Grade: gradePtr(GradeF)}))
	assert.Equal(t, "2.00", FormatGPA(last.Term, 2))

	assert.NoError(t, s.SetStanding(Standing{CGPA: 3.0, Credits: 60}))
	assert.Equal(t, 3, calls)
	assert.True(t, last.Cumulative.Defined())

	s.ClearStanding()
	assert.Equal(t, ErrNoStanding, last.CumulativeErr)

	// failed mutations do not notify
	assert.Error(t, s.UpdateCourse("lol", CourseUpdate{}))
	assert.Equal(t, 4, calls)
	assert.Equal(t, s.Summary, last)
}

func TestSheet_UpdatedAt(t *testing.T) {
	now := time.Date(2021, 1, 15, 10, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return now }
	defer func() { nowFunc = time.Now }()

	s := newTestSheet(t, 1)
	assert.Equal(t, now, s.UpdatedAt)

	now = now.Add(time.Hour)
	s.AddCourse()
	assert.Equal(t, now, s.UpdatedAt)
}

func TestSheet_AddRemoveCourse(t *testing.T) {
	s := newTestSheet(t, 2)

	c := s.AddCourse()
	assert.Equal(t, "Course 3", c.Name)
	assert.Len(t, s.Courses, 3)

	assert.NoError(t, s.RemoveCourse(s.Courses[0].ID))
	assert.NoError(t, s.RemoveCourse(c.ID))
	assert.Len(t, s.Courses, 1)
	assert.Equal(t, "Course 2", s.Courses[0].Name)

	assert.Equal(t, ErrLastCourse, s.RemoveCourse(s.Courses[0].ID))
	assert.Equal(t, ErrCourseNotFound, s.RemoveCourse("lol"))
	assert.Len(t, s.Courses, 1)

	// names keep counting after removals
	assert.Equal(t, "Course 4", s.AddCourse().Name)
}

func TestSheet_UpdateCourse(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(s *Sheet, id string)
		upd     CourseUpdate
		want    Course
		wantErr error
	}{
		{
			name: "rename",
			upd:  CourseUpdate{Name: strPtr("Algebra")},
			want: Course{Name: "Algebra", Credits: 3},
		},
		{
			name: "credits",
			upd:  CourseUpdate{Credits: intPtr(4)},
			want: Course{Name: "Course 1", Credits: 4},
		},
		{
			name:    "invalid credits",
			upd:     CourseUpdate{Credits: intPtr(5)},
			wantErr: ErrInvalidCredits,
		},
		{
			name: "grade",
			upd:  CourseUpdate{Grade: gradePtr(GradeBMin)},
			want: Course{Name: "Course 1", Credits: 3, Grade: GradeBMin},
		},
		{
			name:    "unknown grade",
			upd:     CourseUpdate{Grade: gradePtr(Grade("E"))},
			wantErr: ErrUnknownGrade,
		},
		{
			name: "clearing the grade drops the improvement",
			setup: func(s *Sheet, id string) {
				_ = s.UpdateCourse(id, CourseUpdate{Grade: gradePtr(GradeA)})
				_, _ = s.ToggleImprovement(id)
				_ = s.UpdateCourse(id, CourseUpdate{PreviousGrade: gradePtr(GradeD)})
			},
			upd:  CourseUpdate{Grade: gradePtr(NoGrade)},
			want: Course{Name: "Course 1", Credits: 3},
		},
		{
			name:    "previous grade must be D or F",
			upd:     CourseUpdate{PreviousGrade: gradePtr(GradeC)},
			wantErr: ErrInvalidRetake,
		},
		{
			name: "previous grade",
			setup: func(s *Sheet, id string) {
				_ = s.UpdateCourse(id, CourseUpdate{Grade: gradePtr(GradeA)})
				_, _ = s.ToggleImprovement(id)
			},
			upd:  CourseUpdate{PreviousGrade: gradePtr(GradeF)},
			want: Course{Name: "Course 1", Credits: 3, Grade: GradeA, Improved: true, PreviousGrade: GradeF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSheet(t, 1)
			id := s.Courses[0].ID
			if tt.setup != nil {
				tt.setup(s, id)
			}
			before := s.Courses[0]

			err := s.UpdateCourse(id, tt.upd)
			if errors.Cause(err) != tt.wantErr {
				t.Fatalf("UpdateCourse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				assert.Equal(t, before, s.Courses[0])
				return
			}
			tt.want.ID = id
			assert.Equal(t, tt.want, s.Courses[0])
		})
	}
}

func TestSheet_ToggleImprovement(t *testing.T) {
	s := newTestSheet(t, 1)
	id := s.Courses[0].ID

	_, err := s.ToggleImprovement(id)
	assert.Equal(t, ErrNotGraded, err)
	_, err = s.ToggleImprovement("lol")
	assert.Equal(t, ErrCourseNotFound, err)

	assert.NoError(t, s.UpdateCourse(id, CourseUpdate{Grade: gradePtr(GradeAPlus)}))
	c, err := s.ToggleImprovement(id)
	assert.NoError(t, err)
	assert.True(t, c.Improved)

	assert.NoError(t, s.UpdateCourse(id, CourseUpdate{PreviousGrade: gradePtr(GradeD)}))
	c, err = s.ToggleImprovement(id)
	assert.NoError(t, err)
	assert.False(t, c.Improved)

	// toggling back on starts without a previous grade
	c, err = s.ToggleImprovement(id)
	assert.NoError(t, err)
	assert.True(t, c.Improved)
	assert.Equal(t, NoGrade, c.PreviousGrade)
}

func TestSheet_cumulative(t *testing.T) {
	s := newTestSheet(t, 2)
	first, second := s.Courses[0].ID, s.Courses[1].ID

	assert.NoError(t, s.UpdateCourse(first, CourseUpdate{Grade: gradePtr(GradeA)}))
	assert.NoError(t, s.UpdateCourse(second, CourseUpdate{Grade: gradePtr(GradeAPlus)}))
	_, err := s.ToggleImprovement(second)
	assert.NoError(t, err)
	assert.NoError(t, s.UpdateCourse(second, CourseUpdate{PreviousGrade: gradePtr(GradeD)}))

	assert.Equal(t, ErrInvalidStanding, s.SetStanding(Standing{CGPA: 5, Credits: 60}))
	assert.Nil(t, s.Standing)

	assert.NoError(t, s.SetStanding(Standing{CGPA: 3.0, Credits: 60}))
	assert.Equal(t, 3.1762, s.Summary.Cumulative.Value)
	assert.Equal(t, 63, s.Summary.Cumulative.Credits)
	assert.Equal(t, "3.85", FormatGPA(s.Summary.Term, 2))
}

func TestSheet_Reset(t *testing.T) {
	s := newTestSheet(t, 2)
	id := s.Courses[0].ID
	assert.NoError(t, s.UpdateCourse(id, CourseUpdate{Grade: gradePtr(GradeA), Credits: intPtr(6)}))
	_, _ = s.ToggleImprovement(id)
	assert.NoError(t, s.SetStanding(Standing{CGPA: 2, Credits: 10}))

	s.Reset()

	assert.Len(t, s.Courses, 2)
	assert.Equal(t, Course{ID: id, Name: "Course 1", Credits: 6}, s.Courses[0])
	assert.Nil(t, s.Standing)
	assert.Equal(t, ErrInsufficientData, s.Summary.TermErr)
}

func TestSheet_Clone(t *testing.T) {
	s := newTestSheet(t, 1)
	assert.NoError(t, s.SetStanding(Standing{CGPA: 2, Credits: 10}))
	s.OnChange(func(Summary) {})

	cp := s.Clone()
	cp.Courses[0].Name = "Changed"
	cp.Standing.CGPA = 4

	assert.Equal(t, "Course 1", s.Courses[0].Name)
	assert.Equal(t, 2.0, s.Standing.CGPA)
	assert.Nil(t, cp.observers)
}

func strPtr(s string) *string { return &s }
