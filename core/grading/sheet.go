package grading

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrLastCourse     = errors.New("you need at least one course in the calculator")
	ErrNotGraded      = errors.New("grade the course before marking it as improved")
	ErrInvalidCredits = errors.New("credit hours must be one of 2, 3, 4 or 6")

	// mockable
	newID   = func() string { return uuid.New().String() }
	nowFunc = time.Now
)

type (
	// Sheet is a grade sheet being filled in: the courses of a term and,
	// optionally, the prior standing. Every mutation recomputes Summary and
	// notifies the OnChange observers.
	Sheet struct {
		ID        string    `json:"id"`
		Courses   []Course  `json:"courses"`
		Standing  *Standing `json:"standing"`
		Summary   Summary   `json:"-"`
		NextSeq   int       `json:"-"` // number of the next "Course N"
		Credits   int       `json:"-"` // credit hours of new courses
		UpdatedAt time.Time `json:"updated_at"`

		observers []func(Summary)
	}

	// CourseUpdate lists the course fields to change; nil fields are left as is.
	CourseUpdate struct {
		Name          *string
		Credits       *int
		Grade         *Grade
		PreviousGrade *Grade
	}
)

// NewSheet returns a sheet holding size ungraded courses of the given credit hours.
func NewSheet(size, credits int) *Sheet {
	if size < 1 {
		size = 1
	}
	s := &Sheet{
		ID:      newID(),
		Courses: make([]Course, 0, size),
		NextSeq: 1,
		Credits: credits,
	}
	for i := 0; i < size; i++ {
		s.appendCourse()
	}
	s.recompute()
	return s
}

// OnChange registers fn to be called with the new Summary after every mutation.
func (s *Sheet) OnChange(fn func(Summary)) {
	s.observers = append(s.observers, fn)
}

func (s *Sheet) recompute() {
	s.Summary = Summarize(s.Courses, s.Standing)
	s.UpdatedAt = nowFunc().UTC()
	for _, fn := range s.observers {
		fn(s.Summary)
	}
}

func (s *Sheet) appendCourse() Course {
	c := Course{
		ID:      newID(),
		Name:    fmt.Sprintf("Course %d", s.NextSeq),
		Credits: s.Credits,
	}
	s.NextSeq++
	s.Courses = append(s.Courses, c)
	return c
}

func (s *Sheet) index(id string) (int, error) {
	for i, c := range s.Courses {
		if c.ID == id {
			return i, nil
		}
	}
	return -1, ErrCourseNotFound
}

// Course returns the course with the given ID.
func (s *Sheet) Course(id string) (Course, error) {
	i, err := s.index(id)
	if err != nil {
		return Course{}, err
	}
	return s.Courses[i], nil
}

// AddCourse appends a new ungraded course.
func (s *Sheet) AddCourse() Course {
	c := s.appendCourse()
	s.recompute()
	return c
}

// RemoveCourse deletes a course. The last course of a sheet cannot be removed.
func (s *Sheet) RemoveCourse(id string) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	if len(s.Courses) <= 1 {
		return ErrLastCourse
	}
	s.Courses = append(s.Courses[:i], s.Courses[i+1:]...)
	s.recompute()
	return nil
}

// UpdateCourse applies upd to a course. Nothing changes if upd is invalid.
func (s *Sheet) UpdateCourse(id string, upd CourseUpdate) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	c := s.Courses[i]

	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Credits != nil {
		if !validCredits(*upd.Credits) {
			return ErrInvalidCredits
		}
		c.Credits = *upd.Credits
	}
	if upd.Grade != nil {
		if g := *upd.Grade; g.Graded() && !g.Valid() {
			return errors.Wrapf(ErrUnknownGrade, "%q", string(g))
		}
		c.Grade = *upd.Grade
		if !c.Grade.Graded() {
			c.Improved = false
			c.PreviousGrade = NoGrade
		}
	}
	if upd.PreviousGrade != nil {
		g := *upd.PreviousGrade
		if g.Graded() && !IsRetakeGrade(g) {
			return ErrInvalidRetake
		}
		c.PreviousGrade = g
	}

	s.Courses[i] = c
	s.recompute()
	return nil
}

// ToggleImprovement flips the improved flag of a graded course.
// Turning it on clears any previous grade picked before.
func (s *Sheet) ToggleImprovement(id string) (Course, error) {
	i, err := s.index(id)
	if err != nil {
		return Course{}, err
	}
	c := &s.Courses[i]
	if !c.Grade.Graded() {
		return Course{}, ErrNotGraded
	}
	c.Improved = !c.Improved
	if c.Improved {
		c.PreviousGrade = NoGrade
	}
	s.recompute()
	return *c, nil
}

// SetStanding sets the prior standing used for the cumulative GPA.
func (s *Sheet) SetStanding(st Standing) error {
	if err := st.Validate(); err != nil {
		return err
	}
	s.Standing = &st
	s.recompute()
	return nil
}

// ClearStanding drops the prior standing; the cumulative GPA becomes undefined.
func (s *Sheet) ClearStanding() {
	s.Standing = nil
	s.recompute()
}

// Reset clears every grade, improvement and the prior standing.
// Courses and their credit hours are kept.
func (s *Sheet) Reset() {
	for i := range s.Courses {
		c := &s.Courses[i]
		c.Grade = NoGrade
		c.Improved = false
		c.PreviousGrade = NoGrade
	}
	s.Standing = nil
	s.recompute()
}

// Clone returns a deep copy of the sheet, without its observers.
func (s *Sheet) Clone() *Sheet {
	cp := *s
	cp.Courses = make([]Course, len(s.Courses))
	copy(cp.Courses, s.Courses)
	if s.Standing != nil {
		st := *s.Standing
		cp.Standing = &st
	}
	cp.observers = nil
	return &cp
}

func validCredits(credits int) bool {
	for _, opt := range CreditOptions {
		if credits == opt {
			return true
		}
	}
	return false
}
