package grading

import (
	"math"

	"github.com/pkg/errors"

	"github.com/trezcool/gpacalc/core"
)

var (
	ErrSheetNotFound = errors.New("sheet not found")

	errMarksNotNumber  = errors.New("Please enter a valid number for marks.")
	errMarksOutOfRange = errors.New("Marks should be between 0 and 100.")
)

type (
	// SheetRepository stores the sheets being filled in.
	SheetRepository interface {
		CreateSheet(sheet *Sheet) error
		// GetSheet returns a copy of the stored sheet.
		GetSheet(id string) (*Sheet, error)
		// UpdateSheet applies fn to the stored sheet atomically and returns a copy of the result.
		// The sheet is left untouched when fn fails.
		UpdateSheet(id string, fn func(*Sheet) error) (*Sheet, error)
		DeleteSheet(id string) error
	}

	Options struct {
		DisplayPrecision int
		DefaultCourses   int
		DefaultCredits   int
	}

	Service struct {
		repo SheetRepository
		log  core.Logger
		opts Options
	}
)

func NewService(repo SheetRepository, logger core.Logger, opts Options) *Service {
	if opts.DisplayPrecision <= 0 {
		opts.DisplayPrecision = DisplayPrecision
	}
	if opts.DefaultCourses <= 0 {
		opts.DefaultCourses = 6
	}
	if !validCredits(opts.DefaultCredits) {
		opts.DefaultCredits = 3
	}
	return &Service{repo: repo, log: logger, opts: opts}
}

// OptionsFromConfig picks the grading options out of the app configuration.
func OptionsFromConfig(conf *core.Config) Options {
	return Options{
		DisplayPrecision: conf.Grading.DisplayPrecision,
		DefaultCourses:   conf.Grading.DefaultCourses,
		DefaultCredits:   conf.Grading.DefaultCredits,
	}
}

// Evaluate computes the term GPA of the requested courses and, when the prior
// standing is given, the cumulative GPA. Undefined GPAs are not errors.
func (svc *Service) Evaluate(req EvaluateRequest) (Evaluation, error) {
	if err := req.Validate(); err != nil {
		return Evaluation{}, err
	}
	sum := Summarize(req.courses(), req.standing())
	if sum.CumulativeErr != nil && !IsUndefined(sum.CumulativeErr) {
		return Evaluation{}, sum.CumulativeErr
	}
	return NewEvaluation(sum, svc.opts.DisplayPrecision), nil
}

// Classify grades a single course out of its marks.
func (svc *Service) Classify(req ClassifyRequest) (Classification, error) {
	if req.Marks == nil || math.IsNaN(*req.Marks) || math.IsInf(*req.Marks, 0) {
		return Classification{}, core.NewValidationError(
			errMarksNotNumber, core.FieldError{Field: "marks", Error: errMarksNotNumber.Error()},
		)
	}
	if m := *req.Marks; m < 0 || m > 100 {
		return Classification{}, core.NewValidationError(
			errMarksOutOfRange, core.FieldError{Field: "marks", Error: errMarksOutOfRange.Error()},
		)
	}
	return Classify(*req.Marks), nil
}

func (svc *Service) view(s *Sheet) SheetView {
	return SheetView{
		ID:        s.ID,
		Courses:   s.Courses,
		Standing:  s.Standing,
		Result:    NewEvaluation(s.Summary, svc.opts.DisplayPrecision),
		UpdatedAt: s.UpdatedAt,
	}
}

// CreateSheet starts a new sheet of ungraded courses.
func (svc *Service) CreateSheet(req NewSheetRequest) (SheetView, error) {
	if err := core.Validate.Struct(req); err != nil {
		return SheetView{}, err
	}
	size, credits := req.Courses, req.Credits
	if size == 0 {
		size = svc.opts.DefaultCourses
	}
	if credits == 0 {
		credits = svc.opts.DefaultCredits
	}
	sheet := NewSheet(size, credits)
	if err := svc.repo.CreateSheet(sheet); err != nil {
		return SheetView{}, errors.Wrap(err, "creating sheet")
	}
	svc.log.Debug("sheet created", map[string]interface{}{"sheet": sheet.ID, "courses": size})
	return svc.view(sheet), nil
}

func (svc *Service) GetSheet(id string) (SheetView, error) {
	sheet, err := svc.repo.GetSheet(id)
	if err != nil {
		return SheetView{}, err
	}
	return svc.view(sheet), nil
}

func (svc *Service) DeleteSheet(id string) error {
	return svc.repo.DeleteSheet(id)
}

func (svc *Service) update(id string, fn func(*Sheet) error) (SheetView, error) {
	sheet, err := svc.repo.UpdateSheet(id, fn)
	if err != nil {
		return SheetView{}, asValidationError(err)
	}
	return svc.view(sheet), nil
}

func (svc *Service) AddCourse(id string) (SheetView, error) {
	return svc.update(id, func(s *Sheet) error {
		s.AddCourse()
		return nil
	})
}

func (svc *Service) RemoveCourse(id, courseID string) (SheetView, error) {
	return svc.update(id, func(s *Sheet) error {
		return s.RemoveCourse(courseID)
	})
}

func (svc *Service) UpdateCourse(id, courseID string, req UpdateCourseRequest) (SheetView, error) {
	if err := req.Validate(); err != nil {
		return SheetView{}, err
	}
	return svc.update(id, func(s *Sheet) error {
		return s.UpdateCourse(courseID, req.update())
	})
}

func (svc *Service) ToggleImprovement(id, courseID string) (SheetView, error) {
	return svc.update(id, func(s *Sheet) error {
		_, err := s.ToggleImprovement(courseID)
		return err
	})
}

func (svc *Service) SetStanding(id string, req StandingRequest) (SheetView, error) {
	if err := req.Validate(); err != nil {
		return SheetView{}, err
	}
	st := Standing{CGPA: *req.CGPA, Credits: *req.Credits}
	return svc.update(id, func(s *Sheet) error {
		return s.SetStanding(st)
	})
}

func (svc *Service) ClearStanding(id string) (SheetView, error) {
	return svc.update(id, func(s *Sheet) error {
		s.ClearStanding()
		return nil
	})
}

func (svc *Service) ResetSheet(id string) (SheetView, error) {
	return svc.update(id, func(s *Sheet) error {
		s.Reset()
		return nil
	})
}

// asValidationError turns the sheet errors a user can fix into validation errors.
func asValidationError(err error) error {
	var field string
	switch errors.Cause(err) {
	case ErrLastCourse:
	case ErrNotGraded, ErrUnknownGrade:
		field = "grade"
	case ErrInvalidRetake:
		field = "previous_grade"
	case ErrInvalidCredits:
		field = "credits"
	case ErrInvalidStanding:
		field = "standing"
	default:
		return err
	}
	if field == "" {
		return core.NewValidationError(err)
	}
	return core.NewValidationError(err, core.FieldError{Field: field, Error: errors.Cause(err).Error()})
}
