package grading

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gpacalc/core"
)

var (
	gradeTag  = "grade"
	gradeText = "must be one of A+, A, B+, B, B-, C+, C, D, F or none"

	retakeGradeTag  = "retake_grade"
	retakeGradeText = "only courses previously graded D or F can be improved"

	creditsTag  = "credits"
	creditsText = "credit hours must be one of 2, 3, 4 or 6"

	requiredWithText = "this field is required"
)

// register custom validators
func init() {
	_ = core.Validate.RegisterValidation(gradeTag, gradeValidation)
	core.RegisterCustomTranslation(gradeTag, gradeText)

	_ = core.Validate.RegisterValidation(creditsTag, creditsValidation)
	core.RegisterCustomTranslation(creditsTag, creditsText)

	core.Validate.RegisterStructValidation(courseInputStructValidation, CourseInput{})
	core.RegisterCustomTranslation(retakeGradeTag, retakeGradeText)
}

// Custom Validators

// gradeValidation accepts any symbol ParseGrade understands, blank included.
func gradeValidation(fl validator.FieldLevel) bool {
	_, err := ParseGrade(fl.Field().String())
	return err == nil
}

func creditsValidation(fl validator.FieldLevel) bool {
	return validCredits(int(fl.Field().Int()))
}

// courseInputStructValidation checks the previous grade of improved courses.
func courseInputStructValidation(sl validator.StructLevel) {
	ci, ok := sl.Current().Interface().(CourseInput)
	if !ok || !ci.Improved {
		return
	}
	prev, err := ParseGrade(ci.PreviousGrade)
	if err != nil { // reported by the field validator
		return
	}
	if prev.Graded() && !IsRetakeGrade(prev) {
		sl.ReportError(ci.PreviousGrade, "previous_grade", "PreviousGrade", retakeGradeTag, "")
	}
}
