package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/gpacalc/apps"
	"github.com/trezcool/gpacalc/core"
	"github.com/trezcool/gpacalc/core/grading"
)

// argumentError lists the invalid fields of a request, one per line.
func argumentError(err error) error {
	fields := make(map[string]string)
	if vErrs, ok := errors.Cause(err).(validator.ValidationErrors); ok {
		fields = core.FieldErrors(vErrs)
	} else if vErr, ok := core.AsValidationError(err); ok {
		for _, f := range vErr.Fields {
			fields[f.Field] = f.Error
		}
	} else {
		return err
	}
	if len(fields) == 0 {
		return apps.NewArgumentError(err.Error())
	}

	lines := make([]string, 0, len(fields))
	for fld, msg := range fields {
		lines = append(lines, fmt.Sprintf("%s: %s", fld, msg))
	}
	sort.Strings(lines)
	return apps.NewArgumentError(strings.Join(lines, "\n"))
}

func (cli *commandLine) classify(rawMarks string, asJSON bool) error {
	req := grading.ClassifyRequest{}
	if marks, err := strconv.ParseFloat(strings.TrimSpace(rawMarks), 64); err == nil {
		req.Marks = &marks
	}
	res, err := cli.svc.Classify(req)
	if err != nil {
		return argumentError(err)
	}
	return cli.output(asJSON, res, func(w io.Writer) {
		fmt.Fprintln(w, "Marks\tGrade\tPoints\tRemarks")
		fmt.Fprintf(w, "%.2f\t%s\t%.2f\t%s\n", res.Marks, res.Grade, res.Points, res.Remarks)
	})
}

func (cli *commandLine) scale(asJSON bool) error {
	bands := grading.Bands()
	return cli.output(asJSON, bands, func(w io.Writer) {
		fmt.Fprintln(w, "Marks Range\tGrade\tPoints\tRemarks")
		for _, b := range bands {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", b.Range, b.Grade, b.Points, b.Remarks)
		}
	})
}

func (cli *commandLine) grades(asJSON bool) error {
	table := grading.Grades()
	return cli.output(asJSON, table, func(w io.Writer) {
		fmt.Fprintln(w, "Grade\tPoints")
		for _, gp := range table {
			fmt.Fprintf(w, "%s\t%.2f\n", gp.Grade, gp.Points)
		}
	})
}

// loadCourses reads an EvaluateRequest out of a YAML (or JSON) file.
func loadCourses(path string) (grading.EvaluateRequest, error) {
	var req grading.EvaluateRequest
	data, err := readFileFunc(path)
	if err != nil {
		return req, errors.Wrap(err, "reading courses file")
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, errors.Wrapf(err, "decoding %s", path)
	}
	return req, nil
}

func (cli *commandLine) gpa(path, prevCGPA, prevCredits string, asJSON bool) error {
	req, err := loadCourses(path)
	if err != nil {
		return err
	}
	if prevCGPA != "" || prevCredits != "" {
		st, err := grading.ParseStanding(prevCGPA, prevCredits)
		if err != nil {
			return apps.NewArgumentError(fmt.Sprintf("-prev-cgpa %q -prev-credits %q: %v", prevCGPA, prevCredits, err))
		}
		req.PreviousCGPA, req.PreviousCredits = &st.CGPA, &st.Credits
	}

	res, err := cli.svc.Evaluate(req)
	if err != nil {
		return argumentError(err)
	}
	return cli.output(asJSON, res, func(w io.Writer) {
		fmt.Fprintln(w, "Course\tCredits\tGrade\tPrevious")
		for i, c := range req.Courses {
			name, prev := strings.TrimSpace(c.Name), "-"
			if name == "" {
				name = fmt.Sprintf("Course %d", i+1)
			}
			// grades were validated by Evaluate
			grade, _ := grading.ParseGrade(c.Grade)
			if pg, _ := grading.ParseGrade(c.PreviousGrade); c.Improved && pg.Graded() {
				prev = pg.String()
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, c.Credits, grade, prev)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "GPA\t%s\t(%d credits)\n", res.GPADisplay, res.TermCredits)
		if res.CGPA != nil {
			fmt.Fprintf(w, "CGPA\t%s\t(%d credits)\n", res.CGPADisplay, res.TotalCredits)
		} else {
			fmt.Fprintf(w, "CGPA\t%s\t%s\n", res.CGPADisplay, res.Note)
		}
	})
}
