package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/trezcool/gpacalc/core/grading"
)

var (
	// mockable
	isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	readFileFunc   = os.ReadFile

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out io.Writer
	svc *grading.Service
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  classify -marks MARKS                     - grade a single course out of its marks (0-100)")
	fmt.Fprintln(cli.out, "  scale                                     - print the marks scale")
	fmt.Fprintln(cli.out, "  grades                                    - print the grade points table")
	fmt.Fprintln(cli.out, "  gpa -file FILE [-prev-cgpa X -prev-credits N] - compute the GPA (and CGPA) of the courses in FILE (YAML or JSON)")
	fmt.Fprintln(cli.out, "Every command accepts -json to force JSON output.")
}

func (cli *commandLine) newFlagSet(name string) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	return fs, asJSON
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	classifyCmd, classifyJSON := cli.newFlagSet("classify")
	classifyMarks := classifyCmd.String("marks", "", "The marks obtained, between 0 and 100.")

	scaleCmd, scaleJSON := cli.newFlagSet("scale")
	gradesCmd, gradesJSON := cli.newFlagSet("grades")

	gpaCmd, gpaJSON := cli.newFlagSet("gpa")
	gpaFile := gpaCmd.String("file", "", "YAML or JSON file listing the courses of the term.")
	gpaPrevCGPA := gpaCmd.String("prev-cgpa", "", "Previous CGPA; overrides previous_cgpa of the file.")
	gpaPrevCredits := gpaCmd.String("prev-credits", "", "Credit hours completed so far; overrides previous_credits of the file.")

	switch args[1] {
	case "classify":
		if err := parse(classifyCmd, args[2:]); err != nil {
			return err
		}
		if *classifyMarks == "" {
			classifyCmd.Usage()
			return errHelp
		}
		return cli.classify(*classifyMarks, *classifyJSON)
	case "scale":
		if err := parse(scaleCmd, args[2:]); err != nil {
			return err
		}
		return cli.scale(*scaleJSON)
	case "grades":
		if err := parse(gradesCmd, args[2:]); err != nil {
			return err
		}
		return cli.grades(*gradesJSON)
	case "gpa":
		if err := parse(gpaCmd, args[2:]); err != nil {
			return err
		}
		if *gpaFile == "" {
			gpaCmd.Usage()
			return errHelp
		}
		return cli.gpa(*gpaFile, *gpaPrevCGPA, *gpaPrevCredits, *gpaJSON)
	default:
		cli.printUsage()
		return errHelp
	}
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

// output writes v as JSON, or as a table through writeTable when printing to a terminal.
func (cli *commandLine) output(asJSON bool, v interface{}, writeTable func(w io.Writer)) error {
	if asJSON || !isTerminalFunc() {
		enc := json.NewEncoder(cli.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	writeTable(tw)
	return tw.Flush()
}
