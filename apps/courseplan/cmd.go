package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/afthonios/catalog/core"
	"github.com/afthonios/catalog/core/course"
	"github.com/afthonios/catalog/core/plan"
	"github.com/afthonios/catalog/storage/cms"
)

// Output formats
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatHTML = "html"
)

var (
	isTerminalFunc = term.IsTerminal // mockable
	newConfigFunc  = core.NewConfig  // mockable

	errUnknownFormat = errors.New("unknown format")
)

type commandLine struct {
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	locale   string
	format   string
	courseID string
	fixtures string
}

func newCommandLine(in io.Reader, out, errOut io.Writer) *commandLine {
	return &commandLine{in: in, out: out, errOut: errOut}
}

func (cli *commandLine) execute(args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args)
	root.SetIn(cli.in)
	root.SetOut(cli.out)
	root.SetErr(cli.errOut)
	return root.Execute()
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "courseplan",
		Short: "Course plan parsing and rendering",
		Long: `courseplan parses course plans as authored in the CMS and renders them.

FILE may be "-" to read from stdin.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cli.locale, "locale", "l", core.LocaleFR, "Plan language (fr, en)")
	root.PersistentFlags().StringVarP(&cli.format, "format", "f", formatJSON, "Output format (json, yaml, html)")

	render := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a course plan",
		Long: `Render a course plan into its section tree, or into an HTML fragment.

Examples:
  courseplan render plan.md
  courseplan render plan.md --course-id 42 --format html`,
		Args: cobra.ExactArgs(1),
		RunE: cli.runRender,
	}
	render.Flags().StringVar(&cli.courseID, "course-id", "", "Course ID, used to scope the plan styles")

	sections := &cobra.Command{
		Use:   "sections FILE",
		Short: "Split a course plan into sections",
		Args:  cobra.ExactArgs(1),
		RunE:  cli.runSections,
	}

	annotate := &cobra.Command{
		Use:   "annotate LINE...",
		Short: "Show the inline markers found in plan lines",
		Args:  cobra.MinimumNArgs(1),
		RunE:  cli.runAnnotate,
	}

	crs := &cobra.Command{
		Use:   "course ID",
		Short: "Render the plan of a CMS course",
		Long: `Render the plan of a course fetched from the CMS configured by the environment,
or from a fixtures file.

Examples:
  ENV=PROD courseplan course 42
  courseplan course 1 --fixtures config/fixtures/courses.yaml --locale en`,
		Args: cobra.ExactArgs(1),
		RunE: cli.runCourse,
	}
	crs.Flags().StringVar(&cli.fixtures, "fixtures", "", "Courses YAML file (default: the CMS)")

	root.AddCommand(render, sections, annotate, crs)
	return root
}

func (cli *commandLine) planLocale() (plan.Locale, error) {
	l, ok := plan.ParseLocale(cli.locale)
	if !ok {
		return l, errors.Errorf("locale must be one of: %s", strings.Join(core.Locales, ", "))
	}
	return l, nil
}

func (cli *commandLine) runRender(cmd *cobra.Command, args []string) error {
	locale, err := cli.planLocale()
	if err != nil {
		return err
	}
	text, err := cli.readInput(args[0])
	if err != nil {
		return err
	}
	tree := plan.Render(plan.Input{PlanMD: text, Locale: locale, CourseID: cli.courseID})
	return cli.writeTree(tree)
}

func (cli *commandLine) runSections(cmd *cobra.Command, args []string) error {
	locale, err := cli.planLocale()
	if err != nil {
		return err
	}
	text, err := cli.readInput(args[0])
	if err != nil {
		return err
	}
	return cli.write(plan.Parse(text, locale))
}

func (cli *commandLine) runAnnotate(cmd *cobra.Command, args []string) error {
	lines := make([][]plan.Segment, 0, len(args))
	for _, line := range args {
		lines = append(lines, plan.Annotate(line))
	}
	return cli.write(lines)
}

func (cli *commandLine) runCourse(cmd *cobra.Command, args []string) error {
	repo, err := cli.courseRepository()
	if err != nil {
		return err
	}
	locale := "" // the course language
	if cmd.Flags().Changed("locale") {
		if _, err := cli.planLocale(); err != nil {
			return err
		}
		locale = cli.locale
	}

	svc := course.NewService(repo)
	tree, err := svc.Plan(cmd.Context(), args[0], locale)
	if err != nil {
		return errors.Wrapf(err, "course %s", args[0])
	}
	return cli.writeTree(tree)
}

func (cli *commandLine) courseRepository() (course.Repository, error) {
	if cli.fixtures != "" {
		return cms.NewFixtureRepository(cli.fixtures)
	}
	conf := newConfigFunc()
	if path := conf.CMS.FixturesPath; path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(conf.WorkDir, path)
		}
		return cms.NewFixtureRepository(path)
	}
	return cms.NewCourseRepository(conf.CMS, &http.Client{}), nil
}

// readInput reads the file at path, or stdin when path is "-".
func (cli *commandLine) readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cli.in)
		return string(b), errors.Wrap(err, "reading stdin")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading plan")
	}
	return string(b), nil
}

func (cli *commandLine) writeTree(tree plan.Tree) error {
	if cli.format != formatHTML {
		return cli.write(tree)
	}
	var buf bytes.Buffer
	if err := plan.RenderHTML(&buf, tree, nil); err != nil {
		return errors.Wrap(err, "rendering html")
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(cli.out)
	return err
}

// write encodes v as JSON (indented on a terminal) or YAML.
func (cli *commandLine) write(v interface{}) error {
	switch cli.format {
	case formatJSON:
		enc := json.NewEncoder(cli.out)
		if cli.isTerminal() {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(cli.out)
		//goland:noinspection GoUnhandledErrorResult
		defer enc.Close()
		return enc.Encode(v)
	default:
		return errors.Wrapf(errUnknownFormat, "%q", cli.format)
	}
}

func (cli *commandLine) isTerminal() bool {
	f, ok := cli.out.(*os.File)
	return ok && isTerminalFunc(int(f.Fd()))
}
