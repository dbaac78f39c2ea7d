package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Level is the severity of a status line.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "SUCCESS"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Reporter writes leveled status lines.
type Reporter struct {
	out          io.Writer
	verbose      bool
	showCommands bool
	colors       map[Level]*color.Color
	bold         *color.Color
	dim          *color.Color
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithColor forces color on or off, overriding terminal detection.
func WithColor(enabled bool) Option {
	return func(r *Reporter) {
		r.setColor(enabled)
	}
}

// WithVerbose makes the reporter echo the output of every command.
func WithVerbose(verbose bool) Option {
	return func(r *Reporter) {
		r.verbose = verbose
	}
}

// WithCommands makes the reporter print the command line of every command.
func WithCommands(show bool) Option {
	return func(r *Reporter) {
		r.showCommands = show
	}
}

// New creates a reporter writing to out. Color is enabled when out is a
// terminal and NO_COLOR is unset.
func New(out io.Writer, opts ...Option) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	r := &Reporter{
		out: out,
		colors: map[Level]*color.Color{
			LevelInfo:    color.New(color.FgBlue),
			LevelSuccess: color.New(color.FgGreen),
			LevelWarning: color.New(color.FgYellow),
			LevelError:   color.New(color.FgRed),
		},
		bold: color.New(color.Bold),
		dim:  color.New(color.Faint),
	}
	r.setColor(colorSupported(out))
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func colorSupported(out io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Reporter) setColor(enabled bool) {
	all := []*color.Color{r.bold, r.dim}
	for _, c := range r.colors {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Report writes one status line, e.g. "[INFO] Installing containerd".
func (r *Reporter) Report(level Level, message string) {
	prefix := r.colors[level].Sprintf("[%s]", level)
	r.println(prefix + " " + message)
}

// Infof reports at info level.
func (r *Reporter) Infof(format string, args ...any) {
	r.Report(LevelInfo, fmt.Sprintf(format, args...))
}

// Successf reports at success level.
func (r *Reporter) Successf(format string, args ...any) {
	r.Report(LevelSuccess, fmt.Sprintf(format, args...))
}

// Warningf reports at warning level.
func (r *Reporter) Warningf(format string, args ...any) {
	r.Report(LevelWarning, fmt.Sprintf(format, args...))
}

// Errorf reports at error level.
func (r *Reporter) Errorf(format string, args ...any) {
	r.Report(LevelError, fmt.Sprintf(format, args...))
}

// Banner writes a framed title.
func (r *Reporter) Banner(title string) {
	rule := strings.Repeat("=", len(title)+4)
	r.println(rule)
	r.println(r.bold.Sprint("  " + title))
	r.println(rule)
}

// Phase writes a phase heading.
func (r *Reporter) Phase(ordinal, total int, title string) {
	r.println("")
	r.println(r.bold.Sprintf("Phase %d/%d: %s", ordinal, total, title))
}

// Output writes captured command output, indented.
func (r *Reporter) Output(text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		r.println(r.dim.Sprint("    " + line))
	}
}

// Println writes a raw line.
func (r *Reporter) Println(line string) {
	r.println(line)
}

func (r *Reporter) println(line string) {
	_, _ = fmt.Fprintln(r.out, line)
}
