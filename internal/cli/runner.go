package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/form"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/script"
	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Options carry the resolved config and output streams.
type Options struct {
	Config *config.Config
	Stdout io.Writer
	Stderr io.Writer

	// runTUI is swapped out in tests.
	runTUI func(*session.Session) error
}

func (o *Options) defaults() {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.runTUI == nil {
		o.runTUI = tui.Run
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	ui.SetOutput(opt.Stdout, opt.Stderr)
	ui.SetTheme(opt.Config.Theme, opt.Config.NoColor)

	if len(args) == 0 {
		return doTUI(opt)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "tui":
		return doTUI(opt)

	case "run":
		return doRun(a, opt)

	case "check-date":
		if len(a) != 1 {
			ui.Fail("usage: tada check-date <DD/MM/YYYY>")
			return 2
		}
		return doCheckDate(a[0])
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tada - a priority to-do list

Usage:
  tada [flags] [subcommand] [args]

Subcommands:
  tui                        Interactive list (default)
  run [--json] [--strict] <script>
                             Replay a YAML/JSON action script and print the list
  check-date <DD/MM/YYYY>    Check a due date the way the task form does
  help                       Show this help

Flags:
  -user <name>       Name shown in the greeting
  -theme <name>      classic, neon or mono
  -no-color          Disable colors
  -log-level <lvl>   debug, info, warn or error
  -log-format <fmt>  text, json or logfmt
  -log-file <path>   Write logs to a file (the TUI logs nowhere otherwise)

Examples:
  tada
  tada -user Ada -theme neon
  tada run week.yaml
  tada run --json --strict week.yaml
  tada check-date 31/02/2024
`)
}

func logOptions(cfg *config.Config) logging.Options {
	return logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
	}
}

// -------------- subcommand impls ----------------

func doTUI(opt Options) int {
	// the TUI owns the terminal: log to a file or not at all
	logger := logging.Discard()
	if opt.Config.LogFile != "" {
		l, closer, err := logging.OpenFile(opt.Config.LogFile, logOptions(opt.Config))
		if err != nil {
			ui.Fail("log: " + err.Error())
			return 1
		}
		defer closer.Close()
		logger = l
	}

	sess := session.New(opt.Config.UserName, logger)
	logger.Info("session started", "user", sess.User())
	if err := opt.runTUI(sess); err != nil {
		logger.Error("tui failed", "err", err)
		ui.Fail("tui: " + err.Error())
		return 1
	}
	logger.Info("session ended", "tasks", sess.Len())
	return 0
}

func doRun(args []string, opt Options) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(opt.Stderr)
	asJSON := fs.Bool("json", false, "print the report as JSON")
	strict := fs.Bool("strict", false, "stop at the first refused action")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		ui.Fail("usage: tada run [--json] [--strict] <script>")
		return 2
	}
	path := fs.Arg(0)

	logger := logging.New(opt.Stderr, logOptions(opt.Config))
	s, err := script.Load(path)
	if err != nil {
		ui.Fail("load: " + err.Error())
		var se *script.SchemaError
		if errors.As(err, &se) {
			return 2
		}
		return 1
	}
	logger.Debug("script loaded", "path", path, "actions", len(s.Actions))

	sess := session.New(opt.Config.UserName, logger)
	rep, runErr := script.Run(sess, s, script.Options{Strict: *strict})

	if *asJSON {
		if err := rep.WriteJSON(opt.Stdout); err != nil {
			ui.Fail(err.Error())
			return 1
		}
	} else {
		printReport(sess, rep)
	}

	if runErr != nil {
		logger.Error("script stopped", "err", runErr)
		return 1
	}
	return 0
}

func printReport(sess *session.Session, rep *script.Report) {
	counts := sess.Counts()
	var lines []string
	lines = append(lines, ui.Header(sess.Greeting(), counts))
	lines = append(lines, ui.PriorityBar(counts, 28))
	lines = append(lines, "")
	lines = append(lines, ui.TaskLines(rep.Tasks)...)
	if rep.Filtered != nil {
		lines = append(lines, "")
		lines = append(lines, ui.Current().Accent.Render("Filtered"))
		lines = append(lines, ui.TaskLines(rep.Filtered)...)
	}
	ui.Panel(lines)

	for _, e := range rep.Errors {
		ui.Fail(e.Error())
	}
}

func doCheckDate(s string) int {
	d, err := form.ParseDueDate(s)
	if err != nil {
		ui.Fail(s + ": " + err.Error())
		return 2
	}
	ui.OK(fmt.Sprintf("%s is %s", s, d.Format("Monday, 2 January 2006")))
	return 0
}
