package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/form"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/ui"
)

func run(t *testing.T, opt Options, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	opt.Stdout, opt.Stderr = &out, &errOut
	if opt.Config == nil {
		opt.Config = config.Default()
		opt.Config.LogLevel = "error"
	}
	t.Cleanup(func() { ui.SetOutput(os.Stdout, os.Stderr) })
	code = Run(args, opt)
	return code, ansi.Strip(out.String()), ansi.Strip(errOut.String())
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHelpAndUsage(t *testing.T) {
	code, out, _ := run(t, Options{}, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Subcommands:")

	code, _, errOut := run(t, Options{}, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown subcommand: frobnicate")

	code, _, errOut = run(t, Options{}, "check-date")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "usage: tada check-date")

	code, _, _ = run(t, Options{}, "run")
	assert.Equal(t, 2, code)
}

func TestCheckDate(t *testing.T) {
	code, out, _ := run(t, Options{}, "check-date", "01/12/2024")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Sunday, 1 December 2024")

	code, out, _ = run(t, Options{}, "check-date", "29/02/2024")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Thursday, 29 February 2024")

	tests := map[string]error{
		"1/12/2024":  form.ErrDueDateFormat,
		"31/02/2024": form.ErrDueDateInvalid,
		"00/00/0000": form.ErrDueDateInvalid,
		"29/02/2023": form.ErrDueDateInvalid,
	}
	for bad, want := range tests {
		code, out, errOut := run(t, Options{}, "check-date", bad)
		assert.Equal(t, 2, code, bad)
		assert.Empty(t, out, bad)
		assert.Contains(t, errOut, bad+": "+want.Error())
	}
}

func TestRunScriptPanel(t *testing.T) {
	path := writeScript(t, `
actions:
  - {op: add, description: B, priority: HIGH}
  - {op: add, description: A, priority: HIGH, reminder: true, due: 01/01/2025}
  - {op: add, description: nope, due: 1/1/2025}
  - {op: filter}
`)
	code, out, errOut := run(t, Options{}, "run", path)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "To-Do List - Welcome, User!")
	assert.Contains(t, out, " 1. Task: A | Priority: HIGH | Reminder Set | Due Date: 01/01/2025")
	assert.Contains(t, out, " 2. Task: B | Priority: HIGH")
	assert.Contains(t, out, "Filtered")
	assert.Contains(t, errOut, "step 3 (add): "+form.ErrDueDateFormat.Error())
}

func TestRunScriptJSONStrict(t *testing.T) {
	path := writeScript(t, `
actions:
  - {op: add, description: milk}
  - {op: delete}
  - {op: add, description: never}
`)
	code, out, _ := run(t, Options{}, "run", "--json", "--strict", path)
	assert.Equal(t, 1, code)

	var rep struct {
		Tasks []struct {
			Description string `json:"description"`
		} `json:"tasks"`
		Errors []struct {
			Step int `json:"step"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Tasks, 1)
	assert.Equal(t, "milk", rep.Tasks[0].Description)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, 2, rep.Errors[0].Step)
}

func TestRunScriptLoadErrors(t *testing.T) {
	code, _, errOut := run(t, Options{}, "run", writeScript(t, "actions:\n  - op: undo\n"))
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "actions[0].op")

	code, _, errOut = run(t, Options{}, "run", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "read script")
}

func TestTUIDefaultCommand(t *testing.T) {
	cfg := config.Default()
	cfg.UserName = "Ada"
	cfg.LogFile = filepath.Join(t.TempDir(), "tada.log")

	var got *session.Session
	opt := Options{
		Config: cfg,
		runTUI: func(s *session.Session) error {
			got = s
			return s.Add(form.Input{Description: "from tui", Priority: model.High})
		},
	}
	code, _, _ := run(t, opt)
	assert.Equal(t, 0, code)
	require.NotNil(t, got)
	assert.Equal(t, "Ada", got.User())

	logs, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "session started")
	assert.Contains(t, string(logs), "task added")
}

func TestTUIFailure(t *testing.T) {
	opt := Options{runTUI: func(*session.Session) error { return errors.New("no tty") }}
	code, _, errOut := run(t, opt, "tui")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "tui: no tty")
}
