package gui

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/jesseduffield/gocui"
	"github.com/peauc/dcv/pkg/commands"
	"github.com/peauc/dcv/pkg/i18n"
	"github.com/peauc/dcv/pkg/utils"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// TerminalLock hands the terminal over to a subprocess: the dashboard is
// suspended while the subprocess runs and resumed once the user has pressed
// enter.
type TerminalLock struct {
	Log       *logrus.Entry
	Tr        *i18n.TranslationSet
	OSCommand *commands.OSCommand

	g         *gocui.Gui
	suspended atomic.Bool
	mutex     deadlock.Mutex
}

var _ SubprocessRunner = &TerminalLock{}

// NewTerminalLock returns a lock that needs a gocui.Gui attached before use
func NewTerminalLock(log *logrus.Entry, tr *i18n.TranslationSet, osCommand *commands.OSCommand) *TerminalLock {
	return &TerminalLock{Log: log, Tr: tr, OSCommand: osCommand}
}

func (t *TerminalLock) attach(g *gocui.Gui) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.g = g
}

// Suspended reports whether a subprocess currently owns the terminal
func (t *TerminalLock) Suspended() bool {
	return t.suspended.Load()
}

// Run suspends the dashboard, runs cmd in the foreground and resumes.
func (t *TerminalLock) Run(cmd *exec.Cmd) (int, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.g == nil {
		return -1, fmt.Errorf("terminal is not attached")
	}

	t.suspended.Store(true)
	if err := t.g.Suspend(); err != nil {
		t.suspended.Store(false)
		return -1, err
	}

	code, runErr := t.runCommand(cmd)

	if err := t.g.Resume(); err != nil {
		return code, err
	}
	t.suspended.Store(false)

	return code, runErr
}

func (t *TerminalLock) runCommand(cmd *exec.Cmd) (int, error) {
	stop := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(stop, os.Interrupt)
	defer signal.Stop(stop)
	defer close(done)

	// ctrl+c goes to the subprocess, not to us
	go func() {
		select {
		case <-stop:
			if err := t.OSCommand.Kill(cmd); err != nil {
				t.Log.Error(err)
			}
		case <-done:
		}
	}()

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	fmt.Fprintf(os.Stdout, "\n%s\n\n", utils.ColoredString("+ "+strings.Join(cmd.Args, " "), color.FgBlue))

	err := cmd.Run()
	code := commands.ExitCode(err)
	if code < 0 {
		t.Log.Error(err)
		return code, err
	}
	if err != nil {
		t.Log.WithField("args", cmd.Args).Warn(err)
	}

	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	fmt.Fprintf(os.Stdout, "\n%s", utils.ColoredString(t.Tr.PressEnterToReturn, color.FgGreen))

	// wait for enter press
	if _, err := fmt.Scanln(); err != nil {
		t.Log.Error(err)
	}

	return code, nil
}
