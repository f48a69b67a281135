package commands

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/jesseduffield/kill"
	"github.com/mgutz/str"
	"github.com/peauc/dcv/pkg/config"
	"github.com/sirupsen/logrus"
)

// OSCommand holds all the os commands
type OSCommand struct {
	Log     *logrus.Entry
	Config  *config.AppConfig
	command func(string, ...string) *exec.Cmd
}

// NewOSCommand os command runner
func NewOSCommand(log *logrus.Entry, config *config.AppConfig) *OSCommand {
	return &OSCommand{
		Log:     log,
		Config:  config,
		command: exec.Command,
	}
}

// SetCommand sets the command function used by the struct.
// To be used for testing only
func (c *OSCommand) SetCommand(cmd func(string, ...string) *exec.Cmd) {
	c.command = cmd
}

// RunCommandWithOutput wrapper around commands returning their output and error
func (c *OSCommand) RunCommandWithOutput(command string) (string, error) {
	cmd := c.ExecutableFromString(command)

	before := time.Now()
	output, err := sanitisedCommandOutput(cmd.Output())
	c.Log.Debugf("'%s': %s", command, time.Since(before))
	return output, err
}

// RunCommand runs a command and just returns the error
func (c *OSCommand) RunCommand(command string) error {
	_, err := c.RunCommandWithOutput(command)
	return err
}

// ExecutableFromString takes a string like `docker ps -a` and returns an executable command for it
func (c *OSCommand) ExecutableFromString(commandStr string) *exec.Cmd {
	splitCmd := str.ToArgv(commandStr)
	return c.NewCmd(splitCmd[0], splitCmd[1:]...)
}

// NewCmd is a wrapper around exec.Command that carries over our environment
func (c *OSCommand) NewCmd(cmdName string, commandArgs ...string) *exec.Cmd {
	cmd := c.command(cmdName, commandArgs...)
	cmd.Env = os.Environ()
	return cmd
}

// Kill kills a process, or its whole group when the command was started with
// Setpgid. Interactive commands run in the foreground group, so for those only
// the process itself is killed.
func (c *OSCommand) Kill(cmd *exec.Cmd) error {
	return kill.Kill(cmd)
}

// ExitCode returns the exit code carried by err, 0 for a nil error and -1 when
// the process could not be started or waited on.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func sanitisedCommandOutput(output []byte, err error) (string, error) {
	outputString := string(output)
	if err != nil {
		// errors like 'exit status 1' are not very useful so we'll create an error
		// from the combined output
		if outputString == "" {
			return "", err
		}
		return outputString, fmt.Errorf("%s", strings.TrimSpace(outputString))
	}
	return outputString, nil
}
