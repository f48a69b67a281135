package commands

import (
	"fmt"
	"strings"
)

// RuntimeQueryError reports a failed call to the docker daemon.
type RuntimeQueryError struct {
	Op  string
	Err error
}

func (e *RuntimeQueryError) Error() string {
	return fmt.Sprintf("docker: %s: %v", e.Op, e.Err)
}

func (e *RuntimeQueryError) Unwrap() error {
	return e.Err
}

// ExitError reports a subprocess that exited unsuccessfully. dcv exits with
// the same code.
type ExitError struct {
	Args []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("'%s' exited with code %d", strings.Join(e.Args, " "), e.Code)
}
