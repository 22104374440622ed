package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

const (
	NUM_CPUS_FLAG = "cpus"

	USAGE_EXIT = 1
	FATAL_EXIT = 255
)

var (
	CPUs int
)

// ExitError carries the process exit status of a failed command. A nil Err
// means the command already reported the failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return FATAL_EXIT
}

// ReportError prints a fatal command error to w and returns the exit status.
// Usage errors were already reported by the command.
func ReportError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var exit *ExitError
	if !errors.As(err, &exit) || exit.Err != nil {
		fmt.Fprintf(w, "**err**: %v\n", err)
	}
	return ExitCode(err)
}

func usageError() error {
	return &ExitError{Code: USAGE_EXIT}
}

func AppCommands() []*commander.Command {
	return []*commander.Command{
		ChunkerModelCmd(),
		ChunkerTrainCmd(),
		ChunkerCmd(),
		NameFinderCVCmd(),
		NameFinderTrainCmd(),
		NameFinderCmd(),
	}
}

func AllCommands() *commander.Command {
	cmd := &commander.Command{
		UsageLine:   os.Args[0] + " <command> [options]",
		Short:       "sequence labeling model tools",
		Subcommands: AppCommands(),
		Flag:        *flag.NewFlagSet("seqlab", flag.ExitOnError),
	}
	for _, app := range cmd.Subcommands {
		app.Run = NewAppWrapCommand(app.Run)
		if !app.CustomFlags {
			app.Flag.IntVar(&CPUs, NUM_CPUS_FLAG, 0, "Max CPUS to use (runtime.GOMAXPROCS); 0 = all")
		}
	}
	return cmd
}

func InitCommand(cmd *commander.Command, args []string) {
	maxCPUs := runtime.NumCPU()
	if CPUs > maxCPUs {
		log.Printf("Warning: Number of CPUs capped to all available (%d)", maxCPUs)
		CPUs = 0
	}
	if CPUs == 0 {
		CPUs = maxCPUs
	}
	runtime.GOMAXPROCS(CPUs)
}

func NewAppWrapCommand(f func(cmd *commander.Command, args []string) error) func(cmd *commander.Command, args []string) error {
	wrapped := func(cmd *commander.Command, args []string) error {
		InitCommand(cmd, args)
		return f(cmd, args)
	}

	return wrapped
}
