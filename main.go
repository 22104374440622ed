package main

import (
	"os"

	"github.com/gonuts/commander"

	"seqlab/app"
)

var cmd *commander.Command

func init() {
	cmd = app.AllCommands()
}

func main() {
	err := cmd.Dispatch(os.Args[1:])
	if err != nil {
		os.Exit(app.ReportError(os.Stderr, err))
	}

	return
}
