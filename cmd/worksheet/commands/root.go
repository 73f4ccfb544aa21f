// seehuhn.de/go/worksheet - a guided classroom worksheet
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Execute runs the command line tool with the process arguments.
func Execute() error {
	return NewRoot(os.Stdout, os.Stderr).Execute()
}

// NewRoot returns the root command.  Normal output goes to stdout, log
// messages and errors to stderr.
func NewRoot(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool
	logger := zerolog.Nop()

	root := &cobra.Command{
		Use:          "worksheet",
		Short:        "Replay guided classroom worksheet sessions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			out := zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.TimeOnly}
			logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every event")

	root.AddCommand(runCmd(&logger), exampleCmd())
	return root
}
