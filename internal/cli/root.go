package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCommand builds the command tree. Command output goes to out and
// logs to logOut.
func NewRootCommand(out, logOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "perch",
		Short:        "perch positions a popper against a reference element",
		Long:         `perch computes where a floating element lands next to its anchor, using the same modifier pipeline as the library, from a YAML, JSON or TOML layout file.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level)))
		},
	}

	root.SetOut(out)
	root.SetErr(logOut)
	root.SetVersionTemplate(fmt.Sprintf("perch %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPlaceCmd())
	root.AddCommand(newWatchCmd())

	return root
}

// Execute runs the CLI with ctx, writing to stdout and stderr.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}
