package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/venslabs/sbomgraph/cmd/sbomgraph/commands/fstree"
	"github.com/venslabs/sbomgraph/cmd/sbomgraph/commands/lookup"
	"github.com/venslabs/sbomgraph/cmd/sbomgraph/commands/resolve"
	"github.com/venslabs/sbomgraph/cmd/sbomgraph/version"
	"github.com/venslabs/sbomgraph/pkg/envutil"
)

var logLevel = new(slog.LevelVar)

func main() {
	setLogger(os.Stderr, "text")
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("sbomgraph failed", "error", err)
		os.Exit(1)
	}
}

// setLogger installs the default logger. Every handler shares logLevel, so
// --debug applies whichever format is chosen.
func setLogger(w io.Writer, format string) error {
	opts := &slog.HandlerOptions{Level: logLevel}
	var h slog.Handler
	switch format {
	case "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format %q (expected text or json)", format)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sbomgraph",
		Short:         "Resolve dependency relationships between the files of an SBOM",
		Example:       resolve.Example(),
		Version:       version.GetVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	// Flag values win over $DEBUG and $SBOMGRAPH_LOG_FORMAT.
	flags.Bool("debug", envutil.Bool("DEBUG", false), "debug mode [$DEBUG]")
	flags.String("log-format", envutil.String("SBOMGRAPH_LOG_FORMAT", "text"), "Log format (text, json) [$SBOMGRAPH_LOG_FORMAT]")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("log-format")
		if err := setLogger(cmd.ErrOrStderr(), format); err != nil {
			return err
		}
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			logLevel.Set(slog.LevelDebug)
		}
		return nil
	}

	cmd.AddCommand(resolve.New(), lookup.New(), fstree.New())
	return cmd
}
