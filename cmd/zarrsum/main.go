// Command zarrsum computes a deterministic, content-addressed checksum
// for a Zarr store using one of five convergent traversal strategies.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwodder/zarr-checksum-gallery/internal/zlog"
	"github.com/jwodder/zarr-checksum-gallery/internal/zsum"
)

// <global-variables>
//
//	<subset purpose="passed to strategy subcommands">
var w Output = &PlainOutput{Device: os.Stdout}
var errOut Output = &PlainOutput{Device: os.Stderr}

//	</subset>
//	<subset purpose="bound directly to cobra persistent flags">
var argDebug bool
var argTrace bool
var argExcludeDotfiles bool
var argTree bool

//	</subset>
//
// </global-variables>

var rootCmd = &cobra.Command{
	Use:   "zarrsum",
	Short: "compute a content-addressed checksum for a Zarr store",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&argDebug, "debug", false, "enable debug-level logging")
	rootCmd.PersistentFlags().BoolVar(&argTrace, "trace", false, "enable trace-level logging (implies --debug)")
	rootCmd.PersistentFlags().BoolVar(&argExcludeDotfiles, "exclude-dotfiles", true, "exclude .git/.datalad/.dandi-style bookkeeping files at every depth")
	rootCmd.PersistentFlags().BoolVar(&argTree, "tree", false, "additionally print a box-drawing rendering of the checksum tree")

	rootCmd.AddCommand(recursiveCmd, dfsCmd, bfsCmd, parallelCmd, asyncCmd)
}

// setupLogging installs the default logger at the verbosity level
// implied by --debug/--trace, once flags have been parsed.
func setupLogging() {
	level := zlog.LevelInfo
	switch {
	case argTrace:
		level = zlog.LevelTrace
	case argDebug:
		level = zlog.LevelDebug
	}
	zlog.SetDefault(zlog.NewStdLogger(level))
}

// printResult writes a strategy's digest (and, if --tree was given, its
// tree rendering plus a secondary SHA3-512 fingerprint of that same
// tree) to stdout.
func printResult(digest string, tree *zsum.ChecksumTree) {
	w.Println(digest)
	if argTree && tree != nil {
		w.Print(tree.RenderTree())
		w.Printf("fingerprint: %s\n", tree.Fingerprint())
	}
}

// isInternalError reports whether err represents an internal invariant
// violation (a double-added file, a path used as both file and
// directory, or a walker that failed to produce a result) rather than
// an ordinary filesystem or input error.
func isInternalError(err error) bool {
	var conflict *zsum.PathTypeConflictError
	var doubleAdd *zsum.DoubleAddError
	if errors.As(err, &conflict) || errors.As(err, &doubleAdd) {
		return true
	}
	return strings.HasPrefix(err.Error(), "INTERNAL ERROR:")
}

func reportError(err error) int {
	if isInternalError(err) {
		errOut.Printf("INTERNAL ERROR: %s\n", err)
	} else {
		errOut.Printf("error: %s\n", err)
	}
	return 1
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// exitCode is set by whichever subcommand's RunE handler ran, following
// the same global-exit-code convention the kingpin-era commands used.
var exitCode int
