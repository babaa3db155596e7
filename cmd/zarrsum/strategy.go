package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jwodder/zarr-checksum-gallery/internal/walkers"
	"github.com/jwodder/zarr-checksum-gallery/internal/zsum"
)

var argWorkers int
var argCollapse string

func baseOptions() walkers.Options {
	return walkers.Options{ExcludeDotfiles: argExcludeDotfiles, Workers: argWorkers}
}

// finish reports digest via printResult, building a ChecksumTree first
// if --tree was requested, independent of whichever strategy computed
// the digest.
func finish(path string, opts walkers.Options, digest string) error {
	var tree *zsum.ChecksumTree
	if argTree {
		files, err := walkers.CollectFiles(path, opts)
		if err != nil {
			errOut.Printf("error building --tree rendering: %s\n", err)
			printResult(digest, nil)
			return nil
		}
		t, err := zsum.FromFiles(files)
		if err != nil {
			errOut.Printf("error building --tree rendering: %s\n", err)
			printResult(digest, nil)
			return nil
		}
		tree = t
	}
	printResult(digest, tree)
	return nil
}

var recursiveCmd = &cobra.Command{
	Use:   "recursive PATH",
	Short: "compute the checksum by plain recursive descent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := walkers.Recursive(args[0], baseOptions())
		if err != nil {
			exitCode = reportError(err)
			return nil
		}
		return finish(args[0], baseOptions(), d.Digest)
	},
}

var dfsCmd = &cobra.Command{
	Use:   "dfs PATH",
	Short: "compute the checksum with an explicit depth-first stack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := walkers.DFS(args[0], baseOptions())
		if err != nil {
			exitCode = reportError(err)
			return nil
		}
		return finish(args[0], baseOptions(), d.Digest)
	},
}

var bfsCmd = &cobra.Command{
	Use:   "bfs PATH",
	Short: "compute the checksum with an explicit breadth-first queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := walkers.BFS(args[0], baseOptions())
		if err != nil {
			exitCode = reportError(err)
			return nil
		}
		return finish(args[0], baseOptions(), d.Digest)
	},
}

var parallelCmd = &cobra.Command{
	Use:   "parallel PATH",
	Short: "compute the checksum with a multithreaded work-stealing pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions()
		var d zsum.DirChecksum
		var err error
		switch argCollapse {
		case "", "chan":
			d, err = walkers.CollapseChan(args[0], opts)
		case "shared":
			d, err = walkers.CollapseShared(args[0], opts)
		case "tree-at-the-end":
			d, err = walkers.Parallel(args[0], opts)
		default:
			return fmt.Errorf("unknown --collapse flavor %q; expected chan, shared, or tree-at-the-end", argCollapse)
		}
		if err != nil {
			exitCode = reportError(err)
			return nil
		}
		return finish(args[0], opts, d.Digest)
	},
}

var asyncCmd = &cobra.Command{
	Use:   "async PATH",
	Short: "compute the checksum with a bounded asynchronous task pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions()
		d, err := walkers.Async(context.Background(), args[0], opts)
		if err != nil {
			exitCode = reportError(err)
			return nil
		}
		return finish(args[0], opts, d.Digest)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{parallelCmd, asyncCmd} {
		cmd.Flags().IntVar(&argWorkers, "workers", runtime.NumCPU(), "number of worker goroutines (default: available hardware parallelism)")
	}
	parallelCmd.Flags().StringVar(&argCollapse, "collapse", "chan", "parallel flavor: chan, shared, or tree-at-the-end")
}
