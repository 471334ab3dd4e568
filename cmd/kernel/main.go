// Command kernel drives the checker and the two reduction runtimes over
// an already-compiled program: a msgpack-encoded map of top-level
// definition names to term.Term values. Producing that file from
// surface syntax is the job of an external frontend; this kernel only
// ever consumes already-built terms (see internal/term).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kindkernel/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "kernel",
	Short: "Dependently-typed kernel checker and runtimes",
	Long:  `kernel type-checks and reduces compiled programs through either the graph or interaction-net runtime.`,
}

var (
	timeoutCancel context.CancelFunc
)

func main() {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version.Version, orDash(version.GitCommit), orDash(version.BuildDate))
	rootCmd.PersistentPreRunE = applyTimeout
	rootCmd.PersistentPostRun = cleanupTimeout

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(reduceCmd)
	rootCmd.AddCommand(netCmd)
	rootCmd.AddCommand(selftestCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(cacheCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to a kernel.toml manifest (defaults: none, every option at its default)")
	rootCmd.PersistentFlags().String("cache-dir", "", "override the disk cache directory (defaults to the XDG cache home)")
	rootCmd.PersistentFlags().Int("timeout", 30, "command timeout in seconds")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func applyTimeout(cmd *cobra.Command, _ []string) error {
	secs, err := cmd.Root().PersistentFlags().GetInt("timeout")
	if err != nil {
		return fmt.Errorf("failed to read timeout flag: %w", err)
	}
	if secs <= 0 {
		return fmt.Errorf("timeout must be greater than zero")
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(secs)*time.Second)
	timeoutCancel = cancel
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	go func() {
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			fmt.Fprintf(os.Stderr, "kernel: command timed out\n")
			os.Exit(1)
		}
	}()
	return nil
}

func cleanupTimeout(*cobra.Command, []string) {
	if timeoutCancel != nil {
		timeoutCancel()
		timeoutCancel = nil
	}
}
