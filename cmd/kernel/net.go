package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kindkernel/internal/config"
	"kindkernel/internal/internet"
	"kindkernel/internal/term"
)

var netCmd = &cobra.Command{
	Use:   "net <program.mp>",
	Short: "Compile entry into an interaction net and reduce it there",
	Args:  cobra.ExactArgs(1),
	RunE:  runNet,
}

func init() {
	netCmd.Flags().String("entry", "main", "definition to compile and reduce")
	netCmd.Flags().String("scheduler", "", "lazy|strict (defaults to the config file's runtime.net_scheduler)")
	netCmd.Flags().Bool("stats", false, "print rewrite/loop/max-length statistics")
}

func runNet(cmd *cobra.Command, args []string) error {
	defs, err := loadProgram(args[0])
	if err != nil {
		return err
	}
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	entry, _ := cmd.Flags().GetString("entry")
	if overrideStr, _ := cmd.Flags().GetString("scheduler"); overrideStr != "" {
		cfg.NetScheduler = config.NetSchedulerMode(overrideStr)
	}

	net, anchor, err := internet.Compile(defs, entry)
	if err != nil {
		return err
	}

	switch cfg.NetScheduler {
	case config.NetStrict:
		if _, err := net.ReduceStrict(); err != nil {
			return err
		}
	default:
		if _, err := net.ReduceLazy(anchor); err != nil {
			return err
		}
	}

	out := net.Decompile(internet.AnchorPort(anchor))
	fmt.Println(term.Render(out))

	if show, _ := cmd.Flags().GetBool("stats"); show {
		stats := net.Stats()
		fmt.Printf("rewrites=%d loops=%d max_len=%d\n", stats.Rewrites, stats.Loops, stats.MaxLen)
	}
	return nil
}
