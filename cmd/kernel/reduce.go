package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kindkernel/internal/check"
	"kindkernel/internal/reduce"
	"kindkernel/internal/term"
)

var reduceCmd = &cobra.Command{
	Use:   "reduce <program.mp>",
	Short: "Normalize entry against the plain term-level reducer",
	Args:  cobra.ExactArgs(1),
	RunE:  runReduce,
}

func init() {
	reduceCmd.Flags().String("entry", "main", "definition to normalize")
	reduceCmd.Flags().Bool("weak-head", false, "stop at weak head normal form instead of normalizing fully")
}

func runReduce(cmd *cobra.Command, args []string) error {
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
	body, ok := defs[entry]
	if !ok {
		return fmt.Errorf("unknown definition %q", entry)
	}

	holes := check.NewHoleRegistry()
	sess := reduce.NewSession(defs, holes, cfg.NewLogSink())

	weakOnly, _ := cmd.Flags().GetBool("weak-head")
	var out *term.Term
	if weakOnly {
		out, err = reduce.WeakHead(sess, body, cfg.Reduce)
	} else {
		out, err = reduce.Normalize(sess, body, cfg.Reduce)
	}
	if err != nil {
		return err
	}
	fmt.Println(term.Render(out))
	return nil
}
