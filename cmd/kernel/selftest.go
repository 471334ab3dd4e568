package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"kindkernel/internal/check"
	"kindkernel/internal/graphrt"
	"kindkernel/internal/internet"
	"kindkernel/internal/reduce"
	"kindkernel/internal/term"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Check a handful of built-in programs through every runtime concurrently",
	Long: `selftest exercises the term-level reducer, the graph runtime,
and the interaction-net runtime against a small fixed set of
closed programs, and fails if any two runtimes disagree on a normal
form. It takes no program file: the programs are the built-in cases
below, run concurrently with one goroutine per case.`,
	RunE: runSelftest,
}

// selftestCase is one closed program checked for cross-runtime
// agreement: every runtime that reduces it should land on a term with
// the same structural hash.
type selftestCase struct {
	name string
	defs map[string]*term.Term
}

func selftestCases() []selftestCase {
	return []selftestCase{
		{
			name: "identity-application",
			defs: map[string]*term.Term{
				"main": term.NewApp(term.NewLam("x", nil, term.NewVar(0), false), term.NewVal(7), false),
			},
		},
		{
			name: "shared-reference-fold",
			defs: map[string]*term.Term{
				"inc": term.NewLam("n", nil, term.NewOp2(term.OpAdd, term.NewVar(0), term.NewVal(1)), false),
				"main": term.NewOp2(term.OpMul,
					term.NewApp(term.NewRef("inc", false), term.NewVal(3), false),
					term.NewApp(term.NewRef("inc", false), term.NewVal(9), false),
				),
			},
		},
		{
			name: "duplicated-use",
			defs: map[string]*term.Term{
				"main": term.NewApp(
					term.NewLam("x", nil, term.NewOp2(term.OpAdd, term.NewVar(0), term.NewVar(0)), false),
					term.NewVal(21),
					false,
				),
			},
		},
		{
			name: "conditional",
			defs: map[string]*term.Term{
				"main": term.NewIte(term.NewVal(1), term.NewVal(11), term.NewVal(22)),
			},
		},
	}
}

func runSelftest(cmd *cobra.Command, args []string) error {
	cases := selftestCases()
	results := make([]string, len(cases))

	g, _ := errgroup.WithContext(cmd.Context())
	for i, tc := range cases {
		i, tc := i, tc
		g.Go(func() error {
			hashes, err := runCaseAcrossRuntimes(tc)
			if err != nil {
				return fmt.Errorf("%s: %w", tc.name, err)
			}
			for j := 1; j < len(hashes); j++ {
				if hashes[j] != hashes[0] {
					return fmt.Errorf("%s: runtime %d disagrees with runtime 0 (%x vs %x)", tc.name, j, hashes[j], hashes[0])
				}
			}
			results[i] = fmt.Sprintf("%s: ok (%x)", tc.name, hashes[0])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, r := range results {
		fmt.Println(r)
	}
	return nil
}

// runCaseAcrossRuntimes reduces main through the term-level reducer
// (over a fresh hole registry; nothing is type-checked), the graph
// runtime, and the interaction-net runtime, returning each runtime's
// resulting structural hash for comparison.
func runCaseAcrossRuntimes(tc selftestCase) ([3]uint64, error) {
	var hashes [3]uint64

	holes := check.NewHoleRegistry()
	sess := reduce.NewSession(tc.defs, holes, nil)
	termOut, err := reduce.Normalize(sess, tc.defs["main"], reduce.Full())
	if err != nil {
		return hashes, fmt.Errorf("term reducer: %w", err)
	}
	hashes[0] = term.Hash(reduce.Erase(termOut))

	machine, err := graphrt.Compile(tc.defs, "main")
	if err != nil {
		return hashes, fmt.Errorf("graph compile: %w", err)
	}
	gsess, root, err := graphrt.NewSession(machine, "main")
	if err != nil {
		return hashes, fmt.Errorf("graph session: %w", err)
	}
	gout, err := gsess.Normalize(root)
	if err != nil {
		return hashes, fmt.Errorf("graph reduce: %w", err)
	}
	hashes[1] = term.Hash(gsess.Decompile(gout))

	inet, anchor, err := internet.Compile(tc.defs, "main")
	if err != nil {
		return hashes, fmt.Errorf("net compile: %w", err)
	}
	if _, err := inet.ReduceStrict(); err != nil {
		return hashes, fmt.Errorf("net reduce: %w", err)
	}
	hashes[2] = term.Hash(inet.Decompile(internet.AnchorPort(anchor)))

	return hashes, nil
}
