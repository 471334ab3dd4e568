package main

import (
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kindkernel/internal/check"
	"kindkernel/internal/diag"
	"kindkernel/internal/diagfmt"
	"kindkernel/internal/kcache"
	"kindkernel/internal/source"
	"kindkernel/internal/term"
)

var checkCmd = &cobra.Command{
	Use:   "check <program.mp>",
	Short: "Type-check every (or one) top-level definition in a compiled program",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("entry", "", "check only this definition instead of every one in the program")
	checkCmd.Flags().Bool("no-cache", false, "ignore and do not populate the disk cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
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
	names := []string{entry}
	if entry == "" {
		names = names[:0]
		for name := range defs {
			names = append(names, name)
		}
	}

	noCache, _ := cmd.Flags().GetBool("no-cache")
	var disk *kcache.Cache
	if !noCache {
		disk, err = openCache(cmd)
		if err != nil {
			return err
		}
	}

	bag := diag.NewBag(200)
	sink := diag.BagReporter{Bag: bag}
	logs := cfg.NewLogSink()
	sess := check.NewSession(defs, sink, logs)

	broken := false
	for _, name := range names {
		body, ok := defs[name]
		if !ok {
			return fmt.Errorf("unknown definition %q", name)
		}
		key := contentDigest(name, body)
		if disk != nil {
			if entry, hit, err := disk.Get(key); err == nil && hit {
				if entry.Broken {
					broken = true
					fmt.Fprintf(os.Stderr, "%s: cached failure: %s\n", name, entry.Diagnostic)
				} else {
					fmt.Printf("%s : %s (cached)\n", name, entry.TypeText)
				}
				continue
			}
		}
		typ, err := sess.TypeCheck(name, nil)
		if err != nil {
			broken = true
			if disk != nil {
				_ = disk.Put(key, kcache.NewBrokenEntry(name, key, err.Error()))
			}
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			continue
		}
		fmt.Printf("%s : %s\n", name, term.Render(typ))
		if disk != nil {
			_ = disk.Put(key, kcache.NewEntry(name, key, typ, false))
		}
	}

	if bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, source.NewFileSet(), diagfmt.PrettyOpts{
			Color:     colorEnabled(cmd),
			ShowNotes: true,
		})
	}
	if broken {
		return fmt.Errorf("type checking failed")
	}
	return nil
}

// contentDigest hashes a definition's structural term hash together with
// its name, so an unchanged definition (even one renamed at the call
// site but not at its own binding) always maps to the same cache key.
func contentDigest(name string, body *term.Term) kcache.Digest {
	h := sha256.New()
	h.Write([]byte(name))
	var buf [8]byte
	th := term.Hash(body)
	for i := range buf {
		buf[i] = byte(th >> (8 * i))
	}
	h.Write(buf[:])
	var d kcache.Digest
	copy(d[:], h.Sum(nil))
	return d
}

func colorEnabled(cmd *cobra.Command) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stderr)
	}
}

func openCache(cmd *cobra.Command) (*kcache.Cache, error) {
	dir, _ := cmd.Root().PersistentFlags().GetString("cache-dir")
	if dir != "" {
		return kcache.OpenAt(dir)
	}
	return kcache.Open("kindkernel")
}
