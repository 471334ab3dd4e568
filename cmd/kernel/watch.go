package main

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"kindkernel/internal/graphrt"
	"kindkernel/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch <program.mp>",
	Short: "Normalize every definition through the graph runtime with a live progress view",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("entry", "", "watch only this definition instead of every one in the program")
}

// runWatch drives the graph runtime's Normalize over a program's
// definitions and streams ui.ReduceEvent updates into a Bubble Tea
// progress model, one row per definition. The graph runtime itself has
// no step-by-step hook, so each row only transitions queued -> working
// -> done/error rather than reporting a live beta/copy count mid-flight.
func runWatch(cmd *cobra.Command, args []string) error {
	defs, err := loadProgram(args[0])
	if err != nil {
		return err
	}

	entry, _ := cmd.Flags().GetString("entry")
	names := make([]string, 0, len(defs))
	if entry != "" {
		if _, ok := defs[entry]; !ok {
			return fmt.Errorf("unknown definition %q", entry)
		}
		names = append(names, entry)
	} else {
		for name := range defs {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	events := make(chan ui.ReduceEvent, 1)
	model := ui.NewProgressModel("watch", names, events)
	prog := tea.NewProgram(model)

	done := make(chan error, 1)
	go func() {
		var err error
		for _, name := range names {
			// Compile reaches only what name references, so each
			// definition gets its own machine.
			machine, cerr := graphrt.Compile(defs, name)
			if cerr != nil {
				err = cerr
				break
			}
			if err = driveWatch(machine, []string{name}, events); err != nil {
				break
			}
		}
		done <- err
		close(events)
	}()

	if _, err := prog.Run(); err != nil {
		<-done
		return err
	}
	return <-done
}

func driveWatch(machine *graphrt.Machine, names []string, events chan<- ui.ReduceEvent) error {
	for _, name := range names {
		events <- ui.ReduceEvent{Name: name, Status: ui.StatusQueued}

		sess, root, err := graphrt.NewSession(machine, name)
		if err != nil {
			events <- ui.ReduceEvent{Name: name, Status: ui.StatusError}
			return fmt.Errorf("%s: %w", name, err)
		}
		events <- ui.ReduceEvent{Name: name, Status: ui.StatusWorking}

		if _, err := sess.Normalize(root); err != nil {
			events <- ui.ReduceEvent{Name: name, Status: ui.StatusError}
			return fmt.Errorf("%s: %w", name, err)
		}
		stats := sess.Stats()
		events <- ui.ReduceEvent{
			Name:   name,
			Status: ui.StatusDone,
			Beta:   stats.Beta,
			Copy:   stats.Copy,
			MaxLen: stats.MaxLen,
		}
	}
	return nil
}
