// Package config loads the kernel's session-wide options from a TOML
// manifest, mirroring the teacher's own [package]/[run]-style project
// file but scoped to what a kernel session needs: which reduction
// classes are enabled, the graph runtime's collection threshold, which
// net scheduler to drive a run with, and where logged terms go.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"kindkernel/internal/diag"
	"kindkernel/internal/reduce"
)

// FileName is the manifest name looked for in a project directory,
// analogous to the teacher's surge.toml.
const FileName = "kernel.toml"

// LogSinkMode selects where a Log term's side effect during reduction
// is written.
type LogSinkMode string

const (
	LogDiscard LogSinkMode = "discard"
	LogStdout  LogSinkMode = "stdout"
	LogStderr  LogSinkMode = "stderr"
)

// NetSchedulerMode selects which internet.Net scheduler a run drives
// reduction with.
type NetSchedulerMode string

const (
	NetLazy   NetSchedulerMode = "lazy"
	NetStrict NetSchedulerMode = "strict"
)

// reductionConfig gates each reduce.Options class independently, each
// defaulting to enabled; a manifest only needs to mention the ones it
// wants to turn off.
type reductionConfig struct {
	Beta  *bool `toml:"beta"`
	Delta *bool `toml:"delta"`
	Iota  *bool `toml:"iota"`
	Nu    *bool `toml:"nu"`
	Hole  *bool `toml:"hole"`
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// toOptions converts the manifest's reduction table into reduce.Options,
// starting from every class enabled.
func (r reductionConfig) toOptions() reduce.Options {
	full := reduce.Full()
	return reduce.Options{
		Beta:  boolOr(r.Beta, full.Beta),
		Delta: boolOr(r.Delta, full.Delta),
		Iota:  boolOr(r.Iota, full.Iota),
		Nu:    boolOr(r.Nu, full.Nu),
		Hole:  boolOr(r.Hole, full.Hole),
	}
}

type runtimeConfig struct {
	GraphCollectThreshold int              `toml:"graph_collect_threshold"`
	NetScheduler          NetSchedulerMode `toml:"net_scheduler"`
}

type logConfig struct {
	Sink LogSinkMode `toml:"sink"`
}

// manifest is the raw TOML shape; Config is what the rest of the
// kernel actually consumes, with every default already resolved.
type manifest struct {
	Reduction reductionConfig `toml:"reduction"`
	Runtime   runtimeConfig   `toml:"runtime"`
	Log       logConfig       `toml:"log"`
}

// Config is the resolved session configuration handed to the checker,
// both runtimes, and the logging sink.
type Config struct {
	Reduce                reduce.Options
	GraphCollectThreshold int
	NetScheduler          NetSchedulerMode
	LogSink               LogSinkMode
}

// Default returns the configuration a session runs with absent any
// kernel.toml: every reduction class on, a generous graph-collection
// threshold, the lazy net scheduler, and logs discarded.
func Default() Config {
	return Config{
		Reduce:                reduce.Full(),
		GraphCollectThreshold: 4096,
		NetScheduler:          NetLazy,
		LogSink:               LogDiscard,
	}
}

// writerSink renders each LogRecord as a single line to an io.Writer,
// the CLI's vehicle for LogStdout/LogStderr.
type writerSink struct {
	w io.Writer
}

func (s writerSink) Log(rec diag.LogRecord) {
	if rec.Term != "" {
		fmt.Fprintf(s.w, "[log@%d] %s :: %s\n", rec.Depth, rec.Message, rec.Term)
		return
	}
	fmt.Fprintf(s.w, "[log@%d] %s\n", rec.Depth, rec.Message)
}

// NewLogSink builds the diag.LogSink matching LogSink mode: nil for
// LogDiscard, otherwise a sink writing to stdout or stderr.
func (c Config) NewLogSink() diag.LogSink {
	switch c.LogSink {
	case LogStdout:
		return writerSink{w: os.Stdout}
	case LogStderr:
		return writerSink{w: os.Stderr}
	default:
		return nil
	}
}

// Load reads and validates a kernel.toml manifest at path, filling in
// Default's values for anything the file leaves unset.
func Load(path string) (Config, error) {
	var m manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg := Default()
	cfg.Reduce = m.Reduction.toOptions()
	if meta.IsDefined("runtime", "graph_collect_threshold") && m.Runtime.GraphCollectThreshold > 0 {
		cfg.GraphCollectThreshold = m.Runtime.GraphCollectThreshold
	}
	if meta.IsDefined("runtime", "net_scheduler") {
		mode := NetSchedulerMode(strings.ToLower(string(m.Runtime.NetScheduler)))
		if mode != NetLazy && mode != NetStrict {
			return Config{}, fmt.Errorf("%s: [runtime].net_scheduler must be %q or %q, got %q", path, NetLazy, NetStrict, mode)
		}
		cfg.NetScheduler = mode
	}
	if meta.IsDefined("log", "sink") {
		mode := LogSinkMode(strings.ToLower(string(m.Log.Sink)))
		if mode != LogDiscard && mode != LogStdout && mode != LogStderr {
			return Config{}, fmt.Errorf("%s: [log].sink must be %q, %q, or %q, got %q", path, LogDiscard, LogStdout, LogStderr, mode)
		}
		cfg.LogSink = mode
	}
	return cfg, nil
}
