package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadFillsDefaultsForUnsetFields(t *testing.T) {
	path := writeManifest(t, `[reduction]
delta = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Reduce.Delta {
		t.Fatalf("expected delta disabled")
	}
	if !cfg.Reduce.Beta || !cfg.Reduce.Iota || !cfg.Reduce.Nu || !cfg.Reduce.Hole {
		t.Fatalf("expected every other reduction class to stay enabled: %+v", cfg.Reduce)
	}
	if cfg.GraphCollectThreshold != Default().GraphCollectThreshold {
		t.Fatalf("expected default graph collection threshold")
	}
	if cfg.NetScheduler != NetLazy {
		t.Fatalf("expected default lazy scheduler, got %s", cfg.NetScheduler)
	}
}

func TestLoadRejectsUnknownSchedulerMode(t *testing.T) {
	path := writeManifest(t, `[runtime]
net_scheduler = "eager"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an unknown net_scheduler mode")
	}
}

func TestLoadAppliesRuntimeOverrides(t *testing.T) {
	path := writeManifest(t, `[runtime]
graph_collect_threshold = 128
net_scheduler = "strict"

[log]
sink = "stderr"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GraphCollectThreshold != 128 {
		t.Fatalf("expected threshold 128, got %d", cfg.GraphCollectThreshold)
	}
	if cfg.NetScheduler != NetStrict {
		t.Fatalf("expected strict scheduler, got %s", cfg.NetScheduler)
	}
	if cfg.NewLogSink() == nil {
		t.Fatalf("expected a non-nil log sink for sink=stderr")
	}
}

func TestDefaultSinkIsDiscardAndNil(t *testing.T) {
	if Default().NewLogSink() != nil {
		t.Fatalf("expected the default log sink to be nil (discard)")
	}
}
