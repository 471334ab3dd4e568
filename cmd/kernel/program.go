package main

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"kindkernel/internal/config"
	"kindkernel/internal/term"
)

// loadProgram reads a msgpack-encoded map of top-level definitions.
// Building that file from surface syntax is outside this kernel's
// scope; it only ever consumes already-constructed term.Term values.
func loadProgram(path string) (map[string]*term.Term, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open program %s: %w", path, err)
	}
	defer f.Close()

	var defs map[string]*term.Term
	if err := msgpack.NewDecoder(f).Decode(&defs); err != nil {
		return nil, fmt.Errorf("decode program %s: %w", path, err)
	}
	return defs, nil
}

// loadConfig reads --config if given, otherwise returns config.Default.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
