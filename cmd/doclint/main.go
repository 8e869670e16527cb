// doclint validates a markdown documentation corpus: structure,
// terminology, and cross-references.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/transrapport/doclint/internal/adapters/driven/config/file"
	"github.com/transrapport/doclint/internal/adapters/driven/storage/memory"
	"github.com/transrapport/doclint/internal/adapters/driven/storage/sqlite"
	"github.com/transrapport/doclint/internal/adapters/driving/cli"
	"github.com/transrapport/doclint/internal/core/ports/driven"
	"github.com/transrapport/doclint/internal/core/services"
	"github.com/transrapport/doclint/internal/corpus/filesystem"
	"github.com/transrapport/doclint/internal/logger"
	"github.com/transrapport/doclint/internal/parser/markdown"
)

// version is overridden at build time via -ldflags.
var version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("config store unavailable, using defaults: %v", err)
		configStore = nil
	}

	var runs driven.RunStore
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("run store unavailable, falling back to in-memory store: %v", err)
		runs = memory.NewRunStore()
	} else {
		defer store.Close()
		runs = store
	}

	engine := services.NewValidationEngine(filesystem.NewScanner(), markdown.New(), runs)
	status := services.NewStatusService(engine, runs)

	cli.SetServices(&cli.Services{
		Validator:       engine,
		CrossReferencer: engine,
		Status:          status,
		Config:          configStore,
	})

	if err := cli.Execute(version); err != nil {
		if errors.Is(err, cli.ErrValidationFailed) {
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}
