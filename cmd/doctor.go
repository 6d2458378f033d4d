package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/kanban-go/internal/config"
	"github.com/nibzard/kanban-go/internal/logging"
	"github.com/nibzard/kanban-go/internal/store"
)

// doctorCommand checks config, the saved board and the log directory.
func (a *app) doctorCommand(args []string) error {
	fs := flag.NewFlagSet("kanban doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	if _, err := a.parseArgs(fs, args, 0, 0, "doctor [-v]"); err != nil {
		return err
	}

	out := a.out
	fmt.Fprintln(out, "Kanban Doctor")
	fmt.Fprintln(out, "=============")
	fmt.Fprintln(out)

	allOK := true

	// Config
	fmt.Fprintln(out, "Config:")
	if len(a.sources.Files) == 0 {
		fmt.Fprintln(out, "  ⚠️  No config file found (using defaults)")
	}
	for _, f := range a.sources.Files {
		fmt.Fprintf(out, "  ✅ Read %s\n", f)
	}
	if *verbose {
		for _, field := range config.FieldNames() {
			fmt.Fprintf(out, "     %s = %s (%s)\n", field, a.cfg.Value(field), a.source(field))
		}
	}
	fmt.Fprintln(out)

	// Board snapshot
	st := store.New(store.NewFileSlot(a.cfg.DataDir, a.cfg.StorageKey), a.logger)
	fmt.Fprintf(out, "Board: %s\n", st.Location())
	result, err := st.Inspect()
	switch {
	case errors.Is(err, store.ErrSlotEmpty):
		fmt.Fprintln(out, "  ⚠️  Not found (the default board is used until the first change)")
	case err != nil:
		fmt.Fprintf(out, "  ❌ Error: %v\n", err)
		allOK = false
	case result.Valid:
		fmt.Fprintln(out, "  ✅ Valid")
		b := st.Load()
		fmt.Fprintf(out, "  Columns: %d, tasks: %d\n", len(b.Columns), b.TaskCount())
		if *verbose {
			for _, col := range b.Columns {
				fmt.Fprintf(out, "    - [%s] %s (%d)\n", col.ID, col.Title, len(col.Tasks))
			}
		}
	default:
		fmt.Fprintln(out, "  ❌ Validation failed (the default board will be used):")
		for _, e := range result.Errors {
			fmt.Fprintf(out, "     - %v\n", e)
		}
		allOK = false
	}
	fmt.Fprintln(out)

	// Log directory
	logDir := a.cfg.LogDir()
	fmt.Fprintf(out, "Log directory: %s\n", logDir)
	if info, err := os.Stat(logDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "  ⚠️  Not found (will be created on the first tui run)")
		} else {
			fmt.Fprintf(out, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(out, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(out, "  ✅ OK")
		if latest, err := logging.FindLatestLog(logDir); err == nil && latest != "" && *verbose {
			fmt.Fprintf(out, "  Latest run: %s\n", latest)
		}
	}
	fmt.Fprintln(out)

	if allOK {
		fmt.Fprintln(out, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(out, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

func (a *app) source(field string) config.ConfigSource {
	if src, ok := a.sources.Sources[field]; ok {
		return src
	}
	return config.SourceDefault
}
