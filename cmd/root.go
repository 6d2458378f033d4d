// Package cmd implements the CLI command structure for kanban.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/kanban-go/internal/board"
	"github.com/nibzard/kanban-go/internal/config"
	"github.com/nibzard/kanban-go/internal/logging"
	"github.com/nibzard/kanban-go/internal/session"
	"github.com/nibzard/kanban-go/internal/store"
	"github.com/nibzard/kanban-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// keepRunLogs is how many TUI run logs are kept in the log directory.
const keepRunLogs = 20

// app carries what every subcommand needs.
type app struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	out     io.Writer
	errOut  io.Writer
	logger  *log.Logger
}

// Run executes the kanban CLI.
func Run(ctx context.Context, args []string) error {
	return execute(ctx, args, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("kanban", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a := &app{
		cfg:     cws.Config,
		sources: cws,
		out:     stdout,
		errOut:  stderr,
	}
	a.logger = logging.New(stderr, logging.OptionsFromConfig(a.cfg.LogLevel, a.cfg.LogFormat, a.cfg.LogTimestamps, a.cfg.LogCaller))

	if *help {
		printUsage(stdout)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	// Without a subcommand, show the board: interactively on a terminal,
	// as a listing otherwise.
	subcommand := "ls"
	if ui.IsTTY(stdout) {
		subcommand = "tui"
	}
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "ls":
		return a.lsCommand(remainingArgs)
	case "column", "col":
		return a.columnCommand(remainingArgs)
	case "task":
		return a.taskCommand(remainingArgs)
	case "export":
		return a.exportCommand(remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "logs":
		return a.logsCommand(ctx, remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newStore returns the store for the configured data dir and key.
func (a *app) newStore(logger *log.Logger) *store.Store {
	return store.New(store.NewFileSlot(a.cfg.DataDir, a.cfg.StorageKey), logger)
}

// openSession loads the board for a command.
func (a *app) openSession(logger *log.Logger) (*session.Session, error) {
	ids, err := board.NewIDSource(a.cfg.IDScheme)
	if err != nil {
		return nil, err
	}
	return session.Open(a.newStore(logger), board.NewReducer(ids), logger), nil
}

// tuiCommand launches the interactive board.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("kanban tui", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !ui.IsTTY(a.out) {
		return fmt.Errorf("tui requires a TTY (use 'kanban ls' to print the board)")
	}

	// The TUI owns the terminal, so logs go to a per-run file.
	runLog, err := logging.OpenRunLog(a.cfg.LogDir())
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer runLog.Close()

	logger := logging.New(runLog.Writer(), logging.OptionsFromConfig(a.cfg.LogLevel, a.cfg.LogFormat, true, a.cfg.LogCaller))
	if removed, err := logging.PruneRunLogs(a.cfg.LogDir(), keepRunLogs); err != nil {
		logger.Warn("pruning old run logs", "err", err)
	} else if removed > 0 {
		logger.Debug("pruned old run logs", "removed", removed)
	}

	s, err := a.openSession(logger)
	if err != nil {
		return err
	}
	logger.Info("tui started", "board", s.Location(), "run", runLog.RunID)
	return ui.RunTUI(ctx, s, a.cfg.BoardTitle, logger)
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.out, "kanban version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Kanban - a terminal kanban board")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  kanban [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                          Interactive board (default on a terminal)")
	fmt.Fprintln(w, "  ls [column]                  Print the board or one column")
	fmt.Fprintln(w, "  column add <title>           Add a column")
	fmt.Fprintln(w, "  column rename <col> <title>  Rename a column")
	fmt.Fprintln(w, "  column rm <col>              Delete an empty column")
	fmt.Fprintln(w, "  column move <col> <target>   Move a column to the target column's place")
	fmt.Fprintln(w, "  task add <title>             Add a task")
	fmt.Fprintln(w, "  task edit <task>             Edit a task")
	fmt.Fprintln(w, "  task rm <task>               Delete a task")
	fmt.Fprintln(w, "  task move <task> <target>    Move a task onto another task or a column")
	fmt.Fprintln(w, "  export                       Write the board as json, yaml or markdown")
	fmt.Fprintln(w, "  doctor                       Check config and the saved board")
	fmt.Fprintln(w, "  logs                         Show the latest TUI run log")
	fmt.Fprintln(w, "  config                       Show the effective config and where it came from")
	fmt.Fprintln(w, "  version                      Show version information")
	fmt.Fprintln(w, "  help                         Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Columns and tasks are referenced by id or by title.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fmt.Fprintln(w, "  -data-dir string")
	fmt.Fprintln(w, "        Directory holding the board snapshot and logs (default ~/.kanban)")
	fmt.Fprintln(w, "  -key string")
	fmt.Fprintln(w, "        Storage key, the snapshot file name without .json (default task-manager-data)")
	fmt.Fprintln(w, "  -title string")
	fmt.Fprintln(w, "        Board title shown in the header (default \"Task Manager\")")
	fmt.Fprintln(w, "  -id-scheme string")
	fmt.Fprintln(w, "        Identifier scheme for new items: timestamp, uuid or ulid (default timestamp)")
	fmt.Fprintln(w, "  -log-level string")
	fmt.Fprintln(w, "        Log level: debug, info, warn, error (default info)")
	fmt.Fprintln(w, "  -log-format string")
	fmt.Fprintln(w, "        Log format: text, json, logfmt (default text)")
	fmt.Fprintln(w, "  -log-timestamps")
	fmt.Fprintln(w, "        Show timestamps in logs")
	fmt.Fprintln(w, "  -log-caller")
	fmt.Fprintln(w, "        Show caller location in logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Task Options (use with 'task add' and 'task edit'):")
	fmt.Fprintln(w, "  -column string")
	fmt.Fprintln(w, "        Column for a new task (default: first column)")
	fmt.Fprintln(w, "  -title string")
	fmt.Fprintln(w, "        New title (edit only)")
	fmt.Fprintln(w, "  -desc string")
	fmt.Fprintln(w, "        Description")
	fmt.Fprintln(w, "  -tag label[:color]")
	fmt.Fprintln(w, "        Tag, repeatable; colors: red, orange, yellow, green, blue, purple, pink, gray")
	fmt.Fprintln(w, "  -clear-tags")
	fmt.Fprintln(w, "        Remove all tags before adding -tag values (edit only)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options:")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        json, yaml or markdown (default json)")
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Output file (default stdout)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options:")
	fmt.Fprintln(w, "  -f, -follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
