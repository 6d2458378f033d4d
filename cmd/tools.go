package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/nibzard/kanban-go/internal/config"
	"github.com/nibzard/kanban-go/internal/export"
	"github.com/nibzard/kanban-go/internal/logging"
)

// exportCommand writes the board in one of the export formats.
func (a *app) exportCommand(args []string) error {
	fs := flag.NewFlagSet("kanban export", flag.ContinueOnError)
	formatName := fs.String("format", "json", "Output format: json, yaml, markdown")
	outPath := fs.String("o", "", "Output file (default stdout)")
	if _, err := a.parseArgs(fs, args, 0, 0, "export [-format json|yaml|markdown] [-o file]"); err != nil {
		return err
	}
	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	s, err := a.openSession(a.logger)
	if err != nil {
		return err
	}

	var w io.Writer = a.out
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := export.Write(w, s.Board(), a.cfg.BoardTitle, format); err != nil {
		return err
	}
	if *outPath != "" {
		a.logger.Info("board exported", "format", format, "path", *outPath)
	}
	return nil
}

// logsCommand prints the latest TUI run log.
func (a *app) logsCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("kanban logs", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if _, err := a.parseArgs(fs, args, 0, 0, "logs [-f] [-n lines]"); err != nil {
		return err
	}

	logPath, err := logging.FindLatestLog(a.cfg.LogDir())
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(a.out, "No log files found.")
		return nil
	}

	fmt.Fprintf(a.errOut, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(a.errOut, "(Ctrl+C to stop)")
	}
	return logging.TailLog(ctx, a.out, logPath, *n, *follow)
}

// configCommand prints the effective configuration or an example file.
func (a *app) configCommand(args []string) error {
	fs := flag.NewFlagSet("kanban config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example kanban.toml")
	if _, err := a.parseArgs(fs, args, 0, 0, "config [-example]"); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(a.out, config.ExampleConfig())
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, field := range config.FieldNames() {
		fmt.Fprintf(tw, "%s\t%s\t(%s)\n", field, a.cfg.Value(field), a.source(field))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, f := range a.sources.Files {
		fmt.Fprintf(a.out, "read %s\n", f)
	}
	return nil
}
