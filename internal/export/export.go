// Package export renders a board as JSON, YAML or Markdown.
package export

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/kanban-go/internal/board"
	"github.com/nibzard/kanban-go/internal/store"
)

// Format names an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatMarkdown}
}

// ParseFormat accepts a format name or a common alias (yml, md).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, yaml or markdown)", s)
}

// yamlDocument is the YAML export layout.
type yamlDocument struct {
	Title   string         `yaml:"title"`
	Columns []board.Column `yaml:"columns"`
}

// Write renders b in format f. title is used by the YAML and Markdown
// layouts; JSON output is the snapshot format and has no title.
func Write(w io.Writer, b board.Board, title string, f Format) error {
	switch f {
	case FormatJSON:
		data, err := store.Encode(b)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatYAML:
		return writeYAML(w, b, title)
	case FormatMarkdown:
		return writeMarkdown(w, b, title)
	}
	return fmt.Errorf("unknown export format %q", f)
}

func writeYAML(w io.Writer, b board.Board, title string) error {
	doc := yamlDocument{Title: title, Columns: b.Columns}
	if doc.Columns == nil {
		doc.Columns = []board.Column{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func writeMarkdown(w io.Writer, b board.Board, title string) error {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "# %s\n", title)
	}
	for _, col := range b.Columns {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s (%d)\n", col.Title, len(col.Tasks))
		if len(col.Tasks) == 0 {
			sb.WriteString("\n_No tasks_\n")
			continue
		}
		sb.WriteString("\n")
		for _, task := range col.Tasks {
			writeMarkdownTask(&sb, task)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMarkdownTask(sb *strings.Builder, task board.Task) {
	sb.WriteString("- ")
	sb.WriteString(task.Title)
	for _, tag := range task.Tags {
		fmt.Fprintf(sb, " `%s:%s`", tag.Label, tag.Color)
	}
	sb.WriteString("\n")
	if task.Description == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(task.Description, "\n"), "\n") {
		sb.WriteString("  ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}
