package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/maruel/structfile/internal/config"
	"github.com/spf13/cobra"
)

// demoStep exercises one format: write, read, append, read.
type demoStep struct {
	format string
	file   string
	write  string
	append string
}

var demoSteps = []demoStep{
	{config.FormatJSON, "test.json", `{"name": "Vadim Kozlov", "age": 35}`, `{"city": "Penza"}`},
	{config.FormatText, "test.txt", "Hello, world!", "\nThis is a new line."},
	{config.FormatCSV, "test.csv", `[["Name", "Age"], ["Alla", "25"], ["Sergey", "30"]]`, `[["Margo", "35"]]`},
}

func (a *app) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo DIR",
		Short: "Write, append and read back one file of each format in DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
			out := cmd.OutOrStdout()
			for _, s := range demoSteps {
				if err := a.runDemo(out, filepath.Join(dir, s.file), s); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) runDemo(out io.Writer, path string, s demoStep) error {
	h, err := newHandle(s.format, path, a.cfg.Lenient, a.log)
	if err != nil {
		return err
	}
	if err := h.write(s.write); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "%s after write:\n", s.file); err != nil {
		return err
	}
	if err := h.read(out); err != nil {
		return err
	}
	if err := h.append(s.append); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "\n%s after append:\n", s.file); err != nil {
		return err
	}
	if err := h.read(out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out)
	return err
}
