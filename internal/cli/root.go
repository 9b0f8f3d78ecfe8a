// Package cli implements the structfile command line tool.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/maruel/structfile/internal/config"
	"github.com/maruel/structfile/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	viper   *viper.Viper
	cfgFile string
	cfg     config.Config
	level   slog.LevelVar
	log     *slog.Logger
}

// NewRootCmd returns the structfile command tree.
func NewRootCmd() *cobra.Command {
	a := &app{viper: viper.New()}
	root := &cobra.Command{
		Use:               "structfile",
		Short:             "Read, write and append JSON, text and CSV files",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: structfile.yaml in . or $HOME/.config/structfile)")
	flags.String("format", config.FormatJSON, "file format: json, text or csv")
	flags.Bool("lenient", false, "log failures and continue instead of exiting with an error")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("no-color", false, "disable colored logs")
	for _, name := range []string{"format", "lenient", "log-level", "no-color"} {
		if err := a.viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(a.readCmd(), a.writeCmd(), a.appendCmd(), a.watchCmd(), a.demoCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.viper, a.cfgFile)
	if err != nil {
		return err
	}
	lvl, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.level.Set(lvl)
	logger.Initialize(cmd.ErrOrStderr(), &a.level, cfg.NoColor)
	a.log = logger.Named("structfile")
	a.log.Debug("configuration loaded", "config_file", a.viper.ConfigFileUsed(), "format", cfg.Format, "lenient", cfg.Lenient)
	return nil
}

func (a *app) handle(path string) (handle, error) {
	return newHandle(a.cfg.Format, path, a.cfg.Lenient, a.log)
}

// data returns the DATA argument, reading stdin when it is "-".
func data(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(b), nil
}

func (a *app) readCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read PATH",
		Short: "Print the content of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.handle(args[0])
			if err != nil {
				return err
			}
			return h.read(cmd.OutOrStdout())
		},
	}
}

func (a *app) writeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write PATH DATA",
		Short: "Replace the content of a file",
		Long:  dataHelp,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, args, "write", handle.write)
		},
	}
}

func (a *app) appendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "append PATH DATA",
		Short: "Add data to the content of a file",
		Long:  dataHelp,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, args, "append", handle.append)
		},
	}
}

func (a *app) mutate(cmd *cobra.Command, args []string, op string, fn func(handle, string) error) error {
	h, err := a.handle(args[0])
	if err != nil {
		return err
	}
	d, err := data(cmd, args[1])
	if err != nil {
		return err
	}
	if err := fn(h, d); err != nil {
		return err
	}
	a.log.Debug("done", "op", op, "path", args[0], "format", a.cfg.Format)
	return nil
}

var dataHelp = strings.TrimSpace(`
DATA is "-" to read from stdin. With --format json it is a YAML or JSON
object or array, e.g. '{"city": "Penza"}'. With --format csv it is a list of
rows, e.g. '[["Margo", "35"]]'. With --format text it is used verbatim.
`)
