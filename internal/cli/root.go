// Package cli implements the catalog command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/catalog/internal/logging"
	"github.com/mesh-intelligence/catalog/internal/paths"
)

// Exit codes. User errors cover bad input and missing documents; system
// errors cover storage and I/O failures.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by the commands of one root command.
type app struct {
	flags     rootFlags
	configDir string
	settings  settings
	log       *zap.Logger
}

// NewRootCmd creates the top-level "catalog" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Store and inspect merchant catalog documents",
		Long: "Catalog stores items, their variations and modifications as versioned\n" +
			"documents owned by an account, and decodes catalog JSON.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.log.Sync() },
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.catalog-db)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newPutCmd(a),
		newGetCmd(a),
		newListCmd(a),
		newDeleteCmd(a),
		newDecodeCmd(a),
		newCategoriesCmd(a),
		newUnitsCmd(a),
	)
	return root
}

// setup resolves the config directory, loads config.yaml and builds the
// logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	s, err := loadSettings(configDir)
	if err != nil {
		return userError(err)
	}

	level := a.flags.logLevel
	if level == "" {
		level = s.LogLevel
	}
	log, err := logging.New(level, false)
	if err != nil {
		return userError(err)
	}

	a.configDir = configDir
	a.settings = s
	a.log = log.Named("catalog")
	a.log.Debug("loaded config",
		zap.String("config_dir", configDir),
		zap.String("backend", s.Backend),
	)
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args and returns the process exit code. Errors are
// printed to stderr.
func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "catalog:", err)
	return exitCode(err)
}

// exitError carries the exit code a command failure maps to.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// exitCode returns the code carried by err. Errors raised by cobra itself,
// such as unknown flags or a wrong argument count, are user errors.
func exitCode(err error) int {
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return exitUserError
}
