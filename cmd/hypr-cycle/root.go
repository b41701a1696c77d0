package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/a9sk/hypr-cycle/internal/compositor"
	"github.com/a9sk/hypr-cycle/internal/config"
	"github.com/a9sk/hypr-cycle/internal/cycle"
	"github.com/a9sk/hypr-cycle/internal/logging"
	"github.com/a9sk/hypr-cycle/internal/models"
	"github.com/a9sk/hypr-cycle/internal/output"
)

var (
	configPath string
	backend    string
	socketPath string
	timeout    time.Duration
	jsonOutput bool
	noColor    bool
	debugMode  bool
	dryRun     bool

	// loaded by PersistentPreRunE, flags applied on top
	cfg *config.Config

	// newClient builds the compositor client; replaced in tests
	newClient = compositor.New

	errorColor = color.New(color.FgRed, color.Bold)

	// errors go to stderr, so that is the stream whose terminal decides colour
	stderrIsTerminal = func() bool {
		fd := os.Stderr.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
)

var rootCmd = &cobra.Command{
	Use:   "hypr-cycle [next|prev|previous]",
	Short: "Cycle the focused monitor through its workspaces",
	Long: `hypr-cycle moves the focused monitor to its next or previous workspace,
wrapping around at either end. Only ordinary workspaces are visited;
special (scratchpad) workspaces are skipped.

Hyprland is the primary target; i3, sway and EWMH compliant X11 window
managers are supported as well. The direction defaults to "next".`,
	Args:          directionArg,
	ValidArgs:     []string{"next", "prev", "previous"},
	SilenceUsage:  true,
	SilenceErrors: true,
	// `hypr-cycle completion <shell>` still works, it just stays out of help
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: setup,
	RunE:              runCycle,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.GetConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "window manager backend: auto, hyprland, i3 or ewmh")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "IPC socket path (Hyprland or i3/sway)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the target workspace without switching")
}

// directionArg rejects a bad direction before anything talks to the compositor.
func directionArg(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return err
	}
	_, err := directionFrom(args)
	return err
}

func directionFrom(args []string) (models.Direction, error) {
	if len(args) == 0 {
		return models.Next, nil
	}
	return models.ParseDirection(args[0])
}

// setup loads the config, applies flag overrides and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	if noColor || !stderrIsTerminal() {
		color.NoColor = true
	}

	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		loaded.Backend = backend
	}
	if flags.Changed("socket") {
		loaded.Socket = socketPath
	}
	if flags.Changed("timeout") {
		loaded.Timeout = config.Duration(timeout)
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	if err := logging.Init(cfg.Log.File, cfg.Log.Level); err != nil {
		// logging is best effort, cycling must still work
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	if debugMode {
		logging.SetDebug()
	}
	logging.Debug().Str("cmd", cmd.Name()).Strs("args", args).Str("backend", cfg.Backend).Msg("starting")
	return nil
}

// openService builds the client for the configured backend and a service owning it.
// The returned func releases the client.
func openService(opts ...cycle.Option) (*cycle.Service, compositor.Client, func(), error) {
	client, err := newClient(cfg.CompositorOptions())
	if err != nil {
		return nil, nil, nil, err
	}
	release := func() {
		if err := compositor.Close(client); err != nil {
			logging.Warn().Err(err).Msg("closing compositor client")
		}
	}
	return cycle.New(client, opts...), client, release, nil
}

func runCycle(cmd *cobra.Command, args []string) error {
	dir, err := directionFrom(args)
	if err != nil {
		return err
	}

	svc, _, release, err := openService(cycle.WithDryRun(dryRun))
	if err != nil {
		return err
	}
	defer release()

	target, err := svc.Cycle(cmd.Context(), dir)
	if err != nil {
		logging.Error().Err(err).Str("direction", dir.String()).Msg("cycle failed")
		return err
	}

	switch {
	case jsonOutput:
		return output.PrintJSON(cmd.OutOrStdout(), target)
	case dryRun:
		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", target.ID)
	}
	return nil
}

func printError(err error) {
	errorColor.Fprint(os.Stderr, "error: ")
	fmt.Fprintln(os.Stderr, err)
}
