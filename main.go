package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"mylauncher/internal/config"
	"mylauncher/internal/customapps"
	"mylauncher/internal/history"
	"mylauncher/internal/launcher"
	"mylauncher/internal/models"
	"mylauncher/internal/runner"
	"mylauncher/internal/scanner"
	"mylauncher/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
	debugMode = false // Enable with --debug flag
)

// debugLog logs a message if debug mode is enabled
func debugLog(format string, args ...interface{}) {
	if debugMode {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// setDebug toggles debug logging in every package that logs
func setDebug(on bool) {
	debugMode = on
	scanner.DebugMode = on
	history.DebugMode = on
	runner.DebugMode = on
	launcher.DebugMode = on
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mylauncher",
		Short: "A keyboard-driven application launcher",
		Long: `mylauncher lists the applications installed on this machine, filters them
as you type and starts the one you pick.

Run without a subcommand to open the interactive launcher.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				setDebug(true)
				fmt.Fprintln(os.Stderr, "[DEBUG] Debug mode enabled")
			}
		},
		RunE: runTUI,
	}
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug mode (logs to stderr)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default "+config.ConfigPath()+")")

	// List command - print the ranked view
	listCmd := &cobra.Command{
		Use:   "list [query]",
		Short: "Print applications matching a query",
		Args:  cobra.ArbitraryArgs,
		RunE:  runList,
	}
	listCmd.Flags().Bool("all", false, "Print the whole catalog instead of the ranked view")
	listCmd.Flags().BoolP("verbose", "v", false, "Include exec line and source file")

	// Run command - direct activation
	runCmd := &cobra.Command{
		Use:   "run <query...>",
		Short: "Launch the application best matching a query",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRun,
	}
	runCmd.Flags().Bool("dry-run", false, "Print the resolved command instead of launching it")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Print recently launched applications",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	historyCmd.Flags().Bool("clear", false, "Forget all recently launched applications")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfig,
	}
	configCmd.Flags().Bool("init", false, "Write the default configuration file")

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom shortcut",
		Args:  cobra.NoArgs,
		RunE:  runAdd,
	}
	addCmd.Flags().String("name", "", "Display name (required)")
	addCmd.Flags().String("exec", "", "Command line, field codes like %u are allowed (required)")
	addCmd.Flags().String("icon", "", "Icon name")
	addCmd.Flags().String("comment", "", "Description shown next to the name")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("exec")

	removeCmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a custom shortcut",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mylauncher %s (built %s)\n", version, buildTime)
		},
	}

	rootCmd.AddCommand(
		listCmd,
		runCmd,
		historyCmd,
		configCmd,
		addCmd,
		removeCmd,
		versionCmd,
	)
	return rootCmd
}

// loadConfig loads the file named by --config, or the default one
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to read --config flag: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	debugLog("Using config %s (first run: %v)", cfg.Path(), cfg.FirstRun)
	return cfg, nil
}

func newLauncher(cmd *cobra.Command, opts ...launcher.Option) (*launcher.Launcher, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	l, err := launcher.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	debugLog("Catalog has %d entries, history has %d", len(l.Catalog()), len(l.History()))
	return l, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	l, err := newLauncher(cmd)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewModel(l), tea.WithAltScreen())
	stop := notifyToggle(p)
	defer stop()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("launcher UI failed: %w", err)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to read --all flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to read --verbose flag: %w", err)
	}

	l, err := newLauncher(cmd)
	if err != nil {
		return err
	}

	items := l.Catalog()
	if !all {
		items = l.Rank(strings.Join(args, " "))
	}
	printShortcuts(cmd.OutOrStdout(), items, verbose)
	return nil
}

func printShortcuts(w io.Writer, items []*models.Shortcut, verbose bool) {
	for _, sc := range items {
		if verbose {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sc.Name, sc.Description, sc.Exec, sc.Path)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", sc.Name, sc.Description)
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to read --dry-run flag: %w", err)
	}

	l, err := newLauncher(cmd)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	target, resolved, ok := l.Activate(query)
	if target == nil {
		return fmt.Errorf("no application matches %q", query)
	}
	if !ok {
		return fmt.Errorf("%s: %w", target.Name, launcher.ErrNothingToLaunch)
	}

	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), resolved.String())
		return nil
	}

	res, err := l.Launch(target)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Launched (%s): %s\n", res.Strategy, res.Command)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	clearAll, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return fmt.Errorf("failed to read --clear flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tracker := history.New(cfg.GetHistoryPath())

	if clearAll {
		if err := tracker.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	}

	for _, name := range tracker.Items() {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	var in customapps.FormInput
	for name, dst := range map[string]*string{
		"name":    &in.Name,
		"exec":    &in.Exec,
		"icon":    &in.Icon,
		"comment": &in.Comment,
	} {
		value, err := cmd.Flags().GetString(name)
		if err != nil {
			return fmt.Errorf("failed to read --%s flag: %w", name, err)
		}
		*dst = value
	}

	def, err := customapps.BuildDefinition(in)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store := customapps.New(cfg.GetShortcutsPath())
	if err := store.Add(def); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", def.Name, store.Path())
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := customapps.New(cfg.GetShortcutsPath())
	removed, err := store.Remove(args[0])
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("no custom shortcut named %q", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	initFile, err := cmd.Flags().GetBool("init")
	if err != nil {
		return fmt.Errorf("failed to read --init flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if initFile {
		if !cfg.FirstRun {
			return fmt.Errorf("config already exists at %s", cfg.Path())
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Path())
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	out := string(data)
	if isTerminal(cmd.OutOrStdout()) {
		out = ui.NewHighlighter().HighlightText(out, "yaml")
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
