package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/jsvensson/themekit"
	"github.com/jsvensson/themekit/internal/color"
	"github.com/jsvensson/themekit/internal/config"
	"github.com/jsvensson/themekit/internal/css"
	"github.com/jsvensson/themekit/internal/engine"
	"github.com/jsvensson/themekit/internal/format"
	"github.com/jsvensson/themekit/internal/parser"
	"github.com/jsvensson/themekit/internal/registry"
	"github.com/jsvensson/themekit/internal/theme"
	"github.com/jsvensson/themekit/internal/validate"
)

var (
	flagTheme     string
	flagMode      string
	flagThemeDirs []string
	flagVerbose   int
	flagOut       string
	flagOutDir    string
	flagName      string
	flagTemplates string
	flagApp       []string
	flagCheck     bool
	version       = "dev" // Injected at build time via ldflags
)

// settings and themes are resolved once per invocation, before any command runs.
var (
	settings *config.Settings
	themes   *registry.Map
)

var rootCmd = &cobra.Command{
	Use:               "themekit",
	Short:             "Build, validate and export OKLCH design-system themes",
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered themes",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show [theme|file]",
	Short: "Print a theme's tokens with color swatches",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

var cssCmd = &cobra.Command{
	Use:   "css [theme|file]",
	Short: "Render a theme as CSS custom properties",
	Long:  "Render a theme as CSS custom properties, light tokens under :root and dark tokens under .dark. With --mode only that mode is applied and printed as a single :root rule.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCSS,
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check theme files for missing tokens and compatibility issues",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

var fixCmd = &cobra.Command{
	Use:   "fix <file>",
	Short: "Fill in missing tokens and write the repaired theme",
	Long:  "Fill in missing tokens with derived or neutral values. The output format follows --out: .yaml, .css or a theme definition file (default).",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

var importCmd = &cobra.Command{
	Use:   "import <stylesheet>",
	Short: "Convert a CSS stylesheet into a theme definition file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [theme|file]",
	Short: "Export a theme as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var paletteCmd = &cobra.Command{
	Use:   "palette <color>",
	Short: "Print the 50-950 palette generated from a base color",
	Args:  cobra.ExactArgs(1),
	RunE:  runPalette,
}

var generateCmd = &cobra.Command{
	Use:   "generate [theme|file]",
	Short: "Generate application files from templates",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format .theme.hcl files",
	Long:  "Format one or more .theme.hcl files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagTheme, "theme", "", "theme name (default from config, else neutral)")
	pf.StringVar(&flagMode, "mode", "", "color mode: light or dark")
	pf.StringArrayVar(&flagThemeDirs, "theme-dir", nil, "directory of theme files to register (can be repeated)")
	pf.CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")

	cssCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file (default from config, - for stdout)")
	fixCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file (default stdout)")
	importCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file (default stdout)")
	importCmd.Flags().StringVar(&flagName, "name", "", "theme name (default from the file name)")
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file (default stdout)")
	generateCmd.Flags().StringVar(&flagOutDir, "out", "output", "output directory")
	generateCmd.Flags().StringVar(&flagTemplates, "templates", "templates", "templates directory")
	generateCmd.Flags().StringArrayVar(&flagApp, "app", nil, "generate only for specific apps (can be repeated)")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")

	rootCmd.AddCommand(listCmd, showCmd, cssCmd, validateCmd, fixCmd, importCmd,
		exportCmd, paletteCmd, generateCmd, fmtCmd, versionCmd)
}

// setup configures logging, loads the settings and registers the presets
// plus every theme found in the configured theme directories.
func setup(cmd *cobra.Command, args []string) error {
	commonlog.Configure(flagVerbose, nil)

	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("theme") {
		overrides[config.KeyTheme] = flagTheme
	}
	if flags.Changed("mode") {
		overrides[config.KeyMode] = flagMode
	}
	if flags.Changed("theme-dir") {
		overrides[config.KeyThemeDirs] = flagThemeDirs
	}
	if cmd == cssCmd && flags.Changed("out") {
		overrides[config.KeyCSSOutput] = flagOut
	}

	s, err := config.Load(config.WithOverrides(overrides))
	if err != nil {
		return err
	}
	settings = s

	themes = registry.New()
	for _, dir := range settings.ThemeDirs {
		if themes, err = themekit.LoadDir(dir, themekit.WithThemes(themes)); err != nil {
			return fmt.Errorf("loading themes from %s: %w", dir, err)
		}
	}
	return nil
}

// resolveTheme loads a theme file when arg names one, and otherwise looks the
// theme up by name. With no arg the configured theme is used.
func resolveTheme(args []string) (*theme.Config, error) {
	name := settings.Theme
	if len(args) > 0 {
		name = args[0]
	}
	if themekit.IsThemeFile(name) {
		if _, err := os.Stat(name); err == nil {
			return themekit.Load(name, themekit.WithThemes(themes))
		}
	}
	cfg, ok := themes.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (see themekit list)", name)
	}
	return cfg, nil
}

func mode() theme.Mode {
	m, _ := theme.ParseMode(settings.Mode)
	return m
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == config.StdoutPath {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	for _, name := range themes.Names() {
		marker := " "
		if name == settings.Theme {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveTheme(args)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderTokens(cfg, mode()))
	return nil
}

func runCSS(cmd *cobra.Command, args []string) error {
	cfg, err := resolveTheme(args)
	if err != nil {
		return err
	}
	out := css.ToCSS(cfg)
	if cmd.Flags().Changed("mode") {
		if out, err = renderModeCSS(themes, cfg, mode()); err != nil {
			return err
		}
	}
	return writeOutput(cmd, settings.CSS.Output, []byte(out))
}

// renderModeCSS applies one mode of cfg to a fresh style root, the way a page
// switching themes would, and returns the resulting :root rule. A theme
// loaded from a file is registered first and must pass validation.
func renderModeCSS(themes *registry.Map, cfg *theme.Config, m theme.Mode) (string, error) {
	if got, ok := themes.Get(cfg.Name()); !ok || got != cfg {
		var err error
		if themes, err = themes.Add(cfg.Name(), cfg); err != nil {
			return "", err
		}
	}
	root := registry.NewStyleRoot()
	themes.Apply(root, cfg.Name(), m)
	return root.CSS(), nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		cfg, err := themekit.Load(path, themekit.WithThemes(themes))
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed++
			continue
		}

		res := validate.Theme(cfg)
		compat := validate.Compatibility(cfg)
		if res.IsValid && compat.Compatible {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			continue
		}
		if !res.IsValid {
			failed++
		}
		for _, msg := range res.Errors {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: error: %s\n", path, msg)
		}
		for _, msg := range compat.Issues {
			if !strings.HasPrefix(msg, "missing required") {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: warning: %s\n", path, msg)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d themes invalid", failed, len(args))
	}
	return nil
}

func runFix(cmd *cobra.Command, args []string) error {
	cfg, err := themekit.Load(args[0], themekit.WithThemes(themes))
	if err != nil {
		return err
	}
	fixed := validate.AutoFix(cfg)

	var data []byte
	switch filepath.Ext(flagOut) {
	case ".yaml", ".yml":
		if data, err = theme.ToYAML(fixed); err != nil {
			return err
		}
	case ".css":
		data = []byte(css.ToCSS(fixed))
	default:
		data = parser.Encode(fixed, parser.Meta{})
	}
	return writeOutput(cmd, flagOut, data)
}

func runImport(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading stylesheet: %w", err)
	}
	name := flagName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}
	cfg, err := css.Parse(string(src), css.WithName(name))
	if err != nil {
		return fmt.Errorf("importing %s: %w", args[0], err)
	}
	return writeOutput(cmd, flagOut, parser.Encode(cfg, parser.Meta{}))
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := resolveTheme(args)
	if err != nil {
		return err
	}
	data, err := theme.ToYAML(cfg)
	if err != nil {
		return fmt.Errorf("encoding theme: %w", err)
	}
	return writeOutput(cmd, flagOut, data)
}

func runPalette(cmd *cobra.Command, args []string) error {
	base, err := parseColor(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderPalette(color.GeneratePaletteFrom(base)))
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveTheme(args)
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}

	e := &engine.Engine{
		TemplatesDir: flagTemplates,
		OutputDir:    flagOutDir,
		Apps:         flagApp,
	}

	if err := e.Run(cfg); err != nil {
		return fmt.Errorf("generating: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated theme files in %s\n", flagOutDir)
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		changed, err := format.File(path, flagCheck)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			hasErrors = true
			continue
		}
		if changed {
			fmt.Fprintln(cmd.OutOrStdout(), path)
			needsFormatting = true
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
