package vulnsweep

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/vulnsweep/vulnsweep/internal/config"
	"github.com/vulnsweep/vulnsweep/internal/engine"
	"github.com/vulnsweep/vulnsweep/internal/logging"
	"github.com/vulnsweep/vulnsweep/internal/progress"
	"github.com/vulnsweep/vulnsweep/internal/report"
	"github.com/vulnsweep/vulnsweep/internal/update"
)

var (
	flagPath        string
	flagRules       string
	flagLanguages   string
	flagInclude     string
	flagExclude     string
	flagMaxBytes    int64
	flagFormat      string
	flagOutput      string
	flagFailOn      string
	flagCopy        bool
	flagShowContext bool
	flagStrictExt   bool
	flagNoDefaults  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a directory for vulnerable code patterns",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagRules, "rules", "", "external rule file (JSON or YAML); default is the built-in set")
	cmd.Flags().StringVar(&flagLanguages, "languages", "", "only scan these languages (comma-separated; default all)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "output format: text|json|csv|html|sarif")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "exit 1 when findings at/above this severity exist (CRITICAL|HIGH|MEDIUM|LOW)")
	cmd.Flags().BoolVar(&flagCopy, "copy", false, "copy the rendered report to the clipboard")
	cmd.Flags().BoolVar(&flagShowContext, "context", false, "show surrounding code for each finding (text format)")
	cmd.Flags().BoolVar(&flagStrictExt, "strict-extensions", false, "also narrow rules by their declared file extensions")
	cmd.Flags().BoolVar(&flagNoDefaults, "no-default-excludes", false, "scan node_modules, vendor and other default-excluded directories")
}

func runScan(cmd *cobra.Command, _ []string) error {
	logging.Init(flagVerbose)
	defer logging.Sync()

	abs, _ := filepath.Abs(flagPath)

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	defaultExcludes := true
	if gcfg.DefaultExcludes != nil {
		defaultExcludes = *gcfg.DefaultExcludes
	}
	if lcfg.DefaultExcludes != nil {
		defaultExcludes = *lcfg.DefaultExcludes
	}
	if flagNoDefaults {
		defaultExcludes = false
	}

	cfg := engine.Config{
		Root:            abs,
		RulesPath:       pickString(flagRules, lcfg.Rules, gcfg.Rules),
		Languages:       pickString(flagLanguages, lcfg.Languages, gcfg.Languages),
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		DefaultExcludes: defaultExcludes,
		StrictExt:       pickBool(flagStrictExt, lcfg.StrictExtensions, gcfg.StrictExtensions),
	}
	if len(lcfg.SafePatterns) > 0 {
		cfg.SafePatterns = lcfg.SafePatterns
	} else if len(gcfg.SafePatterns) > 0 {
		cfg.SafePatterns = gcfg.SafePatterns
	}

	format := strings.ToLower(pickString(flagFormat, lcfg.Format, gcfg.Format))
	if format == "" {
		format = "text"
	}
	noColor := flagNoColor || pickBool(false, lcfg.NoColor, gcfg.NoColor) || !progress.IsTerminal(os.Stdout)

	textToTTY := format == "text" && flagOutput == "" && progress.IsTerminal(os.Stderr)
	if textToTTY {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'vulnsweep update' to upgrade\n", latest)
			}
		}
		fmt.Fprintf(os.Stderr, "Scanning %s...\n", abs)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var bar *progress.Bar
	if textToTTY {
		if files, err := engine.SelectFiles(cfg); err == nil {
			bar = progress.New(len(files), os.Stderr)
			cfg.Progress = bar.Tick
		}
	}

	res, err := engine.Scan(ctx, cfg)
	bar.Done()
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	var buf bytes.Buffer
	switch format {
	case "text":
		report.PrintText(&buf, res, report.PrintOptions{NoColor: noColor, ShowContext: flagShowContext})
	case "json":
		err = report.WriteJSON(&buf, res)
	case "csv":
		err = report.WriteCSV(&buf, res)
	case "html":
		err = report.WriteHTML(&buf, res)
	case "sarif":
		err = report.WriteSARIF(&buf, res, version)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("render error: %w", err)
	}

	var out io.Writer = os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return err
	}

	if flagCopy {
		if err := clipboard.WriteAll(buf.String()); err != nil {
			fmt.Fprintln(os.Stderr, "clipboard warning:", err)
		}
	}

	failOn := pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn)
	if failOn != "" && report.ShouldFail(res, failOn) {
		os.Exit(1)
	}
	return nil
}
