package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/provide-io/reslot/internal/settings"
	"github.com/provide-io/reslot/pkg/logging"
	"github.com/provide-io/reslot/pkg/reslot/codec"
	_ "github.com/provide-io/reslot/pkg/reslot/codec/compress"
	"github.com/provide-io/reslot/pkg/reslot/config"
	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
	"github.com/provide-io/reslot/pkg/reslot/runner"
	"github.com/provide-io/reslot/pkg/reslot/scan"
)

const version = "0.3.0"

var (
	logLevel string
	rootCmd  *cobra.Command

	scanModDir  string
	scanFighter string

	opts runner.Options

	schemaOut string

	packIn  string
	packOut string
)

func buildTimestamp() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func newLogger() hclog.Logger {
	lvl := logging.ResolveLevel(logLevel)
	logger := logging.NewLoggerWithLevel("reslot", lvl, os.Stderr)
	logger.Debug("🔧 Log level resolved", "level", lvl.Name, "source", lvl.Source)
	return logger
}

func init() {
	defaults := settings.Load()

	rootCmd = &cobra.Command{
		Use:           "reslot",
		Short:         "Move fighter mods between costume slots",
		Long:          `Move fighter mods between costume slots and write the loader config.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaults.LogLevel, "Log level (trace, debug, info, warn, error, json[:level])")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "List the fighters and slots found in a mod",
		RunE:  runScan,
	}
	scanCmd.Flags().StringVar(&scanModDir, "mod-dir", "", "Mod directory (required)")
	scanCmd.Flags().StringVar(&scanFighter, "fighter", "", "List the slots of this fighter")
	if err := scanCmd.MarkFlagRequired("mod-dir"); err != nil {
		panic(err)
	}

	reslotCmd := &cobra.Command{
		Use:   "reslot",
		Short: "Reassign costume slots and write config.json",
		RunE:  runReslot,
	}
	f := reslotCmd.Flags()
	f.StringVar(&opts.ModDir, "mod-dir", "", "Mod directory (required)")
	f.StringVar(&opts.Hashes, "hashes", defaults.Hashes, "Path to the known file hash list")
	f.StringVar(&opts.DirInfo, "dir-info", defaults.DirInfo, "Path to the directory index JSON")
	f.StringVar(&opts.Fighter, "fighter", "", "Fighter name, or \"all\" (required)")
	f.StringArrayVar(&opts.Maps, "map", nil, "Slot map cXX=cYY (repeatable)")
	f.StringArrayVar(&opts.Shares, "share", nil, "Share slot override cXX=cYY keyed by source (repeatable)")
	f.BoolVar(&opts.Clone, "clone", false, "Write into a new directory next to the mod")
	f.BoolVar(&opts.ExcludeBlanks, "exclude-blanks", false, "Skip maps without a target")
	f.BoolVar(&opts.OnlyConfig, "only-config", false, "Only write config.json for the slots already in the mod")
	f.BoolVar(&opts.NewConfig, "new-config", false, "Ignore an existing config.json")
	f.StringVar(&opts.RedirectName, "redirect-name", "", "Rename portraits to this UI name")
	f.IntVar(&opts.RedirectStart, "redirect-start", 0, "First number given to renamed portraits")
	f.IntVar(&opts.PrcxmlColors, "prcxml-colors", 0, "Write ui_chara_db.prcxml with this many colors")
	f.StringVar(&opts.PrcDir, "prc-dir", defaults.PrcDir, "Directory holding ui_chara_db.prcxml and ui_chara_db.txt")
	if err := reslotCmd.MarkFlagRequired("mod-dir"); err != nil {
		panic(err)
	}
	if err := reslotCmd.MarkFlagRequired("fighter"); err != nil {
		panic(err)
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Write the JSON schema of config.json",
		RunE:  runSchema,
	}
	schemaCmd.Flags().StringVarP(&schemaOut, "out", "o", "config.schema.json", "Output path")

	packCmd := &cobra.Command{
		Use:   "pack",
		Short: "Compress or decompress a catalog file (.gz, .bz2 or plain, by extension)",
		RunE:  runPack,
	}
	packCmd.Flags().StringVar(&packIn, "in", "", "Source catalog file (required)")
	packCmd.Flags().StringVar(&packOut, "out", "", "Destination file (required)")
	if err := packCmd.MarkFlagRequired("in"); err != nil {
		panic(err)
	}
	if err := packCmd.MarkFlagRequired("out"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(scanCmd, reslotCmd, schemaCmd, packCmd)
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("reslot %s\n", version)
		fmt.Printf("Built: %s\n", buildTimestamp())
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		os.Exit(rerrors.ExitCode(err))
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	if !scan.IsValidMod(scanModDir) {
		return fmt.Errorf("%w: %s must contain a fighter, sound or ui folder", rerrors.ErrInvalidModDir, scanModDir)
	}
	found, err := scan.Discover(scanModDir, strings.ToLower(scanFighter))
	if err != nil {
		return err
	}

	label := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("%s %s\n", color.GreenString("✔"), scanModDir)
	fmt.Printf("%s %s\n", label("fighters:"), strings.Join(found.Fighters, " "))
	if scanFighter != "" {
		if len(found.Slots) == 0 {
			fmt.Printf("%s %s\n", label("slots:"), color.YellowString("none"))
		} else {
			fmt.Printf("%s %s\n", label("slots:"), strings.Join(found.Slots, " "))
		}
	}
	return nil
}

func runReslot(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	summary, err := runner.Run(opts, logger)
	if err != nil {
		if errors.Is(err, rerrors.ErrSessionLocked) {
			logger.Error("🔒 Another run is using this mod", "dir", opts.ModDir)
		}
		return err
	}

	files := 0
	for _, op := range summary.Operations {
		files += len(op.Result.Reslotted)
	}
	fmt.Printf("%s %d reassignment(s), %d file(s) → %s\n",
		color.GreenString("✔"), len(summary.Operations), files, summary.TargetDir)
	if summary.ConfigPath != "" {
		fmt.Printf("  config: %s\n", summary.ConfigPath)
	}
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	if err := config.WriteSchema(schemaOut); err != nil {
		return err
	}
	fmt.Printf("%s %s\n", color.GreenString("✔"), schemaOut)
	return nil
}

func runPack(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	n, err := codec.Transcode(packIn, packOut)
	if err != nil {
		return fmt.Errorf("%w: %v", rerrors.ErrCatalogUnreadable, err)
	}
	logger.Info("📦 Catalog file written", "in", packIn, "out", packOut, "bytes", n)
	fmt.Printf("%s %s\n", color.GreenString("✔"), packOut)
	return nil
}
