// Package runner drives a complete reslot invocation over a mod directory:
// fighter selection, slot maps, output directory handling, post-processing
// hooks and writing config.json.
package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/reslot/internal/workspace"
	"github.com/provide-io/reslot/pkg/reslot/catalog"
	"github.com/provide-io/reslot/pkg/reslot/config"
	"github.com/provide-io/reslot/pkg/reslot/engine"
	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
	"github.com/provide-io/reslot/pkg/reslot/fighters"
	"github.com/provide-io/reslot/pkg/reslot/scan"
	"github.com/provide-io/reslot/pkg/reslot/slot"
	"github.com/provide-io/reslot/pkg/reslot/ui"
)

// ConfigFileName is the loader configuration written to the output.
const ConfigFileName = "config.json"

// Options are the inputs of one invocation.
type Options struct {
	ModDir  string
	Hashes  string
	DirInfo string
	// Catalog, when set, is used instead of loading Hashes and DirInfo.
	Catalog engine.AssetIndex

	Fighter string
	Maps    []string
	Shares  []string

	Clone         bool
	ExcludeBlanks bool
	OnlyConfig    bool
	NewConfig     bool

	RedirectName  string
	RedirectStart int
	PrcxmlColors  int
	PrcDir        string
}

// Mode is the output mode implied by the options.
func (o *Options) Mode() workspace.Mode {
	switch {
	case o.OnlyConfig:
		return workspace.ModeInPlace
	case o.Clone:
		return workspace.ModeClone
	default:
		return workspace.ModeReplace
	}
}

// Operation is one completed reassignment.
type Operation struct {
	Fighter string
	Source  slot.ID
	Target  slot.ID
	Share   slot.ID
	Result  *engine.Result
}

// Summary reports what an invocation did.
type Summary struct {
	TargetDir  string
	Mode       workspace.Mode
	Fighters   []string
	Operations []Operation
	ConfigPath string
	Extras     []string
	CharaDB    string
	Renames    []ui.Rename
}

// Run executes one invocation. Input and mapping problems are reported
// before anything is written.
func Run(opts Options, logger hclog.Logger) (summary *Summary, err error) {
	logger = logger.Named("runner")

	modDir, err := filepath.Abs(opts.ModDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rerrors.ErrInvalidModDir, err)
	}
	if !scan.IsValidMod(modDir) {
		return nil, fmt.Errorf("%w: %s must contain a fighter, sound or ui folder", rerrors.ErrInvalidModDir, modDir)
	}

	pairs, err := slot.ParsePairs(opts.Maps)
	if err != nil {
		return nil, err
	}
	shares, err := slot.ParseShares(opts.Shares)
	if err != nil {
		return nil, err
	}
	if !opts.OnlyConfig {
		if len(pairs) == 0 {
			return nil, fmt.Errorf("%w: no maps given, use --map c00=c10 or --only-config", rerrors.ErrInvalidMapping)
		}
		for _, p := range pairs {
			if p.Blank && !opts.ExcludeBlanks {
				return nil, fmt.Errorf("%w: %s has no target, use --exclude-blanks to skip it", rerrors.ErrInvalidMapping, p.Source)
			}
		}
	}

	fighter := strings.ToLower(strings.TrimSpace(opts.Fighter))
	if fighter == "" {
		return nil, fmt.Errorf("%w: fighter is required", rerrors.ErrInvalidMapping)
	}

	lock, err := workspace.Acquire(modDir, logger)
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	index := opts.Catalog
	if index == nil {
		index, err = catalog.Open(opts.Hashes, opts.DirInfo, logger)
		if err != nil {
			return nil, err
		}
	}

	names, err := selectFighters(modDir, fighter)
	if err != nil {
		return nil, err
	}
	modFiles, err := scan.ListModFiles(modDir)
	if err != nil {
		return nil, err
	}
	prior := loadPrior(modDir, opts, logger)

	mode := opts.Mode()
	targetDir := workspace.TargetDir(modDir, mode, opts.Maps)
	summary = &Summary{TargetDir: targetDir, Mode: mode, Fighters: names}
	logger.Info("🎯 Output", "mode", mode.String(), "dir", targetDir, "fighters", strings.Join(names, ","))

	// cleanup removes the replace-mode scratch copy on failure. It is disarmed
	// before the swap starts: from then on the scratch copy may be the only
	// complete copy of the mod.
	cleanup := false
	if mode != workspace.ModeInPlace {
		if err := workspace.CheckDiskSpace(filepath.Dir(targetDir), workspace.FilesSize(modDir, modFiles), logger); err != nil {
			return nil, err
		}
		if mode == workspace.ModeReplace {
			if _, err := os.Stat(targetDir); err == nil {
				return nil, fmt.Errorf("%w: %s is left from an earlier run, restore or remove it first", rerrors.ErrInvalidModDir, targetDir)
			}
		}
		if err := workspace.Prepare(targetDir); err != nil {
			return nil, err
		}
		if mode == workspace.ModeReplace {
			tempDir := targetDir
			cleanup = true
			defer func() {
				if err != nil && cleanup {
					logger.Debug("🧹 Removing scratch output", "dir", tempDir)
					os.RemoveAll(tempDir)
				}
			}()
		}
	}

	session := engine.NewSession(index, modFiles, prior, engine.Options{
		Logger: logger,
		Copier: &workspace.Copier{ModDir: modDir, Logger: logger.Named("copy")},
	})

	for _, name := range names {
		work := pairs
		if opts.OnlyConfig && len(work) == 0 {
			work = identityPairs(modDir, name, logger)
		}
		for _, p := range work {
			if p.Blank && !opts.OnlyConfig {
				logger.Debug("⏭️  Skipping blank target", "fighter", name, "source", p.Source.String())
				continue
			}
			req := engine.Request{Fighter: name, Source: p.Source, Target: p.Target}
			if opts.OnlyConfig {
				req.Target = p.Source
			} else {
				req.OutputRoot = targetDir
			}
			req.Share = ShareFor(name, req.Source, req.Target, shares)

			res, err := session.Run(req)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", name, p.Source, err)
			}
			summary.Operations = append(summary.Operations, Operation{
				Fighter: name, Source: req.Source, Target: req.Target, Share: req.Share, Result: res,
			})
		}
	}

	if len(summary.Operations) == 0 {
		logger.Warn("⚠️ No operations performed")
		if mode == workspace.ModeReplace {
			cleanup = false
			os.RemoveAll(targetDir)
		}
		summary.TargetDir = modDir
		return summary, nil
	}

	cfg := session.Finalize()

	if !opts.OnlyConfig {
		summary.Extras, err = workspace.CopyExtras(modDir, targetDir)
		if err != nil {
			return nil, err
		}
	}

	if opts.PrcxmlColors > 0 && fighter != fighters.All {
		out, err := ui.PatchCharaDB(opts.PrcDir, targetDir, fighter, opts.PrcxmlColors)
		if err != nil {
			logger.Warn("⚠️ Character database not written", "error", err)
		} else {
			summary.CharaDB = out
			logger.Info("📝 Character database written", "path", out, "colors", opts.PrcxmlColors)
		}
	}

	if opts.RedirectName != "" && fighter != fighters.All && !opts.OnlyConfig {
		renames, err := ui.RedirectNames(targetDir, fighter, opts.RedirectName, opts.RedirectStart)
		summary.Renames = renames
		if err != nil {
			logger.Warn("⚠️ Portrait redirect incomplete", "renamed", len(renames), "error", err)
		} else {
			logger.Info("🖼️ Portraits redirected", "name", opts.RedirectName, "renamed", len(renames))
		}
	}

	summary.ConfigPath = filepath.Join(targetDir, ConfigFileName)
	if err = saveConfig(cfg, summary.ConfigPath); err != nil {
		return nil, err
	}

	if mode == workspace.ModeReplace {
		cleanup = false
		if err = swapDirs(targetDir, modDir, logger, workspace.LockFileName); err != nil {
			logger.Error("❌ Replacing the mod failed, output kept", "output", targetDir, "mod", modDir, "error", err)
			return nil, fmt.Errorf("%w (output kept in %s)", err, targetDir)
		}
		summary.rebase(targetDir, modDir)
		targetDir = modDir
	}

	logger.Info("✅ Completed", "dir", targetDir, "operations", len(summary.Operations))
	return summary, nil
}

// Replaceable in tests.
var (
	saveConfig = func(cfg *config.Config, path string) error { return cfg.Save(path) }
	swapDirs   = workspace.Swap
)

// rebase points the output paths of s at to instead of the scratch dir from.
func (s *Summary) rebase(from, to string) {
	move := func(p string) string {
		if p == "" {
			return p
		}
		rel, err := filepath.Rel(from, p)
		if err != nil || strings.HasPrefix(rel, "..") {
			return p
		}
		return filepath.Join(to, rel)
	}
	s.TargetDir = to
	s.ConfigPath = move(s.ConfigPath)
	s.CharaDB = move(s.CharaDB)
	for i := range s.Renames {
		s.Renames[i].From = move(s.Renames[i].From)
		s.Renames[i].To = move(s.Renames[i].To)
	}
}

// selectFighters expands fighter into the fighters to process. "all" means
// every fighter found in the mod, sorted.
func selectFighters(modDir, fighter string) ([]string, error) {
	if fighter != fighters.All {
		return fighters.Expand(fighter), nil
	}
	d, err := scan.Discover(modDir, "")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, f := range d.Fighters {
		if f != fighters.All {
			names = append(names, f)
		}
	}
	sort.Strings(names)
	return names, nil
}

// identityPairs maps every slot found for fighter onto itself.
func identityPairs(modDir, fighter string, logger hclog.Logger) []slot.Pair {
	d, err := scan.Discover(modDir, fighter)
	if err != nil {
		logger.Warn("⚠️ Slot discovery failed", "fighter", fighter, "error", err)
		return nil
	}
	found := map[slot.ID]struct{}{}
	var ids []slot.ID
	for _, name := range d.Slots {
		id, err := slot.Parse(name)
		if err != nil {
			logger.Debug("⏭️  Ignoring folder that is not a slot", "fighter", fighter, "name", name)
			continue
		}
		if _, dup := found[id]; dup {
			continue
		}
		found[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	pairs := make([]slot.Pair, 0, len(ids))
	for _, id := range ids {
		pairs = append(pairs, slot.Pair{Source: id, Target: id})
	}
	return pairs
}

// ShareFor picks the share slot of a reassignment: an explicit share for
// the source, else the fighter's assumed share slot for added targets, else
// the first slot.
func ShareFor(fighter string, source, target slot.ID, shares map[slot.ID]slot.ID) slot.ID {
	if s, ok := shares[source]; ok {
		return s
	}
	if target.Added() {
		return slot.ID(fighters.AssumedShareSlot(fighter, int(source.Native())))
	}
	return 0
}

// loadPrior returns the existing config.json of modDir unless the run
// starts fresh. An unreadable file is logged and replaced.
func loadPrior(modDir string, opts Options, logger hclog.Logger) *config.Config {
	if opts.NewConfig || opts.OnlyConfig {
		return config.New()
	}
	path := filepath.Join(modDir, ConfigFileName)
	cfg, err := config.Load(path)
	switch {
	case err == nil:
		logger.Debug("📖 Merging with existing config", "path", path)
		return cfg
	case errors.Is(err, fs.ErrNotExist):
		return config.New()
	default:
		logger.Warn("⚠️ Failed to load existing config.json, starting fresh", "error", err)
		return config.New()
	}
}
