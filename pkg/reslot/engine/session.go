// Package engine runs slot reassignments against a vanilla catalog and
// accumulates the resulting loader configuration.
//
// A Session is created once per mod, receives any number of Run calls (one
// per fighter and slot pair) and is closed with Finalize.
package engine

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/reslot/pkg/reslot/catalog"
	"github.com/provide-io/reslot/pkg/reslot/classify"
	"github.com/provide-io/reslot/pkg/reslot/config"
	rerrors "github.com/provide-io/reslot/pkg/reslot/errors"
	"github.com/provide-io/reslot/pkg/reslot/slot"
)

// AssetIndex is the part of the vanilla catalog a session reads.
type AssetIndex interface {
	Known(path string) bool
	Resolve(dirInfo string) (*catalog.DirectoryNode, error)
	FilePath(index int) (string, bool)
}

// FileCopier copies a mod file at rel to newRel under outputRoot.
type FileCopier interface {
	Copy(rel, outputRoot, newRel string) error
}

// Phase is a step of one reassignment.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFilesCopied
	PhaseSlotSynthesized
	PhaseConfigMerged
	PhaseNormalized
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFilesCopied:
		return "files-copied"
	case PhaseSlotSynthesized:
		return "slot-synthesized"
	case PhaseConfigMerged:
		return "config-merged"
	case PhaseNormalized:
		return "normalized"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Options configures a session.
type Options struct {
	Logger hclog.Logger
	Copier FileCopier
}

// Request is one slot reassignment for one fighter.
type Request struct {
	Fighter string
	Source  slot.ID
	Target  slot.ID
	Share   slot.ID
	// OutputRoot receives copies of the rewritten files. Empty means the
	// run only updates the configuration.
	OutputRoot string
}

// Result describes what one Run did.
type Result struct {
	Reslotted []string
	// UIFiles counts rewritten portrait files. They are copied like the
	// others but never declared in the configuration.
	UIFiles int
	Dropped int
	Donor   slot.ID
	Cloned  bool
	Phases  []Phase
}

// Session owns the configuration being built for one mod.
type Session struct {
	index    AssetIndex
	modFiles []string
	produced *config.PathSet
	cfg      *config.Config
	copier   FileCopier
	logger   hclog.Logger
	phase    Phase
	runs     int
}

// NewSession starts a session over modFiles. prior is the configuration of
// an earlier invocation; nil starts from an empty one.
func NewSession(index AssetIndex, modFiles []string, prior *config.Config, opts Options) *Session {
	if prior == nil {
		prior = config.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	produced := config.NewPathSet()
	for _, file := range modFiles {
		if !catalog.IsPlaceholder(file) {
			produced.Add(file)
		}
	}
	return &Session{
		index:    index,
		modFiles: append([]string(nil), modFiles...),
		produced: produced,
		cfg:      prior,
		copier:   opts.Copier,
		logger:   logger.Named("engine"),
		phase:    PhaseIdle,
	}
}

// Phase returns the phase reached by the last operation.
func (s *Session) Phase() Phase {
	return s.phase
}

// Config returns the configuration accumulated so far.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Produced reports whether p is a mod file or was written by an earlier run.
func (s *Session) Produced(p string) bool {
	return s.produced.Contains(p)
}

func (s *Session) enter(res *Result, p Phase) {
	s.phase = p
	res.Phases = append(res.Phases, p)
}

// Run performs one reassignment.
func (s *Session) Run(req Request) (*Result, error) {
	if s.phase == PhaseDone {
		return nil, rerrors.ErrSessionFinalized
	}
	if req.Fighter == "" {
		return nil, fmt.Errorf("%w: fighter is required", rerrors.ErrInvalidMapping)
	}
	s.runs++
	logger := s.logger.With("fighter", req.Fighter, "source", req.Source.String(), "target", req.Target.String())
	logger.Info("🔁 Reslotting", "share", req.Share.String(), "output", req.OutputRoot)

	res := &Result{}
	for _, file := range s.modFiles {
		rw, ok := classify.Reslot(file, req.Fighter, req.Source, req.Target)
		if !ok {
			continue
		}
		if req.OutputRoot != "" && s.copier != nil {
			if err := s.copier.Copy(file, req.OutputRoot, rw.Path); err != nil {
				logger.Warn("⚠️ Copy failed, file dropped", "file", file, "error", err)
				res.Dropped++
				continue
			}
		}
		if rw.Category == classify.CategoryUI {
			res.UIFiles++
			continue
		}
		logger.Trace("📄 Rewrote", "from", file, "to", rw.Path, "category", rw.Category.String())
		res.Reslotted = append(res.Reslotted, rw.Path)
	}
	for _, p := range res.Reslotted {
		s.produced.Add(p)
	}
	s.enter(res, PhaseFilesCopied)
	logger.Debug("📦 Files rewritten", "count", len(res.Reslotted), "ui", res.UIFiles, "dropped", res.Dropped)

	if req.Target.Added() {
		res.Donor = DonorSlot(req.Source, req.Target)
		res.Cloned = true
		share := req.Share.Native()
		logger.Debug("🧬 Cloning donor slot", "donor", res.Donor.String(), "share", share.String())
		if err := s.cloneSlot(classify.FighterDirInfo(req.Fighter), res.Donor, req.Target, share); err != nil {
			return nil, fmt.Errorf("cloning %s into %s for %s: %w", res.Donor, req.Target, req.Fighter, err)
		}
		s.enter(res, PhaseSlotSynthesized)
		s.addMissingFiles(res.Reslotted, req.Fighter, req.Target, true)
	} else {
		res.Donor = req.Source
		s.addMissingFiles(res.Reslotted, req.Fighter, req.Target, false)
	}
	s.cfg.NewDirFiles.MoveToEnd(config.CommonDirInfo(req.Fighter))
	s.enter(res, PhaseConfigMerged)

	logger.Info("✅ Reassignment merged", "files", len(res.Reslotted), "cloned", res.Cloned)
	return res, nil
}

// DonorSlot is the slot cloned for an added target: the source when it is
// native, otherwise the target's native counterpart.
func DonorSlot(source, target slot.ID) slot.ID {
	if !source.Added() {
		return source
	}
	return target.Native()
}

// Finalize normalizes the configuration and closes the session for further
// runs. Calling it again returns the same configuration unchanged.
func (s *Session) Finalize() *config.Config {
	if s.phase != PhaseDone {
		s.cfg.Normalize()
		s.phase = PhaseNormalized
		s.logger.Debug("🧹 Configuration normalized", "runs", s.runs,
			"dir_infos", s.cfg.NewDirInfos.Len(), "dir_files", s.cfg.NewDirFiles.Len())
		s.phase = PhaseDone
	}
	return s.cfg
}
