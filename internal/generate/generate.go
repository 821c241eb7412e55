package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/buildergen/internal/config"
	"github.com/roach88/buildergen/internal/ir"
	"github.com/roach88/buildergen/internal/render"
	"github.com/roach88/buildergen/internal/store"
	"github.com/roach88/buildergen/internal/synth"
)

// Generator writes builder companions for source files.
type Generator struct {
	Config *config.Config // nil means config.Default()
	Store  *store.Store   // optional ledger
	IDs    IDGenerator    // nil means UUIDv7Generator
	Logger *slog.Logger   // nil means slog.Default()

	// Force rewrites outputs even when the ledger says they are current.
	Force bool
	// DryRun renders without writing files or recording the run.
	DryRun bool
	// Diagnostics, if set, receives the rendered declarations of every
	// record.
	Diagnostics io.Writer
}

func (g *Generator) config() *config.Config {
	if g.Config == nil {
		return config.Default()
	}
	return g.Config
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// Run processes files in order. Files without selected records are
// ignored. Per-file failures are reported in the Report; the returned error
// is reserved for cancellation and ledger failures.
func (g *Generator) Run(ctx context.Context, files []*ir.SourceFile) (*Report, error) {
	ids := g.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	cfg := g.config()
	log := g.logger()

	report := &Report{RunID: ids.Generate()}
	cfgHash, err := ConfigHash(cfg)
	if err != nil {
		return report, err
	}

	log.Debug("generation started", "run", report.RunID, "files", len(files))

	var artifacts []store.Artifact
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if len(f.Specs) == 0 {
			continue
		}

		fr, art, err := g.file(ctx, cfg, cfgHash, f)
		if err != nil {
			return report, err
		}
		report.Files = append(report.Files, fr)
		if art != nil {
			artifacts = append(artifacts, *art)
		}
	}

	if g.Store != nil && !g.DryRun {
		run := store.Run{
			ID:           report.RunID,
			ToolVersion:  ir.ToolVersion,
			IRVersion:    ir.IRVersion,
			ConfigHash:   cfgHash,
			FileCount:    len(report.Files),
			WrittenCount: report.Count(StatusWritten),
			SkippedCount: report.Count(StatusUnchanged),
			FailedCount:  report.Count(StatusFailed),
		}
		if _, err := g.Store.RecordRun(ctx, run, artifacts); err != nil {
			return report, &LedgerError{Err: err}
		}
	}

	log.Info("generation finished",
		"run", report.RunID,
		"written", report.Count(StatusWritten),
		"unchanged", report.Count(StatusUnchanged),
		"failed", report.Count(StatusFailed))
	return report, nil
}

// file generates one companion. The returned artifact is what the ledger
// should hold for the output, or nil when nothing should be recorded.
func (g *Generator) file(ctx context.Context, cfg *config.Config, cfgHash string, f *ir.SourceFile) (FileReport, *store.Artifact, error) {
	ropts := RenderOptions(cfg, f)
	fr := FileReport{Source: f.Path, Output: render.OutputPath(f.Path, ropts)}
	log := g.logger().With("file", f.Path)

	fail := func(err error) (FileReport, *store.Artifact, error) {
		fr.Status = StatusFailed
		fr.Err = err
		log.Error("generation failed", "error", err)
		return fr, nil, nil
	}

	if filepath.Clean(fr.Output) == filepath.Clean(f.Path) {
		return fail(&WriteError{Path: fr.Output, Err: ErrOutputIsSource})
	}

	descs, err := CompileFile(cfg, f)
	if err != nil {
		return fail(err)
	}

	var (
		records   []*ir.Record
		artifacts []*ir.Artifact
	)
	for _, desc := range descs {
		log.Debug("record compiled", "record", desc.Record.Name, "fields", len(desc.Fields))
		fr.Records = append(fr.Records, desc.Record.Name)
		records = append(records, desc.Record)
		artifacts = append(artifacts, synth.Synthesize(desc, synth.Options{Runtime: ropts.Runtime}))
	}

	if g.Diagnostics != nil {
		for _, a := range artifacts {
			decls, err := render.Decls(a)
			if err != nil {
				return fail(err)
			}
			fmt.Fprintf(g.Diagnostics, "// %s: %s\n%s\n", f.Path, a.Record.Name, decls)
		}
	}

	settings, err := fileSettingsHash(cfgHash, f)
	if err != nil {
		return fail(err)
	}
	fp, err := ir.Fingerprint(f.Package, records, settings)
	if err != nil {
		return fail(err)
	}
	art := &store.Artifact{
		OutputPath:  fr.Output,
		SourcePath:  f.Path,
		Fingerprint: fp,
		Records:     fr.Records,
	}

	if !g.Force && !g.DryRun && g.Store != nil {
		current, err := g.current(ctx, art)
		if err != nil {
			return fr, nil, err
		}
		if current {
			log.Debug("output current", "output", fr.Output)
			fr.Status = StatusUnchanged
			return fr, art, nil
		}
	}

	out, err := render.File(f, artifacts, ropts)
	if err != nil {
		return fail(err)
	}
	art.ContentHash = ir.ContentHash(out)

	if g.DryRun {
		fr.Status = StatusDryRun
		return fr, nil, nil
	}

	if !g.Force {
		if existing, err := os.ReadFile(fr.Output); err == nil && bytes.Equal(existing, out) {
			log.Debug("output identical", "output", fr.Output)
			fr.Status = StatusUnchanged
			return fr, art, nil
		}
	}

	if err := os.WriteFile(fr.Output, out, 0o644); err != nil {
		return fail(&WriteError{Path: fr.Output, Err: err})
	}
	log.Info("wrote builder", "output", fr.Output, "records", len(fr.Records))
	fr.Status = StatusWritten
	return fr, art, nil
}

// current reports whether the ledger already holds art's fingerprint and
// the output on disk still has the recorded content. On success it copies
// the recorded content hash into art.
func (g *Generator) current(ctx context.Context, art *store.Artifact) (bool, error) {
	prev, err := g.Store.LookupArtifact(ctx, art.OutputPath)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, &LedgerError{Err: err}
	}
	if prev.Fingerprint != art.Fingerprint {
		return false, nil
	}

	data, err := os.ReadFile(art.OutputPath)
	if err != nil || ir.ContentHash(data) != prev.ContentHash {
		return false, nil
	}
	art.ContentHash = prev.ContentHash
	return true, nil
}
