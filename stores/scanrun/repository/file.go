package repository

import (
	"encoding/json"
	"os"
	"path/filepath"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/domain"
)

// scanArtifactFileRepo mirrors the last completed run into a local JSON
// file so operators can inspect results without a mongo client and the
// process can report the previous pass right after a restart.
type scanArtifactFileRepo struct {
	path string
}

func NewScanArtifactFileRepo(path string) domain.ScanArtifactRepo {
	return &scanArtifactFileRepo{path: path}
}

func (r *scanArtifactFileRepo) Write(ctx bCtx.Ctx, run *domain.ScanRun) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		ctx.WithField("err", err).Error("failed to marshal scan artifact")
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		ctx.WithField("err", err).Error("failed to create artifact dir")
		return err
	}

	// write-then-rename keeps readers from seeing a half-written artifact
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		ctx.WithField("err", err).Error("failed to write scan artifact")
		return err
	}
	if err := os.Rename(tmp, r.path); err != nil {
		ctx.WithField("err", err).Error("failed to move scan artifact")
		return err
	}
	return nil
}

func (r *scanArtifactFileRepo) Read(ctx bCtx.Ctx) (*domain.ScanRun, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"path": r.path,
		}).Error("failed to read scan artifact")
		return nil, err
	}

	run := &domain.ScanRun{}
	if err := json.Unmarshal(data, run); err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"path": r.path,
		}).Error("failed to unmarshal scan artifact")
		return nil, err
	}
	return run, nil
}
