package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/domain"
	"github.com/ihrahat0/deposcan/service/query"
)

type scanRunMongoRepo struct {
	q query.Mongo
}

func NewScanRunMongoRepo(q query.Mongo) domain.ScanRunRepo {
	return &scanRunMongoRepo{q: q}
}

func (r *scanRunMongoRepo) Store(ctx bCtx.Ctx, run *domain.ScanRun) error {
	if err := r.q.Insert(ctx, domain.TableScanRuns, run); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"scanId": run.ScanId,
		}).Error("failed to store scan run")
		return err
	}
	return nil
}

func (r *scanRunMongoRepo) Update(ctx bCtx.Ctx, run *domain.ScanRun) error {
	selector := bson.M{"scanId": run.ScanId}
	if err := r.q.Patch(ctx, domain.TableScanRuns, selector, run); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"scanId": run.ScanId,
		}).Error("failed to update scan run")
		return err
	}
	return nil
}

func (r *scanRunMongoRepo) GetLatest(ctx bCtx.Ctx) (*domain.ScanRun, error) {
	runs := []*domain.ScanRun{}
	if err := r.q.Search(ctx, domain.TableScanRuns, 0, 1, "-startedAt", bson.M{}, &runs); err != nil {
		ctx.WithField("err", err).Error("failed to search scan runs")
		return nil, err
	}
	if len(runs) == 0 {
		return nil, domain.ErrNotFound
	}
	return runs[0], nil
}

func (r *scanRunMongoRepo) Get(ctx bCtx.Ctx, scanId string) (*domain.ScanRun, error) {
	run := &domain.ScanRun{}
	if err := r.q.FindOne(ctx, domain.TableScanRuns, bson.M{"scanId": scanId}, run); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"scanId": scanId,
		}).Error("failed to FindOne")
		return nil, err
	}
	return run, nil
}
