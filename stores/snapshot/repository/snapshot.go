package repository

import (
	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/database/mongoclient"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/domain"
	"github.com/ihrahat0/deposcan/service/query"
)

type balanceSnapshotRepo struct {
	q query.Mongo
}

func NewBalanceSnapshotRepo(q query.Mongo) domain.BalanceSnapshotRepo {
	return &balanceSnapshotRepo{q: q}
}

func (r *balanceSnapshotRepo) Get(ctx bCtx.Ctx, id *domain.BalanceSnapshotId) (*domain.BalanceSnapshot, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to make bson.M")
		return nil, err
	}

	snapshot := &domain.BalanceSnapshot{}
	if err := r.q.FindOne(ctx, domain.TableBalanceSnapshots, qry, snapshot); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  qry,
		}).Error("failed to FindOne")
		return nil, err
	}
	return snapshot, nil
}

func (r *balanceSnapshotRepo) Upsert(ctx bCtx.Ctx, snapshot *domain.BalanceSnapshot) error {
	selector, err := mongoclient.MakeBsonM(snapshot.ToId())
	if err != nil {
		ctx.WithField("err", err).Error("failed to make bson.M")
		return err
	}
	if err := r.q.Upsert(ctx, domain.TableBalanceSnapshots, selector, snapshot); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  snapshot.ToId(),
		}).Error("failed to upsert")
		return err
	}
	return nil
}
