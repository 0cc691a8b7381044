package mongo

import (
	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/database/mongoclient"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/domain"
	"github.com/ihrahat0/deposcan/service/query"
)

type chainCursorMongoRepo struct {
	m query.Mongo
}

func NewChainCursorMongoRepo(mCon query.Mongo) domain.ChainCursorRepo {
	return &chainCursorMongoRepo{m: mCon}
}

func (r *chainCursorMongoRepo) Get(ctx bCtx.Ctx, id *domain.ChainCursorId) (*domain.ChainCursor, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to make bson.M")
		return nil, err
	}

	cursor := &domain.ChainCursor{}
	if err := r.m.FindOne(ctx, domain.TableChainCursors, qry, cursor); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  qry,
		}).Error("failed to FindOne")
		return nil, err
	}
	return cursor, nil
}

func (r *chainCursorMongoRepo) Update(ctx bCtx.Ctx, cursor *domain.ChainCursor) error {
	selector, err := mongoclient.MakeBsonM(cursor.ToId())
	if err != nil {
		ctx.WithField("err", err).Error("failed to make bson.M")
		return err
	}
	if err := r.m.Patch(ctx, domain.TableChainCursors, selector, cursor); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  cursor.ToId(),
		}).Error("failed to update")
		return err
	}
	return nil
}

func (r *chainCursorMongoRepo) Store(ctx bCtx.Ctx, cursor *domain.ChainCursor) error {
	if err := r.m.Insert(ctx, domain.TableChainCursors, cursor); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  cursor.ToId(),
		}).Error("failed to store")
		return err
	}
	return nil
}
