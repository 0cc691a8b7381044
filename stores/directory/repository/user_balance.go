package repository

import (
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/database/mongoclient"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/domain"
	"github.com/ihrahat0/deposcan/service/query"
)

type userBalanceMongoRepo struct {
	q query.Mongo
}

func NewUserBalanceMongoRepo(q query.Mongo) domain.UserBalanceRepo {
	return &userBalanceMongoRepo{q: q}
}

func (r *userBalanceMongoRepo) Get(ctx bCtx.Ctx, id *domain.UserBalanceId) (*domain.UserBalance, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithField("err", err).Error("failed to make bson.M")
		return nil, err
	}

	balance := &domain.UserBalance{}
	if err := r.q.FindOne(ctx, domain.TableUserBalances, qry, balance); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to FindOne")
		return nil, err
	}
	return balance, nil
}

func (r *userBalanceMongoRepo) Add(ctx bCtx.Ctx, id *domain.UserBalanceId, delta decimal.Decimal) error {
	current, err := r.Get(ctx, id)
	if err == domain.ErrNotFound {
		return r.Set(ctx, id, delta)
	} else if err != nil {
		return err
	}
	return r.Set(ctx, id, current.BalanceDecimal().Add(delta))
}

func (r *userBalanceMongoRepo) Set(ctx bCtx.Ctx, id *domain.UserBalanceId, balance decimal.Decimal) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithField("err", err).Error("failed to make bson.M")
		return err
	}
	doc := &domain.UserBalance{
		UserId:    id.UserId,
		ChainId:   id.ChainId,
		Token:     id.Token,
		Balance:   balance.String(),
		UpdatedAt: time.Now().Unix(),
	}
	if err := r.q.Upsert(ctx, domain.TableUserBalances, selector, doc); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to upsert balance")
		return err
	}
	return nil
}
