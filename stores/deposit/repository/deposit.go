package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/domain"
	"github.com/ihrahat0/deposcan/service/query"
)

type depositMongoRepo struct {
	q query.Mongo
}

func NewDepositMongoRepo(q query.Mongo) domain.DepositRepo {
	return &depositMongoRepo{q: q}
}

func (r *depositMongoRepo) Append(ctx bCtx.Ctx, record *domain.DepositRecord) error {
	if err := r.q.Insert(ctx, domain.TableDeposits, record); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		ctx.WithFields(log.Fields{
			"err":    err,
			"txHash": record.TxHash,
		}).Error("failed to append deposit")
		return err
	}
	return nil
}

func (r *depositMongoRepo) ExistsByTxHash(ctx bCtx.Ctx, chainId domain.ChainId, hash domain.TxHash) (bool, error) {
	// hashes arrive already normalized per chain (hex lowered, base58 kept)
	n, err := r.q.Count(ctx, domain.TableDeposits, bson.M{
		"chainId": chainId,
		"txHash":  hash,
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"txHash": hash,
		}).Error("failed to count by tx hash")
		return false, err
	}
	return n > 0, nil
}

func (r *depositMongoRepo) SumDetectedSince(ctx bCtx.Ctx, chainId domain.ChainId, wallet domain.Address, token domain.TokenSymbol, since time.Time) (decimal.Decimal, error) {
	records := []*domain.DepositRecord{}
	qry := bson.M{
		"chainId":         chainId,
		"walletAddress":   wallet,
		"token":           token,
		"detectionMethod": domain.DetectionMethodTransaction,
		"detectedAt":      bson.M{"$gte": since},
	}
	if err := r.q.Search(ctx, domain.TableDeposits, 0, 0, "", qry, &records); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"wallet": wallet,
			"token":  token,
		}).Error("failed to search deposits")
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, record := range records {
		sum = sum.Add(record.AmountDecimal())
	}
	return sum, nil
}

func (r *depositMongoRepo) Search(ctx bCtx.Ctx, chainId domain.ChainId, wallet domain.Address, limit int) ([]*domain.DepositRecord, error) {
	records := []*domain.DepositRecord{}
	qry := bson.M{"chainId": chainId}
	if !wallet.IsEmpty() {
		qry["walletAddress"] = wallet.ToLower()
	}
	if err := r.q.Search(ctx, domain.TableDeposits, 0, limit, "-detectedAt", qry, &records); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"wallet":  wallet,
		}).Error("failed to search deposits")
		return nil, err
	}
	return records, nil
}
