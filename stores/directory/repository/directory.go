package repository

import (
	"github.com/ethereum/go-ethereum/common"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/xerrors"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/domain"
	"github.com/ihrahat0/deposcan/service/query"
	"github.com/ihrahat0/deposcan/service/solana"
)

// userDoc is the directory's document shape: one wallet address per chain
// name, maintained by the dashboard outside this core.
type userDoc struct {
	UserId  string            `bson:"userId"`
	Email   string            `bson:"email,omitempty"`
	Label   string            `bson:"label,omitempty"`
	Wallets map[string]string `bson:"wallets"`
}

type directoryMongoRepo struct {
	q query.Mongo
}

func NewDirectoryMongoRepo(q query.Mongo) domain.DirectoryRepo {
	return &directoryMongoRepo{q: q}
}

func (r *directoryMongoRepo) GetMonitoredAddresses(ctx bCtx.Ctx, chainId domain.ChainId) ([]*domain.MonitoredAddress, error) {
	chain, ok := domain.ChainById(chainId)
	if !ok {
		return nil, domain.ErrUnsupportedChain
	}

	users := []*userDoc{}
	if err := r.q.Search(ctx, domain.TableUsers, 0, 0, "", bson.M{}, &users); err != nil {
		ctx.WithField("err", err).Error("failed to load user directory")
		return nil, xerrors.Errorf("directory query failed: %w", domain.ErrDirectoryUnavailable)
	}

	res := []*domain.MonitoredAddress{}
	for _, user := range users {
		raw, ok := user.Wallets[chain.Name]
		if !ok || raw == "" {
			continue
		}
		addr, err := normalizeAddress(chain, raw)
		if err != nil {
			// malformed addresses are excluded, never fatal
			ctx.WithFields(log.Fields{
				"userId":  user.UserId,
				"chain":   chain.Name,
				"address": raw,
			}).Warn("invalid address in directory, skipping")
			continue
		}
		res = append(res, &domain.MonitoredAddress{
			ChainId: chainId,
			Address: addr,
			UserId:  user.UserId,
			Label:   user.Label,
		})
	}
	return res, nil
}

func normalizeAddress(chain domain.Chain, raw string) (domain.Address, error) {
	switch chain.Kind {
	case domain.ChainKindAccount:
		if !common.IsHexAddress(raw) {
			return "", domain.ErrInvalidAddress
		}
		// account chains are case-insensitive, normalized to lowercase
		return domain.Address(raw).ToLower(), nil
	case domain.ChainKindSlot:
		if !solana.IsValidAddress(raw) {
			return "", domain.ErrInvalidAddress
		}
		// base58 is case-sensitive, keep the chain-native casing
		return domain.Address(raw), nil
	}
	return "", domain.ErrUnsupportedChain
}
