package endpoint

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/domain"
)

func TestAcquireRotatesToFallback(t *testing.T) {
	req := require.New(t)
	_ctx := ctx.Background()

	probed := []string{}
	pool := NewPool(&PoolCfg{
		Chain:     "eth",
		Primary:   "http://primary",
		Fallbacks: []string{"http://fallback1", "http://fallback2"},
		Probe: func(c ctx.Ctx, url string) error {
			probed = append(probed, url)
			if url == "http://fallback1" {
				return nil
			}
			return errors.New("connection refused")
		},
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	})

	url, err := pool.Acquire(_ctx)
	req.NoError(err)
	req.Equal("http://fallback1", url)
	req.Equal([]string{"http://primary", "http://fallback1"}, probed)
	req.True(pool.Healthy())

	// pointer stays on the live endpoint for the next acquire
	url, err = pool.Acquire(_ctx)
	req.NoError(err)
	req.Equal("http://fallback1", url)
}

func TestAcquireExhaustsAllEndpoints(t *testing.T) {
	req := require.New(t)
	_ctx := ctx.Background()

	probes := 0
	pool := NewPool(&PoolCfg{
		Chain:     "bsc",
		Primary:   "http://primary",
		Fallbacks: []string{"http://fallback"},
		Probe: func(c ctx.Ctx, url string) error {
			probes++
			return errors.New("timeout")
		},
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})

	_, err := pool.Acquire(_ctx)
	req.ErrorIs(err, domain.ErrEndpointExhausted)
	req.Equal(6, probes)
	req.False(pool.Healthy())
}

func TestAcquireResetsFailureCountOnSuccess(t *testing.T) {
	req := require.New(t)
	_ctx := ctx.Background()

	healthy := false
	pool := NewPool(&PoolCfg{
		Chain:   "eth",
		Primary: "http://primary",
		Probe: func(c ctx.Ctx, url string) error {
			if healthy {
				return nil
			}
			return errors.New("down")
		},
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	})

	_, err := pool.Acquire(_ctx)
	req.ErrorIs(err, domain.ErrEndpointExhausted)
	req.False(pool.Healthy())

	healthy = true
	url, err := pool.Acquire(_ctx)
	req.NoError(err)
	req.Equal("http://primary", url)
	req.True(pool.Healthy())
}
