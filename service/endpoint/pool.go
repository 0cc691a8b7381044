package endpoint

import (
	"sync"
	"time"

	"golang.org/x/xerrors"

	"github.com/ihrahat0/deposcan/base/backoff"
	"github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/base/metrics"
	"github.com/ihrahat0/deposcan/domain"
)

var metOnce sync.Once
var met metrics.Service

// Probe validates that the endpoint behind url is alive, typically by asking
// for the current chain height.
type Probe func(c ctx.Ctx, url string) error

type PoolCfg struct {
	Chain      string
	Primary    string
	Fallbacks  []string
	Probe      Probe
	MaxRetries int
	RetryDelay time.Duration
}

// Pool owns the ordered rpc endpoint list of one chain and its failover
// rotation. Acquire returns a probed, live endpoint url or reports the chain
// unhealthy so the caller can skip it for the pass.
type Pool struct {
	chain      string
	urls       []string
	probe      Probe
	maxRetries int
	retryDelay time.Duration

	mu       sync.Mutex
	idx      int
	failures int
}

func NewPool(cfg *PoolCfg) *Pool {
	metOnce.Do(func() {
		met = metrics.New("endpoint")
	})
	urls := append([]string{cfg.Primary}, cfg.Fallbacks...)
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Pool{
		chain:      cfg.Chain,
		urls:       urls,
		probe:      cfg.Probe,
		maxRetries: maxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

func (p *Pool) Chain() string {
	return p.chain
}

// Acquire probes the current endpoint and rotates to the next one on
// failure. The rotation pointer and consecutive failure count are pool-wide
// and reset on any successful probe. After maxRetries full rotations it
// fails with ErrEndpointExhausted.
func (p *Pool) Acquire(c ctx.Ctx) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	bo := backoff.NewExponential(p.retryDelay, p.retryDelay*8)
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			if err := bo.Backoff(c); err != nil {
				return "", err
			}
		}
		for range p.urls {
			url := p.urls[p.idx]
			if err := p.probe(c, url); err != nil {
				c.WithFields(log.Fields{
					"err":   err,
					"chain": p.chain,
					"url":   url,
				}).Warn("endpoint probe failed, rotating")
				met.BumpSum("failover", 1, "chain", p.chain)
				p.idx = (p.idx + 1) % len(p.urls)
				p.failures++
				continue
			}
			p.failures = 0
			return url, nil
		}
	}
	met.BumpSum("exhausted", 1, "chain", p.chain)
	return "", xerrors.Errorf("chain %s: %w", p.chain, domain.ErrEndpointExhausted)
}

// Healthy reports whether the last rotation found a live endpoint.
func (p *Pool) Healthy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failures < len(p.urls)
}
