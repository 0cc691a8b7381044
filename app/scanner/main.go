package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/database/mongoclient"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/base/scanner"
	bValidator "github.com/ihrahat0/deposcan/base/validator"
	"github.com/ihrahat0/deposcan/domain"
	mmiddleware "github.com/ihrahat0/deposcan/middleware"
	"github.com/ihrahat0/deposcan/service/chain"
	"github.com/ihrahat0/deposcan/service/endpoint"
	"github.com/ihrahat0/deposcan/service/query"
	"github.com/ihrahat0/deposcan/service/solana"
	cursorRepo "github.com/ihrahat0/deposcan/stores/cursor/repository/mongo"
	cursorUseCase "github.com/ihrahat0/deposcan/stores/cursor/usecase"
	depositHttp "github.com/ihrahat0/deposcan/stores/deposit/delivery/http"
	depositRepo "github.com/ihrahat0/deposcan/stores/deposit/repository"
	depositUseCase "github.com/ihrahat0/deposcan/stores/deposit/usecase"
	directoryRepo "github.com/ihrahat0/deposcan/stores/directory/repository"
	directoryUseCase "github.com/ihrahat0/deposcan/stores/directory/usecase"
	scanrunHttp "github.com/ihrahat0/deposcan/stores/scanrun/delivery/http"
	scanrunRepo "github.com/ihrahat0/deposcan/stores/scanrun/repository"
	scanrunUseCase "github.com/ihrahat0/deposcan/stores/scanrun/usecase"
	snapshotRepo "github.com/ihrahat0/deposcan/stores/snapshot/repository"
	snapshotUseCase "github.com/ihrahat0/deposcan/stores/snapshot/usecase"

	"github.com/shopspring/decimal"
)

var (
	flagChains = pflag.String("chains", "all", "comma-separated chains to scan (eth, bsc, sol or all)")
	flagOnce   = pflag.Bool("once", false, "run a single batch pass and exit")
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/scanner/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	pflag.Parse()
	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	defer cancel()

	// reject unknown chain names before touching anything else
	chains, err := domain.ParseChainList(*flagChains)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"chains": *flagChains,
		}).Error("invalid chain list")
		os.Exit(1)
	}

	ctxTimeout := viper.GetDuration("context.timeout")
	probeTimeout := viper.GetDuration("endpoint.probeTimeout")
	epsilon := mustDecimal(viper.GetString("scan.epsilon"))
	dustMin := mustDecimal(viper.GetString("scan.dustMin"))

	names := make([]string, 0, len(chains))
	for _, c := range chains {
		names = append(names, c.Name)
	}
	ctx.WithFields(log.Fields{
		"chains": strings.Join(names, ","),
		"once":   *flagOnce,
	}).Info("config")

	ctx.Info("init mongo")
	q := initMongo()

	// repos
	cursors := cursorRepo.NewChainCursorMongoRepo(q)
	snapshots := snapshotRepo.NewBalanceSnapshotRepo(q)
	deposits := depositRepo.NewDepositMongoRepo(q)
	balances := directoryRepo.NewUserBalanceMongoRepo(q)
	directory := directoryRepo.NewDirectoryMongoRepo(q)
	scanRuns := scanrunRepo.NewScanRunMongoRepo(q)
	artifact := scanrunRepo.NewScanArtifactFileRepo(viper.GetString("scan.artifactPath"))

	// usecases
	cursorUC := cursorUseCase.NewChainCursorUseCase(cursors, ctxTimeout)
	snapshotUC := snapshotUseCase.NewBalanceSnapshotUseCase(snapshots, ctxTimeout)
	directoryUC := directoryUseCase.NewDirectoryUseCase(directory, ctxTimeout)
	scanRunUC := scanrunUseCase.NewScanRunUseCase(scanRuns, artifact, ctxTimeout)
	depositQueryUC := depositUseCase.NewDepositQueryUseCase(deposits, ctxTimeout)
	ledgerUC := depositUseCase.NewLedgerUseCase(&depositUseCase.LedgerCfg{
		Mongo:        q,
		DepositRepo:  deposits,
		BalanceRepo:  balances,
		SnapshotRepo: snapshots,
		NoiseEpsilon: epsilon,
	})

	// previous pass, if any, survives restarts through the artifact
	if last, err := scanRunUC.GetLatest(ctx); err == nil {
		ctx.WithFields(log.Fields{
			"scanId":   last.ScanId,
			"status":   last.Status,
			"deposits": last.DepositsFound,
		}).Info("previous scan run")
	}

	passes := map[domain.ChainId][]scanner.ChainScanner{}
	realtime := []scanner.ChainScanner{}
	for _, c := range chains {
		network := viper.Sub(fmt.Sprintf("networks.%s", c.Name))
		if network == nil {
			ctx.WithField("chain", c.Name).Panic("missing network config")
		}
		pool := endpoint.NewPool(&endpoint.PoolCfg{
			Chain:      c.Name,
			Primary:    network.GetString("rpcUrl"),
			Fallbacks:  network.GetStringSlice("fallbackRpcUrls"),
			Probe:      probeFor(c, probeTimeout),
			MaxRetries: viper.GetInt("endpoint.maxRetries"),
			RetryDelay: viper.GetDuration("endpoint.retryDelay"),
		})

		var txScanner scanner.ChainScanner
		engineCfg := &scanner.SnapshotEngineCfg{
			Chain:     c,
			Directory: directoryUC,
			Snapshots: snapshotUC,
			Ledger:    ledgerUC,
			Epsilon:   epsilon,
			BatchSize: viper.GetInt("scan.batchSize"),
			Workers:   viper.GetInt("scan.workers"),
		}

		if c.Kind == domain.ChainKindAccount {
			client := chain.NewClient(ctx, &chain.ClientCfg{ChainId: c.ChainId, Pool: pool})
			txScanner = scanner.NewBlockScanner(&scanner.BlockScannerCfg{
				Chain:            c,
				Client:           client,
				Directory:        directoryUC,
				Cursor:           cursorUC,
				Ledger:           ledgerUC,
				DustMin:          dustMin,
				MaxBlocksPerPass: network.GetUint64("maxBlocksPerPass"),
			})
			engineCfg.Account = client
			engineCfg.Tokens = tokenAllowList(ctx, c)
		} else {
			client := solana.NewClient(ctx, &solana.ClientCfg{
				Pool:              pool,
				DecimalsCacheSize: viper.GetInt("solana.decimalsCacheSizeMB"),
			})
			txScanner = scanner.NewSlotScanner(&scanner.SlotScannerCfg{
				Chain:          c,
				Client:         client,
				Directory:      directoryUC,
				Ledger:         ledgerUC,
				SignatureLimit: viper.GetInt("solana.signatureLimit"),
				DustMin:        dustMin,
			})
			engineCfg.Solana = client
		}

		passes[c.ChainId] = []scanner.ChainScanner{txScanner, scanner.NewSnapshotEngine(engineCfg)}
		realtime = append(realtime, txScanner)
	}

	orchestrator := scanner.NewOrchestrator(&scanner.OrchestratorCfg{
		Scanners: passes,
		ScanRuns: scanRunUC,
	})

	if *flagOnce {
		os.Exit(runOnce(ctx, orchestrator, scanRunUC, chains))
	}

	monitor := scanner.NewMonitor(&scanner.MonitorCfg{
		Scanners: realtime,
		Interval: viper.GetDuration("monitor.interval"),
	})
	monitor.Start(ctx)

	schedule := viper.GetString("scan.schedule")
	cr := cron.New()
	if _, err := cr.AddFunc(schedule, func() {
		if _, err := orchestrator.Trigger(ctx, chains); err == domain.ErrScanInProgress {
			ctx.Warn("scheduled pass skipped, previous pass still running")
		} else if err != nil {
			ctx.WithField("err", err).Error("failed to trigger scheduled pass")
		}
	}); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"schedule": schedule,
		}).Panic("invalid scan schedule")
	}
	cr.Start()

	startEchoServer(scanRunUC, orchestrator, depositQueryUC)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	ctx.Info("shutting down")
	cr.Stop()
	monitor.Stop()
	cancel()
}

// runOnce triggers one pass and polls it to completion.
func runOnce(ctx bCtx.Ctx, orchestrator *scanner.Orchestrator, scanRuns domain.ScanRunUseCase, chains []domain.Chain) int {
	run, err := orchestrator.Trigger(ctx, chains)
	if err != nil {
		ctx.WithField("err", err).Error("failed to trigger pass")
		return 1
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.C {
		cur, err := scanRuns.Get(ctx, run.ScanId)
		if err != nil {
			continue
		}
		if cur.Status == domain.ScanStatusRunning {
			continue
		}
		ctx.WithFields(log.Fields{
			"scanId":   cur.ScanId,
			"status":   cur.Status,
			"deposits": cur.DepositsFound,
			"skipped":  cur.SkippedUnits,
		}).Info("pass finished")
		if cur.Status == domain.ScanStatusFailed {
			return 1
		}
		return 0
	}
	return 1
}

func probeFor(c domain.Chain, timeout time.Duration) endpoint.Probe {
	if c.Kind == domain.ChainKindSlot {
		return solana.SlotProbe(timeout)
	}
	return chain.HeightProbe(timeout)
}

// tokenAllowList reads the chain's monitored erc20 contracts from config.
func tokenAllowList(ctx bCtx.Ctx, c domain.Chain) []scanner.TokenConfig {
	var raw []struct {
		Symbol   string `mapstructure:"symbol"`
		Contract string `mapstructure:"contract"`
		Decimals int32  `mapstructure:"decimals"`
	}
	if err := viper.UnmarshalKey(fmt.Sprintf("tokens.%s", c.Name), &raw); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"chain": c.Name,
		}).Panic("invalid token allow-list")
	}

	tokens := make([]scanner.TokenConfig, 0, len(raw))
	for _, t := range raw {
		tokens = append(tokens, scanner.TokenConfig{
			Symbol:   domain.ToTokenSymbol(t.Symbol),
			Contract: domain.Address(t.Contract).ToLower(),
			Decimals: t.Decimals,
		})
	}
	return tokens
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func startEchoServer(scanRuns domain.ScanRunUseCase, orchestrator domain.ScanOrchestratorUseCase, deposits domain.DepositQueryUseCase) {
	context := bCtx.Background()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	scanrunHttp.New(e, scanRuns, orchestrator)
	depositHttp.New(e, deposits)

	address := viper.GetString("server.address")
	context.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			context.Error("shutting down the server")
		}
	}()
}

func initMongo() query.Mongo {
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	return query.New(mongoClient, checkIndex)
}
