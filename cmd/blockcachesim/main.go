// Command blockcachesim replays a RocksDB block-cache trace through one
// of the simulated replacement policies and writes the result timelines
// to a result directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/rocksdb/blockcachesim/cache"
	pmet "github.com/rocksdb/blockcachesim/metrics/prom"
	"github.com/rocksdb/blockcachesim/report"
	"github.com/rocksdb/blockcachesim/sim"
)

const usage = `Must provide 8 positional arguments.
1) Cache type (ts, ts_hybrid, linucb, linucb_hybrid, arc, lru, opt, gdsize, pylru, pymru, pylfu, pyhb).
2) Cache size (xM, xG, xT, or a bare byte count).
3) The sampling frequency used to collect the trace (the simulation scales down the cache size by this factor).
4) Warmup seconds (the number of seconds used for warmup).
5) Trace file path.
6) Result directory (a directory that saves generated results).
7) Max number of accesses to process (-1 = unbounded).
8) The target column family (the simulation will only run accesses on the target column family; "all" matches every access).
`

func main() {
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics at addr (e.g. :8080); empty = disabled")
	seed := flag.Int64("seed", 1, "seed for the cache's sub-policy/bandit/sampling PRNG")
	progressEvery := flag.Int64("progress-every", 100, "check progress every N records, logging throughput at most once per 10s (0 disables)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}
	flag.Parse()

	if flag.NArg() != 8 {
		flag.Usage()
		os.Exit(1)
	}
	if err := run(flag.Args(), *metricsAddr, *seed, *progressEvery); err != nil {
		log.Printf("blockcachesim: %v", err)
		os.Exit(1)
	}
}

func run(args []string, metricsAddr string, seed, progressEvery int64) error {
	cacheType := args[0]
	cacheSize, err := cache.ParseCacheSize(args[1])
	if err != nil {
		return err
	}
	downsampleSize, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("downsample_size: %w", err)
	}
	warmupSeconds, err := strconv.ParseInt(args[3], 10, 64)
	if err != nil {
		return fmt.Errorf("warmup_seconds: %w", err)
	}
	traceFilePath := args[4]
	resultDir := args[5]
	maxAccesses, err := strconv.ParseInt(args[6], 10, 64)
	if err != nil {
		return fmt.Errorf("max_accesses_to_process: %w", err)
	}
	targetCF := args[7]

	if err := os.MkdirAll(resultDir, 0o755); err != nil {
		return fmt.Errorf("result_dir: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	c, err := cache.Create(cacheType, cacheSize, downsampleSize, rng)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if metricsAddr != "" {
		adapter := pmet.New(nil, "blockcachesim", cacheType, nil)
		if settable, ok := c.(interface{ SetMetrics(cache.Metrics) }); ok {
			settable.SetMetrics(adapter)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: metricsAddr, Handler: mux}
		g.Go(func() error {
			log.Printf("metrics: serving at %s", metricsAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return srv.Close()
		})
	}

	log.Printf("running simulated %s cache on %s", c.CacheName(), traceFilePath)
	s := &sim.Simulator{
		TraceFilePath: traceFilePath,
		Cache:         c,
		WarmupSeconds: warmupSeconds,
		MaxAccesses:   maxAccesses,
		TargetCF:      targetCF,
		ProgressEvery: progressEvery,
	}
	res, err := s.Run()
	if err != nil {
		cancel()
		_ = g.Wait()
		return fmt.Errorf("simulation: %w", err)
	}
	cancel()
	if err := g.Wait(); err != nil {
		return fmt.Errorf("metrics server: %w", err)
	}

	rep := report.NewFileReporter(resultDir)
	cacheSizeLabel := args[1]
	if err := report.WriteAll(
		rep, cacheType, cacheSizeLabel, targetCF,
		c.MissRatioStats(), c.HourlyMissRatioStats(),
		c.PolicyStats(), c.HourlyPolicyStats(),
		res.TraceStartTimeUs, res.TraceEndTimeUs,
	); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	log.Printf("done: overall miss ratio %.2f%% over %d accesses",
		c.MissRatioStats().OverallMissRatio(), c.MissRatioStats().NumAccesses())
	return nil
}
