// Command ramdb-server runs the TCP accept loop, periodic snapshot task,
// and process lifecycle spec.md §6.3 names as external collaborators to the
// core (frame parser, engine, snapshot codec, dispatcher).
package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edirooss/ramdb-server/internal/engine"
	"github.com/edirooss/ramdb-server/internal/server"
	"github.com/edirooss/ramdb-server/internal/snapshot"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	addr := flag.String("addr", ":6379", "TCP address to listen on")
	dbfile := flag.String("dbfile", "dump.myrdb", "snapshot file path")
	save := flag.Duration("save", 5*time.Second, "snapshot interval")
	reap := flag.Duration("reap", time.Second, "active expiration sweep interval")
	debug := flag.Bool("debug", false, "spew-dump every dispatched command")
	flag.Parse()

	log := buildLogger()
	defer log.Sync()
	log = log.Named("main")

	e := engine.New()

	if err := snapshot.Load(e, *dbfile); err != nil {
		// Absence of a prior snapshot is expected on first run, not an
		// error worth aborting startup over (§6.3).
		log.Named("snapshot").Warn("load skipped", zap.String("path", *dbfile), zap.Error(err))
	} else {
		log.Named("snapshot").Info("loaded", zap.String("path", *dbfile))
	}

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatal("listen failed", zap.String("addr", *addr), zap.Error(err))
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal("scheduler creation failed", zap.Error(err))
	}
	snapLog := log.Named("snapshot")
	if _, err := sched.NewJob(
		gocron.DurationJob(*save),
		gocron.NewTask(func() {
			start := time.Now()
			if err := snapshot.Dump(e, *dbfile); err != nil {
				snapLog.Error("dump failed", zap.Error(err))
				return
			}
			snapLog.Info("dumped", zap.String("path", *dbfile), zap.Duration("took", time.Since(start)))
		}),
	); err != nil {
		log.Fatal("snapshot job registration failed", zap.Error(err))
	}

	// Active expiration (SPEC_FULL.md OQ-3): a background job pops due
	// entries off the expiry heap independently of lazy eviction on access.
	expiryLog := log.Named("expiry")
	if _, err := sched.NewJob(
		gocron.DurationJob(*reap),
		gocron.NewTask(func() {
			if n := e.Reap(time.Now()); n > 0 {
				expiryLog.Info("reaped expired keys", zap.Int("count", n))
			}
		}),
	); err != nil {
		log.Fatal("expiry job registration failed", zap.Error(err))
	}
	sched.Start()

	srv := server.New(e, log, *debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx, ln)
	})
	g.Go(func() error {
		<-gctx.Done()
		if err := sched.Shutdown(); err != nil {
			log.Warn("scheduler shutdown error", zap.Error(err))
		}
		if err := snapshot.Dump(e, *dbfile); err != nil {
			snapLog.Error("final dump failed", zap.Error(err))
		}
		return nil
	})

	log.Info("running", zap.String("addr", *addr), zap.String("dbfile", *dbfile), zap.Duration("save", *save))
	if err := g.Wait(); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

// buildLogger mirrors the teacher's zap construction: a colorized
// development config switched to JSON production output via ENV, the same
// switch the teacher makes for CORS.
func buildLogger() *zap.Logger {
	if os.Getenv("ENV") == "production" {
		cfg := zap.NewProductionConfig()
		return zap.Must(cfg.Build())
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	return zap.Must(cfg.Build())
}
