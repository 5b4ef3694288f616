package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/sadopc/deen/internal/clock"
	"github.com/sadopc/deen/internal/config"
	"github.com/sadopc/deen/internal/logging"
	"github.com/sadopc/deen/internal/tasbih"
)

// runtime is everything a ledger command needs, opened from config.
type runtime struct {
	cfg     *config.Config
	store   config.Store
	tracker *tasbih.Tracker
	log     *slog.Logger
	logFile io.Closer
}

func openRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, logFile := logging.Init(cfg.LogFile, verbose)
	st, err := cfg.OpenStore()
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	logger.Debug("store opened", "backend", cfg.Backend, "path", cfg.Path)

	tr, err := tasbih.New(st, clock.System{Location: cfg.Location}, cfg.Counters, logger)
	if err != nil {
		st.Close()
		logFile.Close()
		return nil, err
	}
	return &runtime{cfg: cfg, store: st, tracker: tr, log: logger, logFile: logFile}, nil
}

func (r *runtime) Close() {
	if err := r.store.Close(); err != nil {
		r.log.Error("close store", "err", err)
	}
	r.logFile.Close()
}
