package workers

import (
	"context"
	"time"

	"influmatch_backend/internal/logger"
	"influmatch_backend/internal/services"
)

type RetrainWorker struct {
	matchingService services.MatchingService
	interval        time.Duration
}

func NewRetrainWorker(matchingService services.MatchingService, interval time.Duration) *RetrainWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &RetrainWorker{
		matchingService: matchingService,
		interval:        interval,
	}
}

// Start запускает фоновую перетренировку модели
func (w *RetrainWorker) Start(ctx context.Context) {
	go w.retrainLoop(ctx)
}

// retrainLoop тренирует модель сразу при старте и дальше по тикеру:
// движок должен отвечать на рекомендации без ожидания первого тика.
func (w *RetrainWorker) retrainLoop(ctx context.Context) {
	if err := w.matchingService.Retrain(ctx); err != nil {
		logger.WorkerLog("retrain", "initial train", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("retrain", "stopped", nil)
			return
		case <-ticker.C:
			if err := w.matchingService.Retrain(ctx); err != nil {
				logger.WorkerLog("retrain", "periodic train", err)
				continue
			}
			logger.WorkerLog("retrain", "periodic train", nil)
		}
	}
}
