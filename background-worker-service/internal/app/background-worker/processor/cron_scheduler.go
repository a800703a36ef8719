package processor

import (
	"context"

	"vibegadget/background-worker-service/internal/app/background-worker/service"
	"vibegadget/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronScheduler периодически передобрабатывает dead-letter задачи
type CronScheduler struct {
	cron        *cron.Cron
	dispatchSvc service.DispatchServiceInterface
}

func NewCronScheduler(dispatchSvc service.DispatchServiceInterface) *CronScheduler {
	return &CronScheduler{
		cron:        cron.New(),
		dispatchSvc: dispatchSvc,
	}
}

func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("Cron job triggered: redriving dead letter tasks")

		if err := s.dispatchSvc.RedriveDeadLetters(ctx); err != nil {
			logger.Error().Err(err).Msg("Dead letter redrive failed")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()

	// Первый прогон сразу: не ждем расписания для задач, накопленных
	// за время простоя worker-а
	if err := s.dispatchSvc.RedriveDeadLetters(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial dead letter redrive failed")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
