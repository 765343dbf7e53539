package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/careops/hospital-api/internal/repository"
	"github.com/careops/hospital-api/pkg/logger"
	"github.com/careops/hospital-api/pkg/messaging"
)

type OutboxProcessorConfig struct {
	BatchSize    int
	PollInterval time.Duration
}

// OutboxProcessor drains pending workflow events from the outbox and
// publishes them to the broker. At-least-once delivery: consumers must
// tolerate duplicates.
type OutboxProcessor struct {
	repo      repository.OutboxRepository
	broker    messaging.Broker
	config    OutboxProcessorConfig
	logger    *logger.Logger
	published prometheus.Counter
	failed    prometheus.Counter
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	config OutboxProcessorConfig,
	log *logger.Logger,
	published, failed prometheus.Counter,
) *OutboxProcessor {
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}

	return &OutboxProcessor{
		repo:      repo,
		broker:    broker,
		config:    config,
		logger:    log,
		published: published,
		failed:    failed,
	}
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("Starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Shutting down outbox processor")
			return
		case <-ticker.C:
			if err := p.processEvents(ctx); err != nil {
				p.logger.Error(err, "Failed to process events")
			}
		}
	}
}

func (p *OutboxProcessor) processEvents(ctx context.Context) error {
	events, err := p.repo.GetPending(ctx, p.config.BatchSize)
	if err != nil {
		return err
	}

	for _, evt := range events {
		if err := p.broker.Publish(ctx, evt.EventType, evt.Payload); err != nil {
			p.failed.Inc()
			if markErr := p.repo.MarkFailed(ctx, evt.ID); markErr != nil {
				p.logger.Error(markErr, "Failed to mark event failed")
			}
			continue
		}

		if err := p.repo.MarkPublished(ctx, evt.ID); err != nil {
			p.logger.Error(err, "Failed to mark event published")
			continue
		}
		p.published.Inc()
	}
	return nil
}
