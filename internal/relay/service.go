// Package relay publishes journaled product actions from the outbox table
// to Kafka.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/product-admin/internal/config"
	"github.com/tuanvumaihuynh/product-admin/internal/repository"
	"github.com/tuanvumaihuynh/product-admin/internal/storage/db"
	"github.com/tuanvumaihuynh/product-admin/internal/storage/mq"
	"github.com/tuanvumaihuynh/product-admin/pkg/ptr"
)

type Service struct {
	cfg           config.Relay
	logger        *slog.Logger
	db            db.DB
	outboxMsgRepo repository.OutboxMsgRepository
	mqProducer    mq.Producer

	stopChan chan struct{}
}

func NewService(
	cfg config.Relay,
	logger *slog.Logger,
	db db.DB,
	outboxMsgRepo repository.OutboxMsgRepository,
	mqProducer mq.Producer,
) *Service {
	return &Service{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "relay")),
		db:            db,
		outboxMsgRepo: outboxMsgRepo,
		mqProducer:    mqProducer,
		stopChan:      make(chan struct{}),
	}
}

type CleanupFunc func()

// Run polls the outbox every cfg.Interval until the cleanup is called. The
// cleanup waits up to 5 seconds for the batch in flight before cancelling it.
func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(5 * time.Second):
			cancel()
			<-stoppedChan
		}
		cancel()
	}
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			n, err := s.RelayBatch(ctx)
			if err != nil {
				s.logger.ErrorContext(ctx, "error relaying outbox msgs", slog.Any("error", err))
				continue
			}
			if n > 0 {
				s.logger.InfoContext(ctx, "relayed outbox msgs", slog.Int("count", n))
			}
		}
	}
}

// RelayBatch produces one batch of unprocessed messages and marks each of
// them processed, recording the produce error if there was one. It returns
// the number of messages marked.
func (s *Service) RelayBatch(ctx context.Context) (int, error) {
	var relayed int

	err := s.db.WithTx(ctx, func(tx db.DB) error {
		repo := s.outboxMsgRepo.WithDB(tx)

		outboxMsgs, err := repo.ListUnprocessedOutboxMsgs(ctx, repository.ListUnprocessedOutboxMsgsParams{
			//nolint:gosec
			BatchSize: int32(s.cfg.BatchSize),
		})
		if err != nil {
			return fmt.Errorf("list unprocessed outbox msgs: %w", err)
		}

		if len(outboxMsgs) == 0 {
			return nil
		}

		items := s.produceAll(ctx, outboxMsgs)

		if err := repo.BulkUpdateOutboxMsgs(ctx, repository.BulkUpdateOutboxMsgsParams{
			Items: items,
		}); err != nil {
			return fmt.Errorf("bulk update outbox msgs: %w", err)
		}

		relayed = len(items)
		return nil
	})

	return relayed, err
}

func (s *Service) produceAll(ctx context.Context, msgs []repository.ListUnprocessedOutboxMsgsResult) []repository.BulkUpdateOutboxMsgsItem {
	items := make([]repository.BulkUpdateOutboxMsgsItem, len(msgs))

	var wg sync.WaitGroup
	for i, msg := range msgs {
		wg.Go(func() {
			items[i] = repository.BulkUpdateOutboxMsgsItem{ID: msg.ID}

			produceCtx := ctx
			if s.cfg.ProduceTimeout > 0 {
				var cancel context.CancelFunc
				produceCtx, cancel = context.WithTimeout(ctx, s.cfg.ProduceTimeout)
				defer cancel()
			}

			if err := s.mqProducer.Produce(produceCtx, mq.ProduceMsg{
				Topic:        msg.Topic,
				Headers:      msg.Headers,
				Payload:      msg.Payload,
				PartitionKey: msg.PartitionKey,
			}); err != nil {
				s.logger.ErrorContext(ctx, "error producing message",
					slog.String("outbox_msg_id", msg.ID.String()),
					slog.String("topic", msg.Topic),
					slog.Any("error", err),
				)
				items[i].Error = ptr.New(fmt.Sprintf("produce message: %v", err))
			}
		})
	}
	wg.Wait()

	return items
}
