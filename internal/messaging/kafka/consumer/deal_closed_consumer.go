package consumer

import (
	"context"
	"encoding/json"

	"go-salescrm/internal/events"
	"go-salescrm/internal/training"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeDealClosed provisions training records for closed deals. Customers
// without a course are skipped. Redelivery is harmless: provisioning is
// idempotent per customer.
func ConsumeDealClosed(
	ctx context.Context,
	reader *kafkago.Reader,
	trainingService training.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.deal_closed")
	log.Info("deal closed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("deal closed consumer stopped")
				return
			}
			log.Error("fetch deal closed message failed", zap.Error(err))
			continue
		}

		var event events.DealClosedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode deal closed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.CourseName == "" {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := trainingService.EnsureForCustomer(ctx, event.CustomerID); err != nil {
			log.Error("provision training failed",
				zap.String("customer_id", event.CustomerID.String()),
				zap.String("sale_log_id", event.SaleLogID.String()),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit deal closed message failed", zap.Error(err))
			continue
		}

		log.Info("training provisioned from deal closed event",
			zap.String("customer_id", event.CustomerID.String()),
			zap.String("contract_no", event.ContractNo),
		)
	}
}
