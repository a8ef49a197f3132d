package consumer

import (
	"context"
	"encoding/json"
	"zeiterfassung/internal/dashboard"
	"zeiterfassung/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeTimeEntryClosed(
	ctx context.Context,
	reader *kafkago.Reader,
	dashboardService dashboard.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.time_entry_closed")
	log.Info("time entry closed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("time entry closed consumer stopped")
				return
			}
			log.Error("fetch time entry closed message failed", zap.Error(err))
			continue
		}

		var event events.TimeEntryClosedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode time_entry_closed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := dashboardService.RefreshActiveSessions(ctx); err != nil {
			log.Error("refresh active sessions failed",
				zap.String("entry_id", event.EntryID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit time entry closed message failed", zap.Error(err))
			continue
		}

		log.Info("active sessions refreshed from time_entry_closed event",
			zap.String("entry_id", event.EntryID),
			zap.String("employee_id", event.EmployeeID),
			zap.Int64("worked_ms", event.WorkedMs),
		)
	}
}
