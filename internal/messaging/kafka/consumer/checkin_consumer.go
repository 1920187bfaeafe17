package consumer

import (
	"context"
	"encoding/json"

	"go-gym/internal/analytics"
	"go-gym/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeCheckinRecorded recomputes the gym leaderboard cache whenever a
// session is opened or closed, so reads stay cheap.
func ConsumeCheckinRecorded(
	ctx context.Context,
	reader *kafkago.Reader,
	analyticsService analytics.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.checkin_recorded")
	log.Info("checkin consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("checkin consumer stopped")
				return
			}
			log.Error("fetch checkin message failed", zap.Error(err))
			continue
		}

		var event events.CheckinRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode checkin_recorded event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := analyticsService.RefreshLeaderboard(ctx, event.GymID); err != nil {
			log.Error("refresh leaderboard failed",
				zap.String("gym_id", event.GymID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit checkin message failed", zap.Error(err))
			continue
		}

		log.Info("leaderboard refreshed from checkin event",
			zap.String("gym_id", event.GymID),
			zap.String("member_id", event.MemberID),
			zap.String("action", event.Action),
		)
	}
}
