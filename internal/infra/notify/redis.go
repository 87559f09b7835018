package notify

import (
	"context"
	"encoding/json"
	"time"

	"stagebook/internal/domain/party"
	"stagebook/internal/pkg/config"
	"stagebook/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event is what lands on the queue; a worker outside this service
// turns it into email/push.
type Event struct {
	RecipientKind string    `json:"recipient_kind"`
	RecipientID   uuid.UUID `json:"recipient_id"`
	Summary       string    `json:"summary"`
	ReferenceID   uuid.UUID `json:"reference_id"`
	EmittedAt     time.Time `json:"emitted_at"`
}

// RedisNotifier pushes notification events onto a Redis list. Callers
// treat delivery as best-effort: an error here never fails a command.
type RedisNotifier struct {
	client *redis.Client
	queue  string
}

func NewRedisNotifier(client *redis.Client, cfg config.RedisConfig) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		queue:  cfg.NotificationQueue,
	}
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func (n *RedisNotifier) Notify(ctx context.Context, recipient party.Party, summary string, referenceID uuid.UUID) error {
	event := Event{
		RecipientKind: recipient.Kind.String(),
		RecipientID:   recipient.ID,
		Summary:       summary,
		ReferenceID:   referenceID,
		EmittedAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal notification event")
	}

	if err := n.client.LPush(ctx, n.queue, payload).Err(); err != nil {
		return errs.Wrap(err, "failed to enqueue notification event")
	}
	return nil
}
