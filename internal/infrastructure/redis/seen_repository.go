package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/consola-hardware/internal/domain/repository"
)

// seenTTL se renueva en cada MarkSeen; un usuario inactivo un mes vuelve a ver los avisos.
const seenTTL = 30 * 24 * time.Hour

// SeenRepository un SET por usuario. Clave: seen:<user_id>
type SeenRepository struct {
	client *redis.Client
}

var _ repository.SeenRepository = (*SeenRepository)(nil)

// NewSeenRepository envuelve el cliente.
func NewSeenRepository(client *redis.Client) *SeenRepository {
	return &SeenRepository{client: client}
}

func (r *SeenRepository) Unseen(ctx context.Context, userID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	flags, err := r.client.SMIsMember(ctx, key(userID), members...).Result()
	if err != nil {
		return nil, fmt.Errorf("seen.Unseen: %w", err)
	}
	out := make([]string, 0, len(ids))
	for i, id := range ids {
		if i >= len(flags) || !flags[i] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *SeenRepository) MarkSeen(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	k := key(userID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, k, members...)
		pipe.Expire(ctx, k, seenTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("seen.MarkSeen: %w", err)
	}
	return nil
}

func (r *SeenRepository) Reset(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("seen.Reset: %w", err)
	}
	return nil
}

func key(userID string) string {
	return "seen:" + userID
}
