package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/consola-hardware/internal/domain/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS notificaciones_vistas (
    user_id    TEXT        NOT NULL,
    alert_id   TEXT        NOT NULL,
    seen_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, alert_id)
)`

// EnsureSchema crea la tabla del registro de vistos si no existe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear notificaciones_vistas: %w", err)
	}
	return nil
}

var _ repository.SeenRepository = (*SeenRepo)(nil)

// SeenRepo implementación de repository.SeenRepository para PostgreSQL.
type SeenRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewSeenRepository construye el adaptador.
func NewSeenRepository(pool *pgxpool.Pool) *SeenRepo {
	return &SeenRepo{pool: pool, tx: NewTxRunner(pool)}
}

// Unseen consulta cuáles de los ids ya están registrados y devuelve el resto en el orden recibido.
func (r *SeenRepo) Unseen(ctx context.Context, userID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	query := `SELECT alert_id FROM notificaciones_vistas WHERE user_id = $1 AND alert_id = ANY($2)`
	rows, err := r.pool.Query(ctx, query, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("seen.Unseen: %w", err)
	}
	seen, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("seen.Unseen: %w", err)
	}
	set := make(map[string]struct{}, len(seen))
	for _, id := range seen {
		set[id] = struct{}{}
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := set[id]; !ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// MarkSeen inserta los ids en una sola transacción; los ya registrados se ignoran.
func (r *SeenRepo) MarkSeen(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, id := range ids {
			batch.Queue(`INSERT INTO notificaciones_vistas (user_id, alert_id) VALUES ($1, $2)
				ON CONFLICT (user_id, alert_id) DO NOTHING`, userID, id)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("seen.MarkSeen: %w", err)
		}
		return nil
	})
}

// Reset borra el registro de vistos del usuario.
func (r *SeenRepo) Reset(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM notificaciones_vistas WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("seen.Reset: %w", err)
	}
	return nil
}
