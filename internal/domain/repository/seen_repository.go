package repository

import "context"

// SeenRepository guarda, por usuario, los ids de alertas de hardware que ya se le mostraron.
// Solo sirve para no repetir el popup; perderlo no afecta datos de negocio.
type SeenRepository interface {
	// Unseen devuelve, en el mismo orden, los ids que el usuario todavía no ha visto.
	Unseen(ctx context.Context, userID string, ids []string) ([]string, error)
	// MarkSeen agrega los ids al conjunto del usuario.
	MarkSeen(ctx context.Context, userID string, ids []string) error
	// Reset olvida todo lo visto por el usuario.
	Reset(ctx context.Context, userID string) error
}
