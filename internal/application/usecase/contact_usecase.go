package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/ports"
)

// DefaultContactSubject asunto cuando el formulario no trae uno.
const DefaultContactSubject = "Nuevo mensaje de contacto"

// ContactUseCase reenvía el formulario de contacto por correo.
type ContactUseCase struct {
	mailer ports.Mailer
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(mailer ports.Mailer) *ContactUseCase {
	return &ContactUseCase{mailer: mailer}
}

// Send limpia la entrada y la envía.
func (uc *ContactUseCase) Send(ctx context.Context, in dto.ContactRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if in.Subject == "" {
		in.Subject = DefaultContactSubject
	}
	return uc.mailer.SendContact(ctx, in)
}
