package dto

// UsuarioDTO usuario de una empresa tal como lo envía el backend.
type UsuarioDTO struct {
	ID             FlexString `json:"id"`
	EmpresaID      FlexString `json:"empresa_id"`
	Name           string     `json:"name"`
	Cedula         string     `json:"cedula"`
	Role           string     `json:"role"`
	Especialidades []string   `json:"especialidades"`
	ShiftType      string     `json:"shift_type"`
	Sede           string     `json:"sede"`
	Active         bool       `json:"active"`
}

// UnmarshalJSON lee la forma del backend (_id, nombre, rol, tipo_turno, activo) y
// también la inglesa. Sin activo el usuario se considera activo.
func (d *UsuarioDTO) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	*d = UsuarioDTO{
		ID:             f.id("_id", "id"),
		EmpresaID:      f.id("empresa_id", "empresaId"),
		Name:           f.str("nombre", "name"),
		Cedula:         f.str("cedula"),
		Role:           f.str("rol", "role"),
		Especialidades: f.strings("especialidades"),
		ShiftType:      f.str("tipo_turno", "shift_type"),
		Sede:           f.str("sede"),
		Active:         f.boolOr(true, "activo", "active"),
	}
	return nil
}

// UsuarioRequest entrada del modal de crear/editar usuario.
type UsuarioRequest struct {
	Name           string   `json:"name" validate:"required,min=1,max=200"`
	Cedula         string   `json:"cedula" validate:"required,numeric,min=5,max=20"`
	Role           string   `json:"role" validate:"required,max=60"`
	Especialidades []string `json:"especialidades" validate:"dive,required,max=100"`
	ShiftType      string   `json:"shift_type" validate:"required,oneof=diurno nocturno rotativo"`
	Sede           string   `json:"sede" validate:"max=100"`
	Active         *bool    `json:"active,omitempty"`
}

// UsuarioResponse salida de un usuario hacia la consola.
type UsuarioResponse struct {
	ID             string   `json:"id"`
	EmpresaID      string   `json:"empresa_id"`
	Name           string   `json:"name"`
	Cedula         string   `json:"cedula"`
	Role           string   `json:"role"`
	Especialidades []string `json:"especialidades"`
	ShiftType      string   `json:"shift_type"`
	Sede           string   `json:"sede"`
	Active         bool     `json:"active"`
}
