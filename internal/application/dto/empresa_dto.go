package dto

// EmpresaDTO empresa tal como la envía el backend.
type EmpresaDTO struct {
	ID       FlexString `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Location string     `json:"location"`
	Sedes    []string   `json:"sedes"`
	Active   bool       `json:"active"`
	Roles    []string   `json:"roles"`
}

// UnmarshalJSON lee la forma del backend (_id, nombre, ubicacion, activa) y también la
// inglesa. Sin activa la empresa se considera activa.
func (d *EmpresaDTO) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	*d = EmpresaDTO{
		ID:       f.id("_id", "id"),
		Name:     f.str("nombre", "name"),
		Email:    f.str("email", "correo"),
		Location: f.str("ubicacion", "location"),
		Sedes:    f.strings("sedes"),
		Active:   f.boolOr(true, "activa", "active"),
		Roles:    f.strings("roles"),
	}
	return nil
}

// EmpresaRequest entrada del modal de crear/editar empresa.
type EmpresaRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=200"`
	Email    string   `json:"email" validate:"required,email"`
	Location string   `json:"location" validate:"max=200"`
	Sedes    []string `json:"sedes" validate:"dive,required,max=100"`
	Active   *bool    `json:"active,omitempty"`
	Roles    []string `json:"roles" validate:"dive,required,max=60"`
}

// EmpresaResponse salida de una empresa con las opciones de sede ya resueltas.
type EmpresaResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Location    string   `json:"location"`
	Sedes       []string `json:"sedes"`
	SedeOptions []string `json:"sede_options"`
	Active      bool     `json:"active"`
	Roles       []string `json:"roles"`
}
