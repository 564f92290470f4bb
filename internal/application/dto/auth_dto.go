package dto

// LoginRequest entrada del formulario de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"user_type" validate:"omitempty,oneof=admin empresa"`
}

// LoginResponse salida del login con la ruta a la que debe ir el navegador.
type LoginResponse struct {
	Success  bool   `json:"success"`
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}

// BackendUserDTO usuario autenticado según el backend.
type BackendUserDTO struct {
	ID          FlexString `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	EmpresaID   FlexString `json:"empresa_id"`
	EmpresaName string     `json:"empresa_name"`
}

// BackendLoginDTO data del login del backend más la cookie de sesión que devolvió.
type BackendLoginDTO struct {
	User    BackendUserDTO `json:"user"`
	Session string         `json:"-"`
}
