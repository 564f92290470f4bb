package entity

// Tipos de turno válidos para Usuario.
const (
	TurnoDiurno   = "diurno"
	TurnoNocturno = "nocturno"
	TurnoRotativo = "rotativo"
)

// Roles de sesión de la consola.
const (
	RoleAdmin   = "admin"
	RoleEmpresa = "empresa"
)

// Usuario representa a un empleado de una Empresa.
type Usuario struct {
	ID             string
	EmpresaID      string
	Name           string
	Cedula         string
	Role           string
	Especialidades []string
	Turno          string // diurno, nocturno, rotativo
	Sede           string
	Active         bool
}
