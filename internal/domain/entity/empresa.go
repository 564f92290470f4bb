package entity

// DefaultSede es la única opción del selector cuando la empresa no tiene sedes.
const DefaultSede = "Principal"

// Empresa representa un tenant del sistema con sus sedes.
type Empresa struct {
	ID       string
	Name     string
	Email    string
	Location string
	Sedes    []string
	Active   bool
	Roles    []string
}

// SedeOptions devuelve las sedes para el selector de formularios.
func (e *Empresa) SedeOptions() []string {
	opts := make([]string, 0, len(e.Sedes))
	for _, s := range e.Sedes {
		if s != "" {
			opts = append(opts, s)
		}
	}
	if len(opts) == 0 {
		return []string{DefaultSede}
	}
	return opts
}
