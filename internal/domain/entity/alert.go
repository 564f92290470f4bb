package entity

// HardwareAlert es una alerta normalizada de hardware físicamente inactivo.
// ID es el del hardware o, si el backend no lo envía, uno compuesto estable.
// HardwareID y EmpresaID quedan vacíos cuando la alerta no los trae.
type HardwareAlert struct {
	ID           string
	HardwareID   string
	HardwareName string
	EmpresaID    string
	EmpresaName  string
	SedeName     string
}
