package dto

// DashboardSummaryDTO KPIs del dashboard de administración.
type DashboardSummaryDTO struct {
	EmpresasTotal   int                  `json:"empresas_total"`
	EmpresasActivas int                  `json:"empresas_activas"`
	HardwareTotal   int                  `json:"hardware_total"`
	HardwareByClass map[string]int       `json:"hardware_by_class"`
	Alerts          int                  `json:"alerts"`
	PorEmpresa      []EmpresaHardwareDTO `json:"por_empresa"`
}

// EmpresaHardwareDTO conteo de hardware por empresa para la página de estadísticas.
type EmpresaHardwareDTO struct {
	EmpresaID   string `json:"empresa_id"`
	EmpresaName string `json:"empresa_name"`
	Total       int    `json:"total"`
	Inactivos   int    `json:"inactivos"`
}
