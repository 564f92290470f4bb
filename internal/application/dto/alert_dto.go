package dto

import "time"

// AlertDTO alerta de hardware inactivo para el panel lateral y el badge.
type AlertDTO struct {
	ID           string `json:"id"`
	HardwareID   string `json:"hardwareId"`
	HardwareName string `json:"hardwareName"`
	EmpresaID    string `json:"empresaId,omitempty"`
	EmpresaName  string `json:"empresaName"`
	SedeName     string `json:"sedeName"`
}

// SeenRequest ids que el usuario descartó en el panel.
type SeenRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// NotificationsDTO estado actual del panel de notificaciones.
type NotificationsDTO struct {
	Alerts    []AlertDTO `json:"alerts"`
	Count     int        `json:"count"`
	Loaded    bool       `json:"loaded"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}
