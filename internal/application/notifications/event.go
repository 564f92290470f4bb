package notifications

import (
	"fmt"
	"time"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/domain/entity"
)

// Tipos de evento enviados a las pestañas.
const (
	EventStatus = "status"
	EventError  = "error"
)

// Popup aviso transitorio de alertas nuevas.
type Popup struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// Event resultado de un chequeo, tal como se envía por el websocket.
// En un evento de error Alerts va vacío y Count conserva el badge anterior.
type Event struct {
	Type      string         `json:"type"`
	Alerts    []dto.AlertDTO `json:"alerts"`
	Count     int            `json:"count"`
	NewIDs    []string       `json:"new_ids,omitempty"`
	OpenPanel bool           `json:"open_panel"`
	Popup     *Popup         `json:"popup,omitempty"`
	Message   string         `json:"message,omitempty"`
	At        time.Time      `json:"at"`
}

// Snapshot estado del último chequeo exitoso más el último error, si lo hubo.
type Snapshot struct {
	Alerts    []entity.HardwareAlert
	Loaded    bool
	UpdatedAt time.Time
	LastError string
}

// Count valor del badge.
func (s Snapshot) Count() int { return len(s.Alerts) }

// popupMessage texto del aviso transitorio.
func popupMessage(n int) string {
	if n == 1 {
		return "1 hardware nuevo se reporta inactivo"
	}
	return fmt.Sprintf("%d equipos nuevos se reportan inactivos", n)
}

// ToAlertDTOs adapta las alertas al formato del panel.
func ToAlertDTOs(alerts []entity.HardwareAlert) []dto.AlertDTO {
	out := make([]dto.AlertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.AlertDTO{
			ID:           a.ID,
			HardwareID:   a.HardwareID,
			HardwareName: a.HardwareName,
			EmpresaID:    a.EmpresaID,
			EmpresaName:  a.EmpresaName,
			SedeName:     a.SedeName,
		})
	}
	return out
}

// statusEvent arma el evento de un chequeo exitoso.
// El panel se abre y aparece el popup solo si hay ids nuevos.
func statusEvent(alerts []entity.HardwareAlert, newIDs []string, at time.Time) Event {
	ev := Event{
		Type:   EventStatus,
		Alerts: ToAlertDTOs(alerts),
		Count:  len(alerts),
		NewIDs: newIDs,
		At:     at,
	}
	if len(newIDs) > 0 {
		ev.OpenPanel = true
		ev.Popup = &Popup{Count: len(newIDs), Message: popupMessage(len(newIDs))}
	}
	return ev
}

// ForScope deja en el evento solo las alertas del alcance y recalcula badge, ids nuevos
// y popup. Los eventos de error pasan sin cambios.
func ForScope(ev Event, scope Scope) Event {
	if ev.Type != EventStatus || scope.All() {
		return ev
	}
	alerts := make([]dto.AlertDTO, 0, len(ev.Alerts))
	keep := make(map[string]bool, len(ev.Alerts))
	for _, a := range ev.Alerts {
		if scope.includes(a.HardwareID, a.EmpresaID) {
			alerts = append(alerts, a)
			keep[a.ID] = true
		}
	}
	var newIDs []string
	for _, id := range ev.NewIDs {
		if keep[id] {
			newIDs = append(newIDs, id)
		}
	}
	ev.Alerts = alerts
	ev.Count = len(alerts)
	ev.NewIDs = newIDs
	ev.OpenPanel = len(newIDs) > 0
	ev.Popup = nil
	if len(newIDs) > 0 {
		ev.Popup = &Popup{Count: len(newIDs), Message: popupMessage(len(newIDs))}
	}
	return ev
}
