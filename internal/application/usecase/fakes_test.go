package usecase_test

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/domain"
)

// fakeBackend implementa los puertos de hardware, empresas, usuarios y correo en memoria.
type fakeBackend struct {
	hardware []dto.HardwareDTO
	empresas []dto.EmpresaDTO
	usuarios map[string][]dto.UsuarioDTO
	err      error

	lastHardware dto.HardwareRequest
	lastEmpresa  dto.EmpresaRequest
	lastUsuario  dto.UsuarioRequest
	lastContact  dto.ContactRequest
	deleted      []string
	activeSet    map[string]bool
	types        []dto.HardwareTypeDTO
	typesErr     error
	byEmpresa    []string
}

func sampleBackend() *fakeBackend {
	return &fakeBackend{
		hardware: []dto.HardwareDTO{
			{ID: "1", Name: "Cámara Norte", Type: "camara", Status: "available", Active: true, Stock: 2, EmpresaID: "10", EmpresaName: "Acme", Price: decimal.NewFromInt(100)},
			{ID: "2", Name: "Router", Type: "red", Status: "available", Active: false, Stock: 1, EmpresaID: "10", EmpresaName: "Acme"},
			{ID: "3", Name: "Switch", Type: "red", Status: "discontinued", Active: true, Stock: 0, EmpresaID: "20", EmpresaName: "Beta"},
			{ID: "4", Name: "Sensor", Type: "sensor", Status: "available", Active: true, Stock: 0, EmpresaID: "20", EmpresaName: "Beta"},
			{ID: "5", Name: "Cámara Sur", Type: "Camara", Status: "available", Active: true, Stock: 5, EmpresaID: "20", EmpresaName: "Beta"},
		},
		empresas: []dto.EmpresaDTO{
			{ID: "10", Name: "Acme", Active: true, Sedes: []string{"Norte", "Sur"}},
			{ID: "20", Name: "Beta", Active: false},
			{ID: "30", Name: "Gamma", Active: true},
		},
		usuarios: map[string][]dto.UsuarioDTO{
			"10": {{ID: "u1", EmpresaID: "10", Name: "Ana", Cedula: "12345", ShiftType: "diurno"}},
		},
	}
}

func (f *fakeBackend) ListHardware(context.Context) ([]dto.HardwareDTO, error) {
	return f.hardware, f.err
}

func (f *fakeBackend) ListHardwareByEmpresa(_ context.Context, empresaID string) ([]dto.HardwareDTO, error) {
	f.byEmpresa = append(f.byEmpresa, empresaID)
	return f.hardware, f.err
}

func (f *fakeBackend) GetHardware(_ context.Context, id string) (*dto.HardwareDTO, error) {
	for _, h := range f.hardware {
		if h.ID.String() == id {
			return &h, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBackend) CreateHardware(_ context.Context, in dto.HardwareRequest) (*dto.HardwareDTO, error) {
	f.lastHardware = in
	return &dto.HardwareDTO{ID: "99", Name: in.Name, Type: in.Type, Status: in.Status, Active: *in.Active, Stock: in.Stock, Sede: in.Sede}, nil
}

func (f *fakeBackend) UpdateHardware(_ context.Context, id string, in dto.HardwareRequest) (*dto.HardwareDTO, error) {
	f.lastHardware = in
	return &dto.HardwareDTO{ID: dto.FlexString(id), Name: in.Name, Status: in.Status, Active: *in.Active, Stock: in.Stock}, nil
}

func (f *fakeBackend) SetHardwareActive(_ context.Context, id string, active bool) error {
	if f.activeSet == nil {
		f.activeSet = map[string]bool{}
	}
	f.activeSet[id] = active
	return f.err
}

func (f *fakeBackend) DeleteHardware(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeBackend) ListHardwareTypes(context.Context) ([]dto.HardwareTypeDTO, error) {
	return f.types, f.typesErr
}

func (f *fakeBackend) ListEmpresas(context.Context) ([]dto.EmpresaDTO, error) {
	return f.empresas, f.err
}

func (f *fakeBackend) GetEmpresa(_ context.Context, id string) (*dto.EmpresaDTO, error) {
	for _, e := range f.empresas {
		if e.ID.String() == id {
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBackend) CreateEmpresa(_ context.Context, in dto.EmpresaRequest) (*dto.EmpresaDTO, error) {
	f.lastEmpresa = in
	return &dto.EmpresaDTO{ID: dto.FlexString(strconv.Itoa(len(f.empresas) + 1)), Name: in.Name, Email: in.Email, Sedes: in.Sedes, Roles: in.Roles, Active: true}, nil
}

func (f *fakeBackend) UpdateEmpresa(_ context.Context, id string, in dto.EmpresaRequest) (*dto.EmpresaDTO, error) {
	f.lastEmpresa = in
	return &dto.EmpresaDTO{ID: dto.FlexString(id), Name: in.Name, Email: in.Email, Sedes: in.Sedes}, nil
}

func (f *fakeBackend) SetEmpresaActive(_ context.Context, id string, active bool) error {
	if f.activeSet == nil {
		f.activeSet = map[string]bool{}
	}
	f.activeSet[id] = active
	return f.err
}

func (f *fakeBackend) DeleteEmpresa(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeBackend) ListUsuarios(_ context.Context, empresaID string) ([]dto.UsuarioDTO, error) {
	return f.usuarios[empresaID], f.err
}

func (f *fakeBackend) GetUsuario(_ context.Context, empresaID, id string) (*dto.UsuarioDTO, error) {
	for _, u := range f.usuarios[empresaID] {
		if u.ID.String() == id {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBackend) CreateUsuario(_ context.Context, empresaID string, in dto.UsuarioRequest) (*dto.UsuarioDTO, error) {
	f.lastUsuario = in
	return &dto.UsuarioDTO{ID: "u9", EmpresaID: dto.FlexString(empresaID), Name: in.Name, Cedula: in.Cedula, Sede: in.Sede, ShiftType: in.ShiftType}, nil
}

func (f *fakeBackend) UpdateUsuario(_ context.Context, empresaID, id string, in dto.UsuarioRequest) (*dto.UsuarioDTO, error) {
	f.lastUsuario = in
	return &dto.UsuarioDTO{ID: dto.FlexString(id), EmpresaID: dto.FlexString(empresaID), Name: in.Name, Sede: in.Sede}, nil
}

func (f *fakeBackend) DeleteUsuario(_ context.Context, _, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeBackend) SendContact(_ context.Context, in dto.ContactRequest) error {
	f.lastContact = in
	return f.err
}
