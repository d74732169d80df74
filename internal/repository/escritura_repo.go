package repository

import (
	"context"

	"github.com/infogpstech/GPSpedia2.0/internal/model"
)

// AltaCorte is the write payload for addOrUpdateCut. ClaveIdempotencia is
// minted client-side by the workflow and repeated verbatim on retries so the
// write service can de-duplicate a re-submitted row.
type AltaCorte struct {
	Identidad          model.IdentidadVehiculo `json:"identidad"`
	AnoHasta           *int                    `json:"anoHasta,omitempty"`
	Categoria          string                  `json:"categoria"`
	TipoCorte          string                  `json:"tipoCorte"`
	ConfiguracionRelay string                  `json:"configuracionRelay,omitempty"`
	Ubicacion          string                  `json:"ubicacion,omitempty"`
	ColorCable         string                  `json:"colorCable,omitempty"`
	Imagen             string                  `json:"imagen,omitempty"`
	Colaborador        string                  `json:"colaborador"`
	ClaveIdempotencia  string                  `json:"idempotencyKey"`
}

// InfoAdicional links supplementary notes (door opening procedure, power
// wires, warnings) to an already-written vehicle.
type InfoAdicional struct {
	VehicleID   string   `json:"vehicleId"`
	Notas       []string `json:"notas"`
	Colaborador string   `json:"colaborador"`
}

// EscrituraRepository issues the catalog write actions. Each method is one
// remote call; idempotency across retries is the caller's concern (see
// AltaCorte.ClaveIdempotencia).
type EscrituraRepository interface {
	AddOrUpdateCut(ctx context.Context, alta AltaCorte) (vehicleID string, err error)
	AddSupplementaryInfo(ctx context.Context, info InfoAdicional) error
}

type escrituraRepo struct {
	rpc Caller
}

func NewEscrituraRepository(rpc Caller) EscrituraRepository {
	return &escrituraRepo{rpc: rpc}
}

func (r *escrituraRepo) AddOrUpdateCut(ctx context.Context, alta AltaCorte) (string, error) {
	var resp struct {
		VehicleID string `json:"vehicleId"`
	}
	if err := r.rpc.Call(ctx, "addOrUpdateCut", alta, &resp); err != nil {
		return "", err
	}
	return resp.VehicleID, nil
}

func (r *escrituraRepo) AddSupplementaryInfo(ctx context.Context, info InfoAdicional) error {
	return r.rpc.Call(ctx, "addSupplementaryInfo", info, nil)
}
