// Package workflow orchestrates the multi-stage add/update form: verify the
// vehicle, review resolver matches, register the cut, attach supplementary
// notes. One Flujo exists per session; any backend failure leaves the flow in
// its current stage so the technician can retry.
package workflow

import (
	"context"

	"github.com/infogpstech/GPSpedia2.0/internal/apierror"
	"github.com/infogpstech/GPSpedia2.0/internal/model"
	"github.com/infogpstech/GPSpedia2.0/internal/repository"
	"github.com/infogpstech/GPSpedia2.0/internal/resolver"

	"github.com/google/uuid"
)

// Estado enumerates the workflow stages.
type Estado string

const (
	EstadoVerificar  Estado = "verificar"
	EstadoRevisar    Estado = "revisar"
	EstadoCorte      Estado = "corte"
	EstadoInfo       Estado = "informacion"
	EstadoFinalizado Estado = "finalizado"
)

// Matcher is the identity-resolution dependency; *resolver.Resolver is the
// production implementation.
type Matcher interface {
	FindMatches(c resolver.Candidato) ([]model.Vehiculo, error)
}

// DatosCorte are the cut-specific fields collected in the third stage.
type DatosCorte struct {
	Categoria          string
	TipoCorte          string
	ConfiguracionRelay string
	Ubicacion          string
	ColorCable         string
	Imagen             string
}

// Flujo is one in-flight add/update form.
type Flujo struct {
	matcher   Matcher
	escritura repository.EscrituraRepository

	estado        Estado
	colaborador   string
	candidato     resolver.Candidato
	coincidencias []model.Vehiculo
	// identidad is the bound vehicle identity; nil means a fresh one derived
	// from the candidate.
	identidad   *model.IdentidadVehiculo
	anoHasta    *int
	advertencia string
	// claveIdempotencia is minted once on entering the cut stage and reused
	// verbatim on every retry, so the write service can de-duplicate a
	// resubmission after a failed call.
	claveIdempotencia string
	vehicleID         string
}

func NewFlujo(matcher Matcher, escritura repository.EscrituraRepository, colaborador string) *Flujo {
	return &Flujo{
		matcher:     matcher,
		escritura:   escritura,
		estado:      EstadoVerificar,
		colaborador: colaborador,
	}
}

func (f *Flujo) Estado() Estado { return f.estado }

func (f *Flujo) Coincidencias() []model.Vehiculo { return f.coincidencias }

func (f *Flujo) VehicleID() string { return f.vehicleID }

// Advertencia is non-empty when the technician overrode resolver matches;
// it is informational, never blocking.
func (f *Flujo) Advertencia() string { return f.advertencia }

func (f *Flujo) faseInvalida(esperado Estado) error {
	return apierror.Validation("Operación no válida: el formulario está en la etapa \"" +
		string(f.estado) + "\", no en \"" + string(esperado) + "\"")
}

// Verificar resolves the candidate identity. Zero matches jump straight to
// the cut stage (new vehicle); one or more go to review.
func (f *Flujo) Verificar(cand resolver.Candidato) error {
	if f.estado != EstadoVerificar {
		return f.faseInvalida(EstadoVerificar)
	}

	coincidencias, err := f.matcher.FindMatches(cand)
	if err != nil {
		return err
	}

	f.candidato = cand
	f.coincidencias = coincidencias
	if len(coincidencias) == 0 {
		f.entrarEtapaCorte(nil, nil)
		return nil
	}
	f.estado = EstadoRevisar
	return nil
}

// UsarExistente binds the cut to a matched vehicle's identity and moves on
// pre-filled. The vehicle's year-range end travels with the identity so a
// closed range ("2018-2022") is rewritten intact, not truncated to its
// starting year.
func (f *Flujo) UsarExistente(indice int) error {
	if f.estado != EstadoRevisar {
		return f.faseInvalida(EstadoRevisar)
	}
	if indice < 0 || indice >= len(f.coincidencias) {
		return apierror.Validation("Coincidencia seleccionada fuera de rango")
	}
	vehiculo := f.coincidencias[indice]
	f.entrarEtapaCorte(&vehiculo.Identidad, rangoHasta(vehiculo.Cortes))
	return nil
}

// AgregarComoNuevo overrides the matches explicitly: the cut is registered
// under a fresh identity and a conflict note is kept for the UI.
func (f *Flujo) AgregarComoNuevo() error {
	if f.estado != EstadoRevisar {
		return f.faseInvalida(EstadoRevisar)
	}
	f.advertencia = apierror.Conflict("Se registrará un vehículo nuevo a pesar de existir coincidencias").Message
	f.entrarEtapaCorte(nil, nil)
	return nil
}

func (f *Flujo) entrarEtapaCorte(identidad *model.IdentidadVehiculo, anoHasta *int) {
	f.identidad = identidad
	f.anoHasta = anoHasta
	f.claveIdempotencia = uuid.NewString()
	f.estado = EstadoCorte
}

// rangoHasta is the year-range end shared by a vehicle's cuts; nil when the
// model is open-ended.
func rangoHasta(cortes []model.Corte) *int {
	for i := range cortes {
		if cortes[i].AnoHasta != nil {
			return cortes[i].AnoHasta
		}
	}
	return nil
}

// RegistrarCorte issues the create-or-update write. On failure the flow
// stays in the cut stage and the same idempotency key is reused on retry.
func (f *Flujo) RegistrarCorte(ctx context.Context, datos DatosCorte) error {
	if f.estado != EstadoCorte {
		return f.faseInvalida(EstadoCorte)
	}
	if datos.TipoCorte == "" {
		return apierror.Validation("El tipo de corte es obligatorio")
	}

	identidad := f.identidadEfectiva()
	vehicleID, err := f.escritura.AddOrUpdateCut(ctx, repository.AltaCorte{
		Identidad:          identidad,
		AnoHasta:           f.anoHasta,
		Categoria:          datos.Categoria,
		TipoCorte:          datos.TipoCorte,
		ConfiguracionRelay: datos.ConfiguracionRelay,
		Ubicacion:          datos.Ubicacion,
		ColorCable:         datos.ColorCable,
		Imagen:             datos.Imagen,
		Colaborador:        f.colaborador,
		ClaveIdempotencia:  f.claveIdempotencia,
	})
	if err != nil {
		return err
	}

	f.vehicleID = vehicleID
	f.estado = EstadoInfo
	return nil
}

// AgregarInformacion attaches optional supplementary notes to the vehicle
// written in the previous stage. Empty notes just finalize.
func (f *Flujo) AgregarInformacion(ctx context.Context, notas []string) error {
	if f.estado != EstadoInfo {
		return f.faseInvalida(EstadoInfo)
	}

	if len(notas) > 0 {
		err := f.escritura.AddSupplementaryInfo(ctx, repository.InfoAdicional{
			VehicleID:   f.vehicleID,
			Notas:       notas,
			Colaborador: f.colaborador,
		})
		if err != nil {
			return err
		}
	}
	f.estado = EstadoFinalizado
	return nil
}

// identidadEfectiva is the bound identity, or one minted from the candidate
// when the vehicle is new.
func (f *Flujo) identidadEfectiva() model.IdentidadVehiculo {
	if f.identidad != nil {
		return *f.identidad
	}
	return model.IdentidadVehiculo{
		Marca:         f.candidato.Marca,
		Modelo:        f.candidato.Modelo,
		AnoDesde:      f.candidato.Ano,
		TipoEncendido: f.candidato.TipoEncendido,
	}
}
