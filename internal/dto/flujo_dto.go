package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type VerificarRequest struct {
	Marca         string `json:"marca"          validate:"required,min=1,max=80"`
	Modelo        string `json:"modelo"         validate:"required,min=1,max=80"`
	Ano           int    `json:"ano"            validate:"required,min=1950,max=2100"`
	TipoEncendido string `json:"tipo_encendido" validate:"required,min=1,max=40"`
}

type DecisionRequest struct {
	Accion string `json:"accion" validate:"required,oneof=usar_existente agregar_nuevo"`
	Indice int    `json:"indice" validate:"min=0"`
}

type CorteRequest struct {
	Categoria          string `json:"categoria"           validate:"required,min=1,max=80"`
	TipoCorte          string `json:"tipo_corte"          validate:"required,min=1,max=80"`
	ConfiguracionRelay string `json:"configuracion_relay" validate:"max=200"`
	Ubicacion          string `json:"ubicacion"           validate:"max=200"`
	ColorCable         string `json:"color_cable"         validate:"max=80"`
	Imagen             string `json:"imagen"              validate:"omitempty,url"`
}

type InformacionRequest struct {
	Notas []string `json:"notas" validate:"max=20,dive,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FlujoEstadoResponse struct {
	Estado        string             `json:"estado"`
	Coincidencias []VehiculoResponse `json:"coincidencias,omitempty"`
	Advertencia   string             `json:"advertencia,omitempty"`
	VehicleID     string             `json:"vehicle_id,omitempty"`
}

type VehiculoResponse struct {
	Marca         string          `json:"marca"`
	Modelo        string          `json:"modelo"`
	AnoDesde      int             `json:"ano_desde"`
	TipoEncendido string          `json:"tipo_encendido"`
	Cortes        []CorteResponse `json:"cortes"`
}
