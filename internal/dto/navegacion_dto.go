package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SeleccionarRequest struct {
	Tipo    string `json:"tipo"     validate:"required,oneof=categoria marca modelo corte"`
	Valor   string `json:"valor"    validate:"required_unless=Tipo corte,max=120"`
	CorteID int    `json:"corte_id" validate:"required_if=Tipo corte"`
}

type BuscarRequest struct {
	Termino string `json:"termino" validate:"max=120"`
}
