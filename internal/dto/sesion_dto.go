package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ValidarSesionRequest struct {
	Token string `json:"token" validate:"required,min=8,max=200"`
	// UserID is optional: when the client still knows who it claims to be,
	// the cheaper remote validateSession action answers directly.
	UserID string `json:"user_id" validate:"omitempty,max=80"`
}

type ReportarRequest struct {
	CorteID     int    `json:"corte_id"    validate:"required,min=1"`
	Descripcion string `json:"descripcion" validate:"required,min=5,max=1000"`
}

type LikeRequest struct {
	CorteID int `json:"corte_id" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SesionResponse struct {
	Valida  bool             `json:"valida"`
	Usuario *UsuarioResponse `json:"usuario,omitempty"`
}

type UsuarioResponse struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	NombreCompleto string `json:"nombre_completo"`
	Rol            string `json:"rol"`
}
