package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/infogpstech/GPSpedia2.0/internal/apierror"
	"github.com/infogpstech/GPSpedia2.0/internal/config"

	"github.com/rs/zerolog/log"
)

// Service identifies one of the deployed Apps Script endpoints. The catalog
// data lives in a spreadsheet behind these call-and-response scripts; every
// request is a POST of `{action, payload}` to the service owning the action.
type Service string

const (
	ServiceAuth     Service = "AUTH"
	ServiceCatalog  Service = "CATALOG"
	ServiceWrite    Service = "WRITE"
	ServiceUsers    Service = "USERS"
	ServiceFeedback Service = "FEEDBACK"
	ServiceLegacy   Service = "LEGACY"
)

// actionService routes each action to its owning deployment. Unrouted actions
// and services without a configured URL fall back to the legacy monolith.
var actionService = map[string]Service{
	"validateSession":      ServiceAuth,
	"getActiveSessions":    ServiceAuth,
	"getCatalogData":       ServiceCatalog,
	"getDropdownData":      ServiceCatalog,
	"checkVehicle":         ServiceCatalog,
	"addOrUpdateCut":       ServiceWrite,
	"addSupplementaryInfo": ServiceWrite,
	"getUsers":             ServiceUsers,
	"recordLike":           ServiceFeedback,
	"reportProblem":        ServiceFeedback,
}

type rpcRequest struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

// rpcEnvelope is the part of every response checked before decoding the rest.
type rpcEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SheetsClient is the HTTP client for the remote sheet services. All calls go
// through a shared circuit breaker so a dead deployment fast-fails instead of
// stalling every request for the full HTTP timeout.
type SheetsClient struct {
	urls       map[Service]string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewSheetsClient(cfg *config.Config, cb *CircuitBreaker) *SheetsClient {
	return &SheetsClient{
		urls: map[Service]string{
			ServiceAuth:     cfg.AuthURL,
			ServiceCatalog:  cfg.CatalogURL,
			ServiceWrite:    cfg.WriteURL,
			ServiceUsers:    cfg.UsersURL,
			ServiceFeedback: cfg.FeedbackURL,
			ServiceLegacy:   cfg.LegacyURL,
		},
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cb:         cb,
	}
}

// Breaker exposes the circuit breaker state for the health endpoint.
func (c *SheetsClient) Breaker() *CircuitBreaker { return c.cb }

// Call posts `{action, payload}` to the service owning the action and decodes
// the response body into out (which may be nil when only the status matters).
// Any transport failure, non-2xx status, undecodable body or status:"error"
// envelope is reported as the same recoverable fetch error.
func (c *SheetsClient) Call(ctx context.Context, action string, payload, out any) error {
	url := c.resolveURL(action)
	if url == "" {
		return apierror.Fetch("No hay endpoint configurado para la acción "+action, nil)
	}

	body, err := json.Marshal(rpcRequest{Action: action, Payload: payload})
	if err != nil {
		return apierror.Fetch("No se pudo serializar la solicitud", err)
	}

	var raw []byte
	err = c.cb.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		// Apps Script rejects preflighted requests; text/plain avoids CORS
		// preflight and is what the deployments expect.
		req.Header.Set("Content-Type", "text/plain")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("sheets: %s devolvió %d", action, resp.StatusCode)
		}
		raw, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return apierror.Fetch("Fallo al contactar el servicio remoto", err)
	}

	var env rpcEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return apierror.Fetch("Respuesta remota mal formada", err)
	}
	if env.Status == "error" {
		return apierror.Fetch("El servicio remoto reportó un error: "+env.Message, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apierror.Fetch("Respuesta remota mal formada", err)
	}
	return nil
}

func (c *SheetsClient) resolveURL(action string) string {
	svc, ok := actionService[action]
	if !ok {
		svc = ServiceLegacy
	}
	url := c.urls[svc]
	if url == "" && svc != ServiceLegacy {
		log.Warn().Str("action", action).Str("service", string(svc)).
			Msg("URL del servicio no configurada, usando endpoint legacy")
		url = c.urls[ServiceLegacy]
	}
	return url
}
