package repository

import "context"

// Reporte is a technician's problem report about a catalog entry.
type Reporte struct {
	CorteID     int    `json:"corteId"`
	Descripcion string `json:"descripcion"`
	Usuario     string `json:"usuario"`
}

// FeedbackRepository forwards likes and problem reports to the remote
// feedback service.
type FeedbackRepository interface {
	RecordLike(ctx context.Context, corteID int, usuario string) error
	ReportProblem(ctx context.Context, reporte Reporte) error
}

type feedbackRepo struct {
	rpc Caller
}

func NewFeedbackRepository(rpc Caller) FeedbackRepository {
	return &feedbackRepo{rpc: rpc}
}

func (r *feedbackRepo) RecordLike(ctx context.Context, corteID int, usuario string) error {
	payload := map[string]any{"corteId": corteID, "usuario": usuario}
	return r.rpc.Call(ctx, "recordLike", payload, nil)
}

func (r *feedbackRepo) ReportProblem(ctx context.Context, reporte Reporte) error {
	return r.rpc.Call(ctx, "reportProblem", reporte, nil)
}
