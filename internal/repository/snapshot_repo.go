package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CatalogoSnapshot persists the last successfully fetched catalog so a cold
// start can still serve a (possibly stale) catalog when the remote sheet
// services are down. Exactly one row is kept.
type CatalogoSnapshot struct {
	ID        uint `gorm:"primaryKey"`
	Payload   []byte
	FetchedAt time.Time
}

func (CatalogoSnapshot) TableName() string { return "catalogo_snapshots" }

type SnapshotRepository interface {
	Guardar(ctx context.Context, payload []byte) error
	// Ultimo returns (nil, zero, nil) when no snapshot has been stored yet.
	Ultimo(ctx context.Context) ([]byte, time.Time, error)
}

type snapshotRepo struct{ db *gorm.DB }

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository { return &snapshotRepo{db: db} }

func (r *snapshotRepo) Guardar(ctx context.Context, payload []byte) error {
	snap := CatalogoSnapshot{ID: 1, Payload: payload, FetchedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).Save(&snap).Error
}

func (r *snapshotRepo) Ultimo(ctx context.Context) ([]byte, time.Time, error) {
	var snap CatalogoSnapshot
	err := r.db.WithContext(ctx).First(&snap, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	return snap.Payload, snap.FetchedAt, nil
}
