package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"tillpoint/internal/core/audit"
	appctx "tillpoint/internal/core/context"
	"tillpoint/internal/core/id"
	"tillpoint/pkg/logger"
)

// AuditStore persists change-log entries in sys_audit. Payloads above
// the threshold are zstd-compressed. Recording never fails the calling
// operation: errors are logged and dropped.
type AuditStore struct {
	tx                *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

var _ audit.Recorder = (*AuditStore)(nil)

// NewAuditStore creates the change-log store.
func NewAuditStore(tx *TxManager) (*AuditStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditStore{
		tx:                tx,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record implements audit.Recorder.
func (s *AuditStore) Record(ctx context.Context, entity string, entityID id.ID, action audit.Action, payload any) {
	entry := audit.Entry{
		ID:         id.New(),
		Entity:     entity,
		EntityID:   entityID,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
	if user := appctx.GetUser(ctx); user != nil {
		entry.UserID = user.UserID
	}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			logger.Error(ctx, "audit payload marshal failed", "entity", entity, "error", err)
			return
		}
		entry.Payload = raw
		if len(raw) > s.compressThreshold {
			entry.Payload = s.encoder.EncodeAll(raw, nil)
			entry.Compressed = true
		}
	}

	const query = `
		INSERT INTO sys_audit (
			id, entity, entity_id, action, user_id,
			payload, compressed, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.tx.GetQuerier(ctx).Exec(ctx, query,
		entry.ID, entry.Entity, entry.EntityID, entry.Action,
		entry.UserID, entry.Payload, entry.Compressed, entry.OccurredAt,
	)
	if err != nil {
		logger.Error(ctx, "audit record failed", "entity", entity, "action", action, "error", err)
	}
}

// EntityHistory retrieves the change log for one entity, newest first.
func (s *AuditStore) EntityHistory(ctx context.Context, entity string, entityID id.ID, limit int) ([]audit.Entry, error) {
	const query = `
		SELECT id, entity, entity_id, action, user_id,
			   payload, compressed, occurred_at
		FROM sys_audit
		WHERE entity = $1 AND entity_id = $2
		ORDER BY occurred_at DESC
		LIMIT $3`

	rows, err := s.tx.GetQuerier(ctx).Query(ctx, query, entity, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit history: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(
			&e.ID, &e.Entity, &e.EntityID, &e.Action, &e.UserID,
			&e.Payload, &e.Compressed, &e.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}

		if e.Compressed && len(e.Payload) > 0 {
			decompressed, err := s.decoder.DecodeAll(e.Payload, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress audit payload: %w", err)
			}
			e.Payload = decompressed
			e.Compressed = false
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
