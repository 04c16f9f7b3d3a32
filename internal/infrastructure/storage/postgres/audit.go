package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/klauspost/compress/zstd"

	"backoffice/internal/domain/audit"
)

// Compression markers stored alongside the changes payload.
const (
	compressionNone = "none"
	compressionZstd = "zstd"
)

// compressThreshold is the payload size above which changes are stored
// zstd-compressed. Document snapshots with many lines can get large.
const compressThreshold = 10 * 1024

// AuditRecorder persists audit entries to the audit_log table. It joins
// whatever transaction is active in the context, so audit rows commit or
// roll back together with the change they describe.
type AuditRecorder struct {
	txManager *TxManager
	encoder   *zstd.Encoder
}

var _ audit.Recorder = (*AuditRecorder)(nil)

// NewAuditRecorder creates an audit recorder.
func NewAuditRecorder(txManager *TxManager) (*AuditRecorder, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	return &AuditRecorder{txManager: txManager, encoder: encoder}, nil
}

// Record implements audit.Recorder.
func (r *AuditRecorder) Record(ctx context.Context, entry audit.Entry) error {
	changes := []byte(entry.Changes)
	var compressed []byte
	algo := compressionNone
	if len(changes) > compressThreshold {
		compressed = r.encoder.EncodeAll(changes, nil)
		changes = nil
		algo = compressionZstd
	}

	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("audit_log").
		Columns("id", "entity_type", "entity_id", "action", "user_id",
			"changes", "changes_compressed", "compression_algo", "created_at").
		Values(entry.ID, entry.EntityType, entry.EntityID, entry.Action, entry.UserID,
			changes, compressed, algo, entry.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
