package postgres

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/vncsmyrnk/digimarket/internal/core/domain"
)

// RevocationRepository is the Postgres-backed revocation ledger. Tokens are
// stored as SHA-256 digests so a dump of the table cannot be replayed.
type RevocationRepository struct {
	db *sql.DB
}

func NewRevocationRepository(db *sql.DB) *RevocationRepository {
	return &RevocationRepository{db: db}
}

func (r *RevocationRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	query := `INSERT INTO revoked_tokens (token_digest, expires_at) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, digestToken(token), expiresAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateToken
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	query := `SELECT 1 FROM revoked_tokens WHERE token_digest = $1 LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, query, digestToken(token)).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up revoked token: %w", err)
	}
	return true, nil
}

func (r *RevocationRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge revoked tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

func digestToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
