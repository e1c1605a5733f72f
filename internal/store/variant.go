package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/gridstore/network-store/internal/models"
	srvErrors "github.com/gridstore/network-store/pkg/errors"
)

// VariantStore registers the variants of a network.
type VariantStore struct {
	db QueryInterceptor
}

func NewVariantStore(db QueryInterceptor) *VariantStore {
	return &VariantStore{db: db}
}

func (s *VariantStore) Create(ctx context.Context, v models.Variant) error {
	var source any
	if v.SourceVariantNum != nil {
		source = *v.SourceVariantNum
	}
	_, err := s.db.ExecContext(ctx, queryInsertVariant, v.NetworkID.String(), v.Num, v.ID, source)
	return err
}

// Get returns the variant or a ResourceNotFoundError.
func (s *VariantStore) Get(ctx context.Context, networkID uuid.UUID, variantNum int) (*models.Variant, error) {
	row := s.db.QueryRowContext(ctx, queryGetVariant, networkID.String(), variantNum)
	v, err := scanVariant(row, networkID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewVariantNotFoundError(networkID.String(), variantNum)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VariantStore) List(ctx context.Context, networkID uuid.UUID) ([]models.Variant, error) {
	rows, err := s.db.QueryContext(ctx, queryListVariants, networkID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []models.Variant
	for rows.Next() {
		v, err := scanVariant(rows, networkID)
		if err != nil {
			return nil, err
		}
		variants = append(variants, *v)
	}
	return variants, rows.Err()
}

// IDExists tells whether a variant of the network already carries the name variantID.
func (s *VariantStore) IDExists(ctx context.Context, networkID uuid.UUID, variantID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, queryCountVariantID, networkID.String(), variantID).Scan(&count)
	return count > 0, err
}

func (s *VariantStore) Delete(ctx context.Context, networkID uuid.UUID, variantNum int) error {
	_, err := s.db.ExecContext(ctx, queryDeleteVariant, networkID.String(), variantNum)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVariant(row scanner, networkID uuid.UUID) (*models.Variant, error) {
	var (
		v      models.Variant
		source sql.NullInt64
	)
	if err := row.Scan(&v.Num, &v.ID, &source, &v.CreatedAt); err != nil {
		return nil, err
	}
	v.NetworkID = networkID
	if source.Valid {
		n := int(source.Int64)
		v.SourceVariantNum = &n
	}
	return &v, nil
}
