package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/provider-directory/internal/domain"
)

const providerColumns = `id, name, email, phone, service, category, description,
       service_area, country, image, approved, created_at, updated_at`

// PostgresProviderStore keeps listings in a providers table via pgx.
type PostgresProviderStore struct {
	pool *pgxpool.Pool
}

// NewPostgresProviderStore instantiates the store.
func NewPostgresProviderStore(pool *pgxpool.Pool) *PostgresProviderStore {
	return &PostgresProviderStore{pool: pool}
}

func (s *PostgresProviderStore) Insert(ctx context.Context, input domain.ProviderInput) (*domain.Provider, error) {
	const query = `
        INSERT INTO providers (name, email, phone, service, category, description, service_area, country, image, approved)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,FALSE)
        RETURNING ` + providerColumns

	row := s.pool.QueryRow(ctx, query,
		input.Name,
		input.Email,
		input.Phone,
		input.Service,
		input.Category,
		input.Description,
		input.ServiceArea,
		string(input.Country),
		input.Image,
	)
	return scanProvider(row)
}

func (s *PostgresProviderStore) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id=$1`
	provider, err := scanProvider(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return provider, nil
}

func (s *PostgresProviderStore) Query(ctx context.Context, filter Filter) ([]domain.Provider, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Country != nil {
		args = append(args, string(*filter.Country))
		clauses = append(clauses, fmt.Sprintf("country=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Approved != nil {
		args = append(args, *filter.Approved)
		clauses = append(clauses, fmt.Sprintf("approved=$%d", len(args)))
	}
	if filter.State != nil && strings.TrimSpace(*filter.State) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.State)+"%")
		clauses = append(clauses, fmt.Sprintf("service_area ILIKE $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM providers WHERE %s ORDER BY created_at DESC`,
		providerColumns, strings.Join(clauses, " AND "))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProviders(rows)
}

func (s *PostgresProviderStore) Update(ctx context.Context, id string, patch domain.ProviderPatch) (*domain.Provider, error) {
	sets := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Email != nil {
		addSet("email", *patch.Email)
	}
	if patch.Phone != nil {
		addSet("phone", *patch.Phone)
	}
	if patch.Service != nil {
		addSet("service", *patch.Service)
	}
	if patch.Category != nil {
		addSet("category", *patch.Category)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.ServiceArea != nil {
		addSet("service_area", *patch.ServiceArea)
	}
	if patch.Country != nil {
		addSet("country", string(*patch.Country))
	}
	if patch.Image != nil {
		addSet("image", *patch.Image)
	}
	if patch.Approved != nil {
		addSet("approved", *patch.Approved)
	}
	sets = append(sets, "updated_at=NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE providers SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), providerColumns)

	provider, err := scanProvider(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return provider, nil
}

func (s *PostgresProviderStore) Delete(ctx context.Context, id string) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM providers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProvider(row pgx.Row) (*domain.Provider, error) {
	var provider domain.Provider
	if err := row.Scan(
		&provider.ID,
		&provider.Name,
		&provider.Email,
		&provider.Phone,
		&provider.Service,
		&provider.Category,
		&provider.Description,
		&provider.ServiceArea,
		&provider.Country,
		&provider.Image,
		&provider.Approved,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &provider, nil
}

func scanProviders(rows pgx.Rows) ([]domain.Provider, error) {
	result := make([]domain.Provider, 0)
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *provider)
	}
	return result, rows.Err()
}
