package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/healthwatch/internal/domain"
)

// FacilityRepository exposes the read-only facility catalog.
type FacilityRepository interface {
	List(ctx context.Context) ([]domain.Facility, error)
}

type staticFacilityRepository struct {
	facilities []domain.Facility
}

// NewStaticFacilityRepository serves the given facilities, or the built-in
// sample set when facilities is nil.
func NewStaticFacilityRepository(facilities []domain.Facility) FacilityRepository {
	if facilities == nil {
		facilities = SampleFacilities()
	}
	return &staticFacilityRepository{facilities: facilities}
}

func (r *staticFacilityRepository) List(context.Context) ([]domain.Facility, error) {
	out := make([]domain.Facility, len(r.facilities))
	copy(out, r.facilities)
	return out, nil
}

type postgresFacilityRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresFacilityRepository reads facilities from the catalog tables.
func NewPostgresFacilityRepository(pool *pgxpool.Pool) FacilityRepository {
	return &postgresFacilityRepository{pool: pool}
}

func (r *postgresFacilityRepository) List(ctx context.Context) ([]domain.Facility, error) {
	const query = `
        SELECT id, name, facility_type, capacity, available, lat, lng
        FROM facilities ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Facility{}
	for rows.Next() {
		var f domain.Facility
		if err := rows.Scan(&f.ID, &f.Name, &f.Type, &f.Capacity, &f.Available, &f.Lat, &f.Lng); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}
