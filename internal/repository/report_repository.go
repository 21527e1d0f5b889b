package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/healthwatch/internal/domain"
)

// ReportRepository exposes the read-only report catalog.
type ReportRepository interface {
	List(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error)
	GetByID(ctx context.Context, id int) (*domain.Report, error)
}

type staticReportRepository struct {
	reports []domain.Report
}

// NewStaticReportRepository serves the given reports, or the built-in sample
// set when reports is nil.
func NewStaticReportRepository(reports []domain.Report) ReportRepository {
	if reports == nil {
		reports = SampleReports()
	}
	return &staticReportRepository{reports: reports}
}

func (r *staticReportRepository) List(_ context.Context, filter domain.ReportFilter) ([]domain.Report, error) {
	return domain.FilterReports(r.reports, filter), nil
}

func (r *staticReportRepository) GetByID(_ context.Context, id int) (*domain.Report, error) {
	for _, report := range r.reports {
		if report.ID == id {
			found := report
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

type postgresReportRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresReportRepository reads reports from the catalog tables.
func NewPostgresReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &postgresReportRepository{pool: pool}
}

func (r *postgresReportRepository) List(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error) {
	query, args, ok := buildReportListQuery(filter)
	if !ok {
		return []domain.Report{}, nil
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Report{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *report)
	}
	return result, rows.Err()
}

// buildReportListQuery renders the filtered SELECT with numbered placeholders.
// ok is false when the status filter can match nothing.
func buildReportListQuery(filter domain.ReportFilter) (query string, args []any, ok bool) {
	base := `SELECT id, report_type, title, location, status, report_date, priority FROM reports`
	clauses := []string{"1=1"}

	if filter.Status != "" && filter.Status != domain.StatusFilterAll {
		status, valid := domain.ParseReportStatus(filter.Status)
		if !valid {
			return "", nil, false
		}
		args = append(args, string(status))
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		clauses = append(clauses, fmt.Sprintf("report_type=$%d", len(args)))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, "%"+strings.ToLower(term)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(location) LIKE %s)", placeholder, placeholder))
	}

	query = fmt.Sprintf(`%s WHERE %s ORDER BY id ASC`, base, strings.Join(clauses, " AND "))
	return query, args, true
}

func (r *postgresReportRepository) GetByID(ctx context.Context, id int) (*domain.Report, error) {
	const query = `
        SELECT id, report_type, title, location, status, report_date, priority
        FROM reports WHERE id=$1`
	report, err := scanReport(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return report, err
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var report domain.Report
	if err := row.Scan(
		&report.ID,
		&report.Type,
		&report.Title,
		&report.Location,
		&report.Status,
		&report.Date,
		&report.Priority,
	); err != nil {
		return nil, err
	}
	return &report, nil
}
