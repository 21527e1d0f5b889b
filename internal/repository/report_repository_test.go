package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/healthwatch/internal/domain"
)

func TestStaticReportRepositoryList(t *testing.T) {
	repo := NewStaticReportRepository(nil)

	all, err := repo.List(context.Background(), domain.ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	resolved, err := repo.List(context.Background(), domain.ReportFilter{Status: "resolved"})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "Food Poisoning", resolved[0].Title)
}

func TestStaticReportRepositoryGetByID(t *testing.T) {
	repo := NewStaticReportRepository(nil)

	report, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Blocked Drainage", report.Title)

	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStaticFacilityRepositoryReturnsCopy(t *testing.T) {
	repo := NewStaticFacilityRepository(nil)

	first, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 3)
	first[0].Name = "changed"

	second, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "City General Hospital", second[0].Name)
}

func TestMemoryAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()

	acc := &domain.Account{Name: "John", Email: "John@Example.com", Role: domain.RoleUser}
	require.NoError(t, repo.Create(ctx, acc))
	assert.NotEmpty(t, acc.ID)
	assert.False(t, acc.CreatedAt.IsZero())

	got, err := repo.GetByEmail(ctx, " john@example.com")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	err = repo.Create(ctx, &domain.Account{Email: "john@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuildReportListQuery(t *testing.T) {
	health := domain.ReportTypeHealth
	tests := []struct {
		name      string
		filter    domain.ReportFilter
		wantWhere string
		wantArgs  []any
		wantOK    bool
	}{
		{
			name:      "no filter",
			filter:    domain.ReportFilter{Status: domain.StatusFilterAll},
			wantWhere: "WHERE 1=1 ORDER BY id ASC",
			wantOK:    true,
		},
		{
			name:      "status slug",
			filter:    domain.ReportFilter{Status: "in-progress"},
			wantWhere: "WHERE 1=1 AND status=$1 ORDER BY id ASC",
			wantArgs:  []any{"In Progress"},
			wantOK:    true,
		},
		{
			name:      "type and search share numbering",
			filter:    domain.ReportFilter{Status: "pending", Type: &health, Search: " Drain "},
			wantWhere: "WHERE 1=1 AND status=$1 AND report_type=$2 AND (LOWER(title) LIKE $3 OR LOWER(location) LIKE $3) ORDER BY id ASC",
			wantArgs:  []any{"Pending", "Health", "%drain%"},
			wantOK:    true,
		},
		{
			name:   "unknown status",
			filter: domain.ReportFilter{Status: "archived"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, ok := buildReportListQuery(tt.filter)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.True(t, strings.HasPrefix(query, "SELECT id, report_type, title, location, status, report_date, priority FROM reports "))
			assert.True(t, strings.HasSuffix(query, tt.wantWhere), query)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}
