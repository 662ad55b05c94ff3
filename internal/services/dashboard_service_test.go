package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eringolaw/fdic-bank-explorer/internal/dataset"
	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
)

const institutionsFixture = `CERT,NAME,CITY,STNAME,ZIP,ADDRESS,BKCLASS,CHARTER,ACTIVE,INSDATE,REGAGENT,ASSET,DEP,LATITUDE,LONGITUDE,WEBADDR
628,First National Bank,Dallas,Texas,75201,100 Main St,N,NATIONAL,1,1934-01-01,OCC,1000000,800000,32.78,-96.80,https://fnb.example.com
942,Oak Savings Bank,Tulsa,Oklahoma,74103,9 Elm Ave,SM,STATE,1,1952-06-15,FED,500000,420000,36.15,-95.99,
7001,Branchless Trust,Reno,Nevada,89501,1 Lone St,N,NATIONAL,1,1980-01-01,OCC,100000,90000,39.52,-119.81,
`

const locationsFixture = `CERT,UNINUM,NAME,OFFNAME,OFFNUM,ADDRESS,CITY,STNAME,ZIP,COUNTY,SERVTYPE_DESC,MAINOFF,ESTYMD,LATITUDE,LONGITUDE
628,1,First National Bank,Main Office,0,100 Main St,Dallas,Texas,75201,Dallas,Full Service,1,1934-01-01,32.78,-96.80
628,2,First National Bank,Uptown Branch,1,200 Oak St,Dallas,Texas,75201,Dallas,Full Service,0,1970-05-01,32.80,-96.79
628,3,First National Bank,Tulsa Branch,2,40 Cedar Rd,Tulsa,Oklahoma,74103,Tulsa,Full Service,0,1990-09-12,36.15,-95.99
942,4,Oak Savings Bank,Main Office,0,9 Elm Ave,Tulsa,Oklahoma,74103,Tulsa,Full Service,1,1952-06-15,36.16,-95.98
`

func newTestDashboard(t *testing.T) *DashboardService {
	t.Helper()
	dir := t.TempDir()
	instPath := filepath.Join(dir, "institutions.csv")
	locPath := filepath.Join(dir, "locations.csv")
	require.NoError(t, os.WriteFile(instPath, []byte(institutionsFixture), 0o644))
	require.NoError(t, os.WriteFile(locPath, []byte(locationsFixture), 0o644))

	store, err := dataset.Load(context.Background(), instPath, locPath, slog.Default())
	require.NoError(t, err)

	svc, err := NewDashboardService(store, slog.Default())
	require.NoError(t, err)
	return svc
}

func TestNewDashboardService_NilStore(t *testing.T) {
	_, err := NewDashboardService(nil, slog.Default())
	require.ErrorIs(t, err, ErrDatasetUnavailable)
}

func TestCounties(t *testing.T) {
	svc := newTestDashboard(t)
	ctx := context.Background()

	t.Run("known state", func(t *testing.T) {
		counties, err := svc.Counties(ctx, "Texas")
		require.NoError(t, err)
		assert.Equal(t, []string{"ALL", "Dallas"}, counties)
	})

	t.Run("ALL sentinel normalizes to empty scope", func(t *testing.T) {
		counties, err := svc.Counties(ctx, "ALL")
		require.NoError(t, err)
		assert.Equal(t, []string{"ALL"}, counties)
	})

	t.Run("unknown state", func(t *testing.T) {
		_, err := svc.Counties(ctx, "Atlantis")
		require.ErrorIs(t, err, ErrUnknownState)
	})
}

func TestInstitutionInfo(t *testing.T) {
	svc := newTestDashboard(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		info, err := svc.InstitutionInfo(ctx, "628")
		require.NoError(t, err)
		assert.Equal(t, "First National Bank", info.Institution.Name)
	})

	t.Run("float artifact cert resolves", func(t *testing.T) {
		info, err := svc.InstitutionInfo(ctx, "628.0")
		require.NoError(t, err)
		assert.Equal(t, "First National Bank", info.Institution.Name)
	})

	t.Run("unknown cert", func(t *testing.T) {
		_, err := svc.InstitutionInfo(ctx, "999999")
		require.ErrorIs(t, err, ErrInstitutionNotFound)
	})

	t.Run("empty cert", func(t *testing.T) {
		_, err := svc.InstitutionInfo(ctx, "")
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestBranches(t *testing.T) {
	svc := newTestDashboard(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		branches, err := svc.Branches(ctx, "628")
		require.NoError(t, err)
		assert.Len(t, branches, 3)
	})

	t.Run("institution without branches", func(t *testing.T) {
		_, err := svc.Branches(ctx, "7001")
		require.ErrorIs(t, err, ErrNoBranchesFound)
	})
}

func TestStateAggregate(t *testing.T) {
	svc := newTestDashboard(t)
	ctx := context.Background()

	agg, err := svc.StateAggregate(ctx, "628")
	require.NoError(t, err)

	// Two states, Texas first on count
	require.Len(t, agg.Items, 2)
	assert.Equal(t, "Texas", agg.Items[0].Label)
	assert.Equal(t, 2, agg.Items[0].Count)
	assert.Equal(t, "Oklahoma", agg.Items[1].Label)
	assert.Equal(t, 1, agg.Items[1].Count)
}

func TestStateAggregate_EmptyCertPlaceholder(t *testing.T) {
	svc := newTestDashboard(t)

	agg, err := svc.StateAggregate(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, agg.Items)
	assert.NotEmpty(t, agg.Message)
}

func TestTableRows_ResolvesCert(t *testing.T) {
	svc := newTestDashboard(t)

	_, err := svc.TableRows(context.Background(), domain.FilterState{Cert: "999999"})
	require.ErrorIs(t, err, ErrInstitutionNotFound)
}

func TestSnapshot(t *testing.T) {
	svc := newTestDashboard(t)
	ctx := context.Background()

	t.Run("empty selection", func(t *testing.T) {
		views := svc.Snapshot(ctx, domain.FilterState{})
		assert.NotEmpty(t, views.Counties)
		assert.NotEmpty(t, views.Options)
		assert.Empty(t, views.StateChart.Items)
		assert.NotEmpty(t, views.Table.Message)
	})

	t.Run("institution selected", func(t *testing.T) {
		views := svc.Snapshot(ctx, domain.FilterState{Cert: "628.0"})
		assert.Equal(t, "First National Bank", views.Info.Institution.Name)
		assert.Len(t, views.Table.Rows, 3)
		assert.Len(t, views.StateChart.Items, 2)
	})

	t.Run("unknown cert degrades to placeholders", func(t *testing.T) {
		views := svc.Snapshot(ctx, domain.FilterState{Cert: "999999"})
		assert.Empty(t, views.Table.Rows)
	})

	t.Run("geography selection populates area", func(t *testing.T) {
		views := svc.Snapshot(ctx, domain.FilterState{State: "Texas"})
		assert.NotEmpty(t, views.Area.Items)
	})
}

func TestDatasetCounters(t *testing.T) {
	svc := newTestDashboard(t)

	assert.Equal(t, 3, svc.InstitutionCount())
	assert.Equal(t, 4, svc.BranchCount())
	assert.False(t, svc.LoadedAt().IsZero())
}
