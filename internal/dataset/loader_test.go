package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const institutionsFixture = `CERT,NAME,CITY,STNAME,ZIP,ADDRESS,BKCLASS,CHARTER,ACTIVE,INSDATE,REGAGENT,ASSET,DEP,LATITUDE,LONGITUDE,WEBADDR
628,First National Bank,Dallas,Texas,75201,100 Main St,N,NATIONAL,1,1934-01-01,OCC,1000000,800000,32.78,-96.80,https://fnb.example.com
942,Oak Savings Bank,Tulsa,Oklahoma,74103,9 Elm Ave,SM,STATE,1,1952-06-15,FED,500000,420000,36.15,-95.99,
628.0,Duplicate Bank,Nowhere,Texas,75000,,N,,1,,,,,bad,,
`

const locationsFixture = `CERT,UNINUM,NAME,OFFNAME,OFFNUM,ADDRESS,CITY,STNAME,ZIP,COUNTY,SERVTYPE_DESC,MAINOFF,ESTYMD,LATITUDE,LONGITUDE
628,1,First National Bank,Main Office,0,100 Main St,Dallas,Texas,75201,Dallas,Full Service,1,1934-01-01,32.78,-96.80
628,2,First National Bank,Uptown Branch,1,200 Oak St,Dallas,Texas,75201,Dallas,Full Service,0,1970-05-01,32.80,-96.79
628,3,First National Bank,Fort Worth Branch,2,300 Elm St,Fort Worth,Texas,76102,Tarrant,Limited Service,0,1985-03-10,not-a-number,
628,4,First National Bank,Tulsa Branch,3,40 Cedar Rd,Tulsa,Oklahoma,74103,Tulsa,Full Service,0,1990-09-12,36.15,-95.99
942,5,Oak Savings Bank,Main Office,0,9 Elm Ave,Tulsa,Oklahoma,74103,Tulsa,Full Service,1,1952-06-15,36.16,-95.98
,6,Orphan Office,Orphan,0,1 Nowhere,Austin,Texas,78701,Travis,Full Service,0,2000-01-01,30.27,-97.74
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadFixtureStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	instPath := writeFixture(t, dir, "institutions.csv", institutionsFixture)
	locPath := writeFixture(t, dir, "locations.csv", locationsFixture)

	store, err := Load(context.Background(), instPath, locPath, slog.Default())
	require.NoError(t, err)
	return store
}

func TestLoad(t *testing.T) {
	store := loadFixtureStore(t)

	assert.Equal(t, 3, store.InstitutionCount())
	assert.Equal(t, 6, store.BranchCount())
	assert.Equal(t, []string{"Oklahoma", "Texas"}, store.States())
}

func TestLoad_DuplicateCertFirstWins(t *testing.T) {
	store := loadFixtureStore(t)

	inst, ok := store.InstitutionFor("628")
	require.True(t, ok)
	assert.Equal(t, "First National Bank", inst.Name)
}

func TestLoad_Coordinates(t *testing.T) {
	store := loadFixtureStore(t)

	branches := store.BranchesFor("628")
	require.Len(t, branches, 4)

	assert.True(t, branches[0].HasCoordinates())
	// Unparseable latitude and missing longitude both become nil.
	assert.Nil(t, branches[2].Latitude)
	assert.Nil(t, branches[2].Longitude)
	assert.False(t, branches[2].HasCoordinates())
}

func TestLoad_OrphanBranchKeptOutOfCertIndex(t *testing.T) {
	store := loadFixtureStore(t)

	assert.Empty(t, store.BranchesFor(""))
	// The orphan row still contributes to geography.
	assert.Contains(t, store.CountiesIn("Texas"), "Travis")
}

func TestLoad_BOMHeader(t *testing.T) {
	dir := t.TempDir()
	instPath := writeFixture(t, dir, "institutions.csv",
		"\uFEFFCERT,NAME\n99,BOM Bank\n")
	locPath := writeFixture(t, dir, "locations.csv", locationsFixture)

	store, err := Load(context.Background(), instPath, locPath, slog.Default())
	require.NoError(t, err)

	inst, ok := store.InstitutionFor("99")
	require.True(t, ok)
	assert.Equal(t, "BOM Bank", inst.Name)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	instPath := writeFixture(t, dir, "institutions.csv", institutionsFixture)
	locPath := writeFixture(t, dir, "locations.csv", locationsFixture)
	noCountyPath := writeFixture(t, dir, "nocounty.csv",
		"CERT,UNINUM,NAME,STNAME\n628,1,First National Bank,Texas\n")

	tests := []struct {
		name         string
		institutions string
		locations    string
		wantErr      string
	}{
		{
			name:         "missing institutions file",
			institutions: filepath.Join(dir, "absent.csv"),
			locations:    locPath,
			wantErr:      "load institutions",
		},
		{
			name:         "missing locations file",
			institutions: instPath,
			locations:    filepath.Join(dir, "absent.csv"),
			wantErr:      "load locations",
		},
		{
			name:         "missing required column",
			institutions: instPath,
			locations:    noCountyPath,
			wantErr:      "missing required column \"COUNTY\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.institutions, tt.locations, slog.Default())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCanonicalCert(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain integer", in: "628", want: "628"},
		{name: "float rendering", in: "628.0", want: "628"},
		{name: "multiple zero decimals", in: "628.000", want: "628"},
		{name: "whitespace", in: " 628 ", want: "628"},
		{name: "non integral float", in: "628.50", want: "628.50"},
		{name: "trailing dot", in: "628.", want: "628"},
		{name: "empty", in: "", want: ""},
		{name: "bare fraction", in: ".0", want: ".0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalCert(tt.in))
		})
	}
}
