// Package dataset loads the FDIC institution and branch location tables
// into an immutable in-memory store that every dashboard view queries.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
)

// Column names of the BankFind CSV exports.
const (
	colCert        = "CERT"
	colName        = "NAME"
	colCity        = "CITY"
	colState       = "STNAME"
	colZip         = "ZIP"
	colAddress     = "ADDRESS"
	colBankClass   = "BKCLASS"
	colCharter     = "CHARTER"
	colActive      = "ACTIVE"
	colInsuredDate = "INSDATE"
	colRegAgent    = "REGAGENT"
	colAsset       = "ASSET"
	colDeposits    = "DEP"
	colLatitude    = "LATITUDE"
	colLongitude   = "LONGITUDE"
	colWebAddress  = "WEBADDR"
	colUniNum      = "UNINUM"
	colOfficeName  = "OFFNAME"
	colOfficeNum   = "OFFNUM"
	colCounty      = "COUNTY"
	colServiceType = "SERVTYPE_DESC"
	colMainOffice  = "MAINOFF"
	colEstablished = "ESTYMD"
)

// Load reads both CSV files and builds the immutable Store. It fails with a
// wrapped error naming the offending file when either file is missing,
// unreadable or lacks a required column.
func Load(ctx context.Context, institutionsPath, locationsPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "dataset"))

	institutions, err := loadInstitutions(institutionsPath)
	if err != nil {
		return nil, fmt.Errorf("load institutions from %s: %w", institutionsPath, err)
	}

	branches, err := loadBranches(locationsPath)
	if err != nil {
		return nil, fmt.Errorf("load locations from %s: %w", locationsPath, err)
	}

	store := newStore(institutions, branches, logger)

	logger.InfoContext(ctx, "datasets loaded",
		slog.Int("institutions", len(institutions)),
		slog.Int("branches", len(branches)),
		slog.Int("states", len(store.states)))

	return store, nil
}

func loadInstitutions(path string) ([]domain.Institution, error) {
	var institutions []domain.Institution

	err := readTable(path, []string{colCert, colName}, func(row rowReader) {
		institutions = append(institutions, domain.Institution{
			Cert:        CanonicalCert(row.get(colCert)),
			Name:        row.get(colName),
			City:        row.get(colCity),
			State:       row.get(colState),
			Zip:         row.get(colZip),
			Address:     row.get(colAddress),
			BankClass:   row.get(colBankClass),
			Charter:     row.get(colCharter),
			Active:      row.get(colActive),
			InsuredDate: row.get(colInsuredDate),
			RegAgent:    row.get(colRegAgent),
			Asset:       row.get(colAsset),
			Deposits:    row.get(colDeposits),
			Latitude:    parseCoordinate(row.get(colLatitude)),
			Longitude:   parseCoordinate(row.get(colLongitude)),
			WebAddress:  row.get(colWebAddress),
		})
	})
	if err != nil {
		return nil, err
	}
	return institutions, nil
}

func loadBranches(path string) ([]domain.Branch, error) {
	var branches []domain.Branch

	err := readTable(path, []string{colCert, colState, colCounty}, func(row rowReader) {
		branches = append(branches, domain.Branch{
			Cert:        CanonicalCert(row.get(colCert)),
			UniNum:      row.get(colUniNum),
			Name:        row.get(colName),
			OfficeName:  row.get(colOfficeName),
			OfficeNum:   row.get(colOfficeNum),
			Address:     row.get(colAddress),
			City:        row.get(colCity),
			State:       row.get(colState),
			Zip:         row.get(colZip),
			County:      row.get(colCounty),
			ServiceType: row.get(colServiceType),
			MainOffice:  row.get(colMainOffice),
			Established: row.get(colEstablished),
			Latitude:    parseCoordinate(row.get(colLatitude)),
			Longitude:   parseCoordinate(row.get(colLongitude)),
		})
	})
	if err != nil {
		return nil, err
	}
	return branches, nil
}

// rowReader resolves column names against one CSV record.
type rowReader struct {
	index  map[string]int
	record []string
}

func (r rowReader) get(column string) string {
	i, ok := r.index[column]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func readTable(path string, required []string, visit func(rowReader)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, column := range required {
		if _, ok := index[column]; !ok {
			return fmt.Errorf("missing required column %q", column)
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read CSV row: %w", err)
		}
		visit(rowReader{index: index, record: record})
	}
	return nil
}

// CanonicalCert normalizes a certificate number to its canonical string
// form. Sources disagree on the type: the API reports integers while CSV
// round-trips through spreadsheet tools can produce float renderings like
// "628.0". Both must join, so integral float suffixes are stripped.
func CanonicalCert(raw string) string {
	s := strings.TrimSpace(raw)
	dot := strings.IndexByte(s, '.')
	if dot <= 0 {
		return s
	}
	for _, r := range s[dot+1:] {
		if r != '0' {
			return s
		}
	}
	return s[:dot]
}

// parseCoordinate parses a latitude or longitude value. Blank or
// unparseable values become nil; such rows stay in every tabular and
// aggregate view and are only skipped by the map.
func parseCoordinate(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
