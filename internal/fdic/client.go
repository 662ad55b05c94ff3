package fdic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Eringolaw/fdic-bank-explorer/internal/config"
)

// InstitutionFields is the exact field set requested from /institutions.
var InstitutionFields = []string{
	"CERT", "NAME", "CITY", "STNAME", "ZIP", "ADDRESS", "BKCLASS",
	"CHARTER", "ACTIVE", "INSDATE", "REGAGENT", "ASSET", "DEP",
	"LATITUDE", "LONGITUDE", "WEBADDR",
}

// LocationFields is the exact field set requested from /locations.
var LocationFields = []string{
	"CERT", "UNINUM", "NAME", "OFFNAME", "OFFNUM", "ADDRESS", "CITY",
	"STNAME", "ZIP", "COUNTY", "SERVTYPE_DESC", "MAINOFF", "ESTYMD",
	"LATITUDE", "LONGITUDE",
}

const (
	institutionsEndpoint = "/institutions"
	locationsEndpoint    = "/locations"
	activeFilter         = "ACTIVE:1"
	userAgent            = "fdic-bank-explorer/0.1 (+https://github.com/Eringolaw/fdic-bank-explorer)"
)

// Client fetches full datasets from the FDIC BankFind API. Requests are
// paced by a shared rate limiter so paginated pulls stay within the API's
// comfort zone.
type Client struct {
	baseURL  string
	pageSize int
	http     *http.Client
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewClient creates a BankFind client from fetcher configuration.
func NewClient(cfg config.FetcherConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > config.MaxFetchPageSize {
		pageSize = config.MaxFetchPageSize
	}
	pace := cfg.PaceInterval
	if pace <= 0 {
		pace = config.DefaultPaceInterval
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		pageSize: pageSize,
		http:     &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Every(pace), 1),
		logger:   logger,
	}
}

// FetchInstitutions pulls every active insured institution.
func (c *Client) FetchInstitutions(ctx context.Context) ([]map[string]string, error) {
	return c.fetchAll(ctx, institutionsEndpoint, InstitutionFields, activeFilter)
}

// FetchLocations pulls every branch/office location.
func (c *Client) FetchLocations(ctx context.Context) ([]map[string]string, error) {
	return c.fetchAll(ctx, locationsEndpoint, LocationFields, "")
}

// apiResponse is the BankFind envelope. Each record wraps the requested
// fields in a "data" object next to a relevance score.
type apiResponse struct {
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
	Data []struct {
		Data map[string]interface{} `json:"data"`
	} `json:"data"`
}

func (c *Client) fetchAll(ctx context.Context, endpoint string, fields []string, filter string) ([]map[string]string, error) {
	total, err := c.probe(ctx, endpoint, fields, filter)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "starting paginated fetch",
		slog.String("endpoint", endpoint),
		slog.Int("total", total),
		slog.Int("page_size", c.pageSize))

	records := make([]map[string]string, 0, total)
	for offset := 0; offset < total; offset += c.pageSize {
		page, err := c.fetchPage(ctx, endpoint, fields, filter, c.pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("fetch %s page at offset %d: %w", endpoint, offset, err)
		}

		for _, rec := range page.Data {
			records = append(records, coerceRecord(rec.Data, fields))
		}

		c.logger.DebugContext(ctx, "page fetched",
			slog.String("endpoint", endpoint),
			slog.Int("offset", offset),
			slog.Int("records", len(page.Data)))
	}

	c.logger.InfoContext(ctx, "fetch complete",
		slog.String("endpoint", endpoint),
		slog.Int("records", len(records)))

	return records, nil
}

// probe issues a limit=1 request to learn the record count from meta.total.
func (c *Client) probe(ctx context.Context, endpoint string, fields []string, filter string) (int, error) {
	page, err := c.fetchPage(ctx, endpoint, fields, filter, 1, 0)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", endpoint, err)
	}

	c.logger.InfoContext(ctx, "probe complete",
		slog.String("endpoint", endpoint),
		slog.Int("total", page.Meta.Total))

	return page.Meta.Total, nil
}

func (c *Client) fetchPage(ctx context.Context, endpoint string, fields []string, filter string, limit, offset int) (*apiResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("fields", strings.Join(fields, ","))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("format", "json")
	if filter != "" {
		params.Set("filters", filter)
	}

	reqURL := c.baseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page apiResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&page); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &page, nil
}

// coerceRecord flattens a record's values to strings and drops keys
// outside the requested field set. json.Number keeps the literal digits so
// certificate numbers never pick up float artifacts.
func coerceRecord(data map[string]interface{}, fields []string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, field := range fields {
		raw, ok := data[field]
		if !ok || raw == nil {
			continue
		}
		out[field] = coerceValue(raw)
	}
	return out
}

func coerceValue(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case json.Number:
		return strings.TrimSuffix(v.String(), ".0")
	case bool:
		if v {
			return "1"
		}
		return "0"
	case float64:
		// Only reached when the decoder was not number-preserving
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Pace reports the interval between page requests. Exposed for the CLI's
// startup banner.
func (c *Client) Pace() time.Duration {
	return time.Duration(float64(time.Second) / float64(c.limiter.Limit()))
}
