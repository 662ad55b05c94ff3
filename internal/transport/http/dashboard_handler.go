package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "github.com/Eringolaw/fdic-bank-explorer/internal/errors"
	custommw "github.com/Eringolaw/fdic-bank-explorer/internal/middleware"
	"github.com/Eringolaw/fdic-bank-explorer/internal/services"
	apiv1 "github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/api/v1"
	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
)

// DashboardHandler serves the dashboard query API with RFC 7807 errors
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validation   *custommw.ValidationMiddleware
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validation:   custommw.NewValidationMiddleware(logger, errorHandler),
	}
}

// Routes returns the dashboard routes with proper Chi patterns
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/geo", func(r chi.Router) {
		r.Get("/states", h.GetStates)
		r.Get("/counties", h.GetCounties)
	})

	r.Route("/institutions", func(r chi.Router) {
		r.Get("/options", h.GetInstitutionOptions)
		r.Route("/{cert}", func(r chi.Router) {
			r.Use(h.CertCtx)
			r.Get("/", h.GetInstitution)
			r.Get("/branches", h.GetBranches)
		})
	})

	r.Route("/aggregates", func(r chi.Router) {
		r.Get("/states", h.GetStateAggregate)
		r.Get("/state-pie", h.GetStatePie)
		r.Get("/counties", h.GetCountyAggregate)
		r.Get("/area-institutions", h.GetAreaInstitutions)
	})

	r.Route("/table", func(r chi.Router) {
		r.Get("/rows", h.GetTableRows)
		r.With(custommw.ContentTypeValidator("application/json")).Post("/export", h.ExportTable)
	})

	r.Get("/map/points", h.GetMapPoints)

	return r
}

// CertCtx middleware validates the cert path parameter
func (h *DashboardHandler) CertCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cert := chi.URLParam(r, "cert")
		if cert == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("cert", "Certificate number is required"))
			return
		}
		if len(cert) > 12 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("cert", "Invalid certificate number format"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetStates handles GET /api/geo/states
func (h *DashboardHandler) GetStates(w http.ResponseWriter, r *http.Request) {
	states := h.service.States(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   states,
		"count":  len(states),
	})
}

// GetCounties handles GET /api/geo/counties?state=
func (h *DashboardHandler) GetCounties(w http.ResponseWriter, r *http.Request) {
	req := apiv1.CountiesRequest{State: r.URL.Query().Get("state")}
	if !h.validRequest(w, r, &req) {
		return
	}

	counties, err := h.service.Counties(r.Context(), req.State)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   counties,
		"count":  len(counties),
	})
}

// GetInstitutionOptions handles GET /api/institutions/options?state=&county=
func (h *DashboardHandler) GetInstitutionOptions(w http.ResponseWriter, r *http.Request) {
	req := apiv1.InstitutionOptionsRequest{
		State:  r.URL.Query().Get("state"),
		County: r.URL.Query().Get("county"),
	}
	if !h.validRequest(w, r, &req) {
		return
	}

	options, err := h.service.InstitutionOptions(r.Context(), req.State, req.County)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   options,
		"count":  len(options),
	})
}

// GetInstitution handles GET /api/institutions/{cert}
func (h *DashboardHandler) GetInstitution(w http.ResponseWriter, r *http.Request) {
	cert := chi.URLParam(r, "cert")

	info, err := h.service.InstitutionInfo(r.Context(), cert)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   info,
	})
}

// GetBranches handles GET /api/institutions/{cert}/branches
func (h *DashboardHandler) GetBranches(w http.ResponseWriter, r *http.Request) {
	cert := chi.URLParam(r, "cert")

	branches, err := h.service.Branches(r.Context(), cert)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   branches,
		"count":  len(branches),
	})
}

// GetStateAggregate handles GET /api/aggregates/states?cert=
func (h *DashboardHandler) GetStateAggregate(w http.ResponseWriter, r *http.Request) {
	req := apiv1.StateAggregateRequest{Cert: r.URL.Query().Get("cert")}
	if !h.validRequest(w, r, &req) {
		return
	}

	agg, err := h.service.StateAggregate(r.Context(), req.Cert)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   agg,
	})
}

// GetStatePie handles GET /api/aggregates/state-pie?cert=
func (h *DashboardHandler) GetStatePie(w http.ResponseWriter, r *http.Request) {
	req := apiv1.StateAggregateRequest{Cert: r.URL.Query().Get("cert")}
	if !h.validRequest(w, r, &req) {
		return
	}

	agg, err := h.service.StatePie(r.Context(), req.Cert)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   agg,
	})
}

// GetCountyAggregate handles GET /api/aggregates/counties?cert=&state=
func (h *DashboardHandler) GetCountyAggregate(w http.ResponseWriter, r *http.Request) {
	req := apiv1.CountyAggregateRequest{
		Cert:  r.URL.Query().Get("cert"),
		State: r.URL.Query().Get("state"),
	}
	if !h.validRequest(w, r, &req) {
		return
	}

	agg, err := h.service.CountyAggregate(r.Context(), req.Cert, req.State)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   agg,
	})
}

// GetAreaInstitutions handles GET /api/aggregates/area-institutions?state=&county=
func (h *DashboardHandler) GetAreaInstitutions(w http.ResponseWriter, r *http.Request) {
	req := apiv1.AreaInstitutionsRequest{
		State:  r.URL.Query().Get("state"),
		County: r.URL.Query().Get("county"),
	}
	if !h.validRequest(w, r, &req) {
		return
	}

	agg, err := h.service.AreaInstitutions(r.Context(), req.State, req.County)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   agg,
	})
}

// GetMapPoints handles GET /api/map/points?cert=
func (h *DashboardHandler) GetMapPoints(w http.ResponseWriter, r *http.Request) {
	req := apiv1.MapPointsRequest{Cert: r.URL.Query().Get("cert")}
	if !h.validRequest(w, r, &req) {
		return
	}

	view, err := h.service.MapPoints(r.Context(), req.Cert)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// GetTableRows handles GET /api/table/rows
func (h *DashboardHandler) GetTableRows(w http.ResponseWriter, r *http.Request) {
	req := tableRowsRequestFromQuery(r)
	if !h.validRequest(w, r, &req) {
		return
	}

	view, err := h.service.TableRows(r.Context(), filterStateFromRequest(req))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
		"count":  len(view.Rows),
	})
}

// tableRowsRequestFromQuery binds the table selection query parameters
func tableRowsRequestFromQuery(r *http.Request) apiv1.TableRowsRequest {
	q := r.URL.Query()
	return apiv1.TableRowsRequest{
		State:          q.Get("state"),
		County:         q.Get("county"),
		Cert:           q.Get("cert"),
		StateOverride:  q.Get("state_override"),
		CountyOverride: q.Get("county_override"),
	}
}

// filterStateFromRequest maps a wire selection onto the domain filter state
func filterStateFromRequest(req apiv1.TableRowsRequest) domain.FilterState {
	return domain.FilterState{
		State:          req.State,
		County:         req.County,
		Cert:           req.Cert,
		StateOverride:  req.StateOverride,
		CountyOverride: req.CountyOverride,
	}
}

// validRequest validates a bound request struct, writing a problem
// response and returning false on failure.
func (h *DashboardHandler) validRequest(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := h.validation.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return false
	}
	return true
}

// handleServiceError maps dashboard service sentinels to API errors
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetReqID(r.Context())
	h.logger.WarnContext(r.Context(), "dashboard query failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("path", r.URL.Path),
	)

	switch {
	case errors.Is(err, services.ErrInstitutionNotFound):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusNotFound,
			"INSTITUTION_NOT_FOUND",
			"No institution with that certificate number",
		))
	case errors.Is(err, services.ErrNoBranchesFound):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusNotFound,
			"NO_BRANCHES_FOUND",
			"No branch locations recorded for this institution",
		))
	case errors.Is(err, services.ErrUnknownState):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest,
			"UNKNOWN_STATE",
			"State is not present in the branch data",
		))
	case errors.Is(err, services.ErrInvalidExportFormat):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest,
			"INVALID_EXPORT_FORMAT",
			"Export format must be csv or xlsx",
		))
	case errors.Is(err, services.ErrInvalidInput):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest,
			"INVALID_INPUT",
			"Invalid request input",
		))
	case errors.Is(err, services.ErrDatasetUnavailable):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusServiceUnavailable,
			"DATASET_UNAVAILABLE",
			"Dataset is not loaded",
		))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
