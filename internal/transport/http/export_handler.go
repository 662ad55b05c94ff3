package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	apierrors "github.com/Eringolaw/fdic-bank-explorer/internal/errors"
	"github.com/Eringolaw/fdic-bank-explorer/internal/exporter"
	"github.com/Eringolaw/fdic-bank-explorer/internal/services"
	apiv1 "github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/api/v1"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportTable handles POST /api/table/export. The body carries the full
// filter selection plus the download format; the response streams the
// current table view as an attachment.
func (h *DashboardHandler) ExportTable(w http.ResponseWriter, r *http.Request) {
	var req apiv1.TableExportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if !h.validRequest(w, r, &req) {
		return
	}

	view, err := h.service.TableRows(r.Context(), filterStateFromRequest(req.TableRowsRequest))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	rows := exporter.TableRowValues(view.Rows)
	filename := fmt.Sprintf("branches_%s.%s", time.Now().Format("20060102_150405"), req.Format)

	// Render into memory first so a mid-export failure can still produce
	// a problem response instead of a truncated download.
	var buf bytes.Buffer
	switch req.Format {
	case "csv":
		if _, err := exporter.NewCSVWriter(h.logger).WriteTable(&buf, exporter.TableHeaders, rows); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ExportError(err))
			return
		}
		w.Header().Set("Content-Type", contentTypeCSV)
	case "xlsx":
		if err := exporter.WriteTableXLSX(&buf, exporter.TableHeaders, rows); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ExportError(err))
			return
		}
		w.Header().Set("Content-Type", contentTypeXLSX)
	default:
		h.handleServiceError(w, r, fmt.Errorf("%w: %q", services.ErrInvalidExportFormat, req.Format))
		return
	}

	h.logger.InfoContext(r.Context(), "table exported",
		slog.String("format", req.Format),
		slog.Int("rows", len(rows)),
		slog.String("filename", filename),
	)

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
