package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"cbr-rates-service/internal/domain/ports"
	"cbr-rates-service/internal/metrics"
	"cbr-rates-service/internal/service"
	"cbr-rates-service/pkg/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	service ports.RatesService
	events  ports.EventRecorder
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewHandler(service ports.RatesService, events ports.EventRecorder, log *logger.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		events:  events,
		log:     log,
		metrics: metrics,
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) DailyHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.SnapshotRequestsTotal.Inc()

	date := r.URL.Query().Get("date")
	strict := false
	if strictStr := r.URL.Query().Get("strict"); strictStr != "" {
		var err error
		strict, err = strconv.ParseBool(strictStr)
		if err != nil {
			h.sendError(w, http.StatusBadRequest, "invalid strict parameter, use true or false")
			return
		}
	}

	snapshot, err := h.service.GetDaily(r.Context(), date, strict)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.HistoryRequestsTotal.Inc()

	code := r.URL.Query().Get("code")
	dateFrom := r.URL.Query().Get("date_from")
	dateTo := r.URL.Query().Get("date_to")

	if code == "" || dateFrom == "" || dateTo == "" {
		h.sendError(w, http.StatusBadRequest, "missing required parameters: code, date_from and date_to")
		return
	}

	history, err := h.service.GetHistory(r.Context(), code, dateFrom, dateTo)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.events.RecordEvent(r.Context(), "history", fmt.Sprintf("code=%s from=%s to=%s", history.Code, dateFrom, dateTo))
	h.sendJSON(w, http.StatusOK, history)
}

func (h *Handler) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.ConversionRequestsTotal.Inc()

	fromCode := r.URL.Query().Get("from_code")
	toCode := r.URL.Query().Get("to_code")
	if fromCode == "" || toCode == "" {
		h.sendError(w, http.StatusBadRequest, "missing required parameters: from_code and to_code")
		return
	}

	amount := 1.0
	if amountStr := r.URL.Query().Get("amount"); amountStr != "" {
		var err error
		amount, err = strconv.ParseFloat(amountStr, 64)
		if err != nil {
			h.sendError(w, http.StatusBadRequest, "invalid amount parameter")
			return
		}
	}

	date := r.URL.Query().Get("date")

	conversion, err := h.service.Convert(r.Context(), fromCode, toCode, amount, date)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.events.RecordEvent(r.Context(), "convert", fmt.Sprintf("from=%s to=%s amount=%v", conversion.From, conversion.To, amount))
	h.sendJSON(w, http.StatusOK, conversion)
}

func (h *Handler) CurrenciesHandler(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	list, err := h.service.ListCurrencies(r.Context(), date)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, list)
}

func (h *Handler) sendJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) sendError(w http.ResponseWriter, statusCode int, message string) {
	h.sendJSON(w, statusCode, errorResponse{Error: message})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrInvalidDate):
		statusCode = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, service.ErrDateMismatch):
		statusCode = http.StatusConflict
	case errors.Is(err, service.ErrUpstreamUnavailable):
		statusCode = http.StatusBadGateway
	}

	h.log.Error("Service error", "error", err, "status_code", statusCode)
	h.sendError(w, statusCode, err.Error())
}
