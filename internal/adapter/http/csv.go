package http

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Leading BOM so spreadsheet tools pick up UTF-8 for the Cyrillic names.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (h *Handler) DailyCSVHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.ExportRequestsTotal.Inc()

	date := r.URL.Query().Get("date")

	snapshot, err := h.service.GetDaily(r.Context(), date, false)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)

	cw := csv.NewWriter(&buf)
	_ = cw.Write([]string{"char_code", "name", "nominal", "rub_per_nominal", "rub_per_1"})

	for _, item := range snapshot.Items {
		rawValue := ""
		perUnit := ""
		if item.Value != nil {
			rawValue = strconv.FormatFloat(*item.Value, 'f', -1, 64)
			if *item.Value != 0 && item.Nominal != 0 {
				perUnit = fmt.Sprintf("%.6f", *item.Value/float64(item.Nominal))
			}
		}

		_ = cw.Write([]string{
			item.CharCode,
			item.Name,
			strconv.Itoa(item.Nominal),
			rawValue,
			perUnit,
		})
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		h.log.Error("Failed to build CSV export", "error", err)
		h.sendError(w, http.StatusInternalServerError, "failed to build CSV export")
		return
	}

	fileDate := snapshot.Date
	if fileDate == "" {
		fileDate = "today"
	}
	filename := fmt.Sprintf("cbr_daily_%s.csv", strings.ReplaceAll(fileDate, ".", "-"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(buf.Bytes()); err != nil {
		h.log.Error("Failed to write CSV response", "error", err)
	}
}
