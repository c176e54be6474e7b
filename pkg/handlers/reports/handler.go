package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edec-tools/peppol-reporting/pkg/adapters"
	"github.com/edec-tools/peppol-reporting/pkg/export"
	"github.com/edec-tools/peppol-reporting/pkg/models/api"
	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
	"github.com/edec-tools/peppol-reporting/pkg/store/backend"
)

// Generator builds the periodic reports served by the handler.
type Generator interface {
	TransactionStatistics(ctx context.Context, period domain.ReportPeriod) (*domain.TransactionStatisticsReport, error)
	EndUserStatistics(ctx context.Context, period domain.ReportPeriod) (*domain.EndUserStatisticsReport, error)
	Summary(ctx context.Context, period domain.ReportPeriod) (domain.PeriodSummary, error)
}

type Handler struct {
	store     backend.Store
	generator Generator
}

func NewHandler(store backend.Store, generator Generator) *Handler {
	return &Handler{
		store:     store,
		generator: generator,
	}
}

// SubmitItem ingests one reporting item and acknowledges it with a receipt.
func (h *Handler) SubmitItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var payload api.ReportingItem
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body. Expected a JSON reporting item", http.StatusBadRequest)
		return
	}

	item, err := adapters.MapReportingItemApiToDomain(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.StoreItem(ctx, item); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Msg("failed to store reporting item")
		http.Error(w, "failed to store reporting item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	err = json.NewEncoder(w).Encode(api.ItemReceipt{ID: uuid.NewString(), Status: "accepted"})
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode item receipt")
	}
}

// GetTransactionReport serves the TSR of the requested month as XML.
func (h *Handler) GetTransactionReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	period, err := monthPeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.generator.TransactionStatistics(ctx, period)
	if err != nil {
		logger.Error().
			Err(err).
			Str("period", period.String()).
			Msg("failed to build transaction statistics report")
		http.Error(w, "failed to build transaction statistics report", http.StatusInternalServerError)
		return
	}

	out, err := export.TransactionStatisticsXML(report)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to render transaction statistics report")
		http.Error(w, "failed to render transaction statistics report", http.StatusInternalServerError)
		return
	}
	writeXML(w, logger, out)
}

// GetEndUserReport serves the EUSR of the requested month as XML.
func (h *Handler) GetEndUserReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	period, err := monthPeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.generator.EndUserStatistics(ctx, period)
	if err != nil {
		logger.Error().
			Err(err).
			Str("period", period.String()).
			Msg("failed to build end user statistics report")
		http.Error(w, "failed to build end user statistics report", http.StatusInternalServerError)
		return
	}

	out, err := export.EndUserStatisticsXML(report)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to render end user statistics report")
		http.Error(w, "failed to render end user statistics report", http.StatusInternalServerError)
		return
	}
	writeXML(w, logger, out)
}

// GetSummary serves the JSON counts overview of the requested month.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	period, err := monthPeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.generator.Summary(ctx, period)
	if err != nil {
		logger.Error().
			Err(err).
			Str("period", period.String()).
			Msg("failed to build period summary")
		http.Error(w, "failed to build period summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(adapters.MapPeriodSummaryDomainToApi(summary))
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode period summary")
	}
}

func monthPeriod(r *http.Request) (domain.ReportPeriod, error) {
	month := r.URL.Query().Get("month")
	if month == "" {
		return domain.ReportPeriod{}, fmt.Errorf("missing 'month' query parameter. Expected format: YYYY-MM")
	}
	return domain.ParseMonth(month)
}

func writeXML(w http.ResponseWriter, logger *zerolog.Logger, out []byte) {
	w.Header().Set("Content-Type", "application/xml")
	if _, err := w.Write(out); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to write report response")
	}
}
