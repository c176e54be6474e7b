package adapters

import (
	"fmt"
	"time"

	"github.com/edec-tools/peppol-reporting/pkg/models/api"
	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
	"github.com/edec-tools/peppol-reporting/pkg/models/store"
)

func MapReportingItemApiToDomain(in api.ReportingItem) (domain.ReportingItem, error) {
	return domain.NewReportingItem(domain.ReportingItemParams{
		ExchangeTime:      in.ExchangeTime,
		Direction:         domain.Direction(in.Direction),
		SenderIDScheme:    in.SenderIDScheme,
		SenderID:          in.SenderID,
		ReceiverIDScheme:  in.ReceiverIDScheme,
		ReceiverID:        in.ReceiverID,
		DocTypeIDScheme:   in.DocTypeIDScheme,
		DocTypeID:         in.DocTypeID,
		ProcessIDScheme:   in.ProcessIDScheme,
		ProcessID:         in.ProcessID,
		TransportProtocol: in.TransportProtocol,
		EndUserCountry:    in.EndUserCountry,
		EndUserID:         in.EndUserID,
	})
}

func MapReportingItemDomainToApi(item domain.ReportingItem) api.ReportingItem {
	return api.ReportingItem{
		ExchangeTime:      item.ExchangeTime(),
		Direction:         string(item.Direction()),
		SenderIDScheme:    item.Sender().SchemeID,
		SenderID:          item.Sender().Value,
		ReceiverIDScheme:  item.Receiver().SchemeID,
		ReceiverID:        item.Receiver().Value,
		DocTypeIDScheme:   item.DocType().SchemeID,
		DocTypeID:         item.DocType().Value,
		ProcessIDScheme:   item.Process().SchemeID,
		ProcessID:         item.Process().Value,
		TransportProtocol: item.TransportProtocol(),
		EndUserCountry:    item.EndUserCountry(),
		EndUserID:         item.EndUserID(),
	}
}

func MapReportingItemDomainToStore(item domain.ReportingItem) store.ReportingItemRecord {
	return store.ReportingItemRecord{
		ExchangeTime:      item.ExchangeTime().Format(time.RFC3339),
		ExchangeDate:      domain.DateOf(item.ExchangeTime()).Format(domain.DateLayout),
		Direction:         string(item.Direction()),
		SenderScheme:      item.Sender().SchemeID,
		SenderID:          item.Sender().Value,
		ReceiverScheme:    item.Receiver().SchemeID,
		ReceiverID:        item.Receiver().Value,
		DocTypeScheme:     item.DocType().SchemeID,
		DocTypeID:         item.DocType().Value,
		ProcessScheme:     item.Process().SchemeID,
		ProcessID:         item.Process().Value,
		TransportProtocol: item.TransportProtocol(),
		EndUserCountry:    item.EndUserCountry(),
		EndUserID:         item.EndUserID(),
	}
}

func MapReportingItemStoreToDomain(rec store.ReportingItemRecord) (domain.ReportingItem, error) {
	exchangeTime, err := time.Parse(time.RFC3339, rec.ExchangeTime)
	if err != nil {
		return domain.ReportingItem{}, fmt.Errorf("parse exchange time %q: %w", rec.ExchangeTime, err)
	}
	return domain.NewReportingItem(domain.ReportingItemParams{
		ExchangeTime:      exchangeTime,
		Direction:         domain.Direction(rec.Direction),
		SenderIDScheme:    rec.SenderScheme,
		SenderID:          rec.SenderID,
		ReceiverIDScheme:  rec.ReceiverScheme,
		ReceiverID:        rec.ReceiverID,
		DocTypeIDScheme:   rec.DocTypeScheme,
		DocTypeID:         rec.DocTypeID,
		ProcessIDScheme:   rec.ProcessScheme,
		ProcessID:         rec.ProcessID,
		TransportProtocol: rec.TransportProtocol,
		EndUserCountry:    rec.EndUserCountry,
		EndUserID:         rec.EndUserID,
	})
}

func MapPeriodSummaryDomainToApi(s domain.PeriodSummary) api.ReportSummary {
	return api.ReportSummary{
		StartDate:         s.Period.StartDate.Format(domain.DateLayout),
		EndDate:           s.Period.EndDate.Format(domain.DateLayout),
		TotalItems:        s.TotalItems,
		Incoming:          s.Incoming,
		Outgoing:          s.Outgoing,
		DistinctEndUsers:  s.DistinctEndUsers,
		DistinctCountries: s.DistinctCountries,
	}
}
