package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() ReportingItemParams {
	return ReportingItemParams{
		ExchangeTime:      time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC),
		Direction:         DirectionSending,
		SenderIDScheme:    ServiceProviderIDScheme,
		SenderID:          "POP000001",
		ReceiverIDScheme:  ServiceProviderIDScheme,
		ReceiverID:        "POP000002",
		DocTypeIDScheme:   "busdox-docid-qns",
		DocTypeID:         "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2::Invoice##urn:cen.eu:en16931:2017#compliant#urn:fdc:peppol.eu:2017:poacc:billing:3.0::2.1",
		ProcessIDScheme:   "cenbii-procid-ubl",
		ProcessID:         "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0",
		TransportProtocol: TransportProtocolAS4V2,
		EndUserCountry:    "FI",
		EndUserID:         "eu-1",
	}
}

func TestNewReportingItem(t *testing.T) {
	item, err := NewReportingItem(validParams())
	require.NoError(t, err)

	assert.Equal(t, DirectionSending, item.Direction())
	assert.Equal(t, ScopedID{SchemeID: ServiceProviderIDScheme, Value: "POP000001"}, item.Sender())
	assert.Equal(t, ScopedID{SchemeID: ServiceProviderIDScheme, Value: "POP000002"}, item.Receiver())
	assert.Equal(t, "cenbii-procid-ubl", item.Process().SchemeID)
	assert.Equal(t, TransportProtocolAS4V2, item.TransportProtocol())
	assert.Equal(t, "FI", item.EndUserCountry())
	assert.Equal(t, "eu-1", item.EndUserID())
}

func TestNewReportingItem_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ReportingItemParams)
		wantField string
	}{
		{
			name:      "zero exchange time",
			mutate:    func(p *ReportingItemParams) { p.ExchangeTime = time.Time{} },
			wantField: "ExchangeTime",
		},
		{
			name:      "unknown direction",
			mutate:    func(p *ReportingItemParams) { p.Direction = "Forwarding" },
			wantField: "Direction",
		},
		{
			name:      "empty direction",
			mutate:    func(p *ReportingItemParams) { p.Direction = "" },
			wantField: "Direction",
		},
		{
			name:      "missing sender",
			mutate:    func(p *ReportingItemParams) { p.SenderID = "" },
			wantField: "SenderID",
		},
		{
			name:      "missing receiver scheme",
			mutate:    func(p *ReportingItemParams) { p.ReceiverIDScheme = "" },
			wantField: "ReceiverIDScheme",
		},
		{
			name:      "missing document type",
			mutate:    func(p *ReportingItemParams) { p.DocTypeID = "" },
			wantField: "DocTypeID",
		},
		{
			name:      "missing process",
			mutate:    func(p *ReportingItemParams) { p.ProcessID = "" },
			wantField: "ProcessID",
		},
		{
			name:      "missing transport protocol",
			mutate:    func(p *ReportingItemParams) { p.TransportProtocol = "" },
			wantField: "TransportProtocol",
		},
		{
			name:      "missing end user",
			mutate:    func(p *ReportingItemParams) { p.EndUserID = "" },
			wantField: "EndUserID",
		},
		{
			name:      "lowercase country",
			mutate:    func(p *ReportingItemParams) { p.EndUserCountry = "fi" },
			wantField: "EndUserCountry",
		},
		{
			name:      "three letter country",
			mutate:    func(p *ReportingItemParams) { p.EndUserCountry = "FIN" },
			wantField: "EndUserCountry",
		},
		{
			name:      "empty country",
			mutate:    func(p *ReportingItemParams) { p.EndUserCountry = "" },
			wantField: "EndUserCountry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)

			_, err := NewReportingItem(params)
			require.Error(t, err)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestReportingItem_ServiceProviderSides(t *testing.T) {
	params := validParams()

	sending, err := NewReportingItem(params)
	require.NoError(t, err)
	assert.Equal(t, "POP000001", sending.ReportingServiceProvider().Value)
	assert.Equal(t, "POP000002", sending.OtherServiceProvider().Value)

	params.Direction = DirectionReceiving
	receiving, err := NewReportingItem(params)
	require.NoError(t, err)
	assert.Equal(t, "POP000002", receiving.ReportingServiceProvider().Value)
	assert.Equal(t, "POP000001", receiving.OtherServiceProvider().Value)
}

func TestValidateItems(t *testing.T) {
	good, err := NewReportingItem(validParams())
	require.NoError(t, err)

	require.NoError(t, ValidateItems(nil))
	require.NoError(t, ValidateItems([]ReportingItem{good, good}))

	err = ValidateItems([]ReportingItem{good, {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reporting item 1")
}
