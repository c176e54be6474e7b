package domain

import (
	"fmt"
	"time"
)

// Direction tells whether the reporting service provider sent or received
// the exchanged document.
type Direction string

const (
	DirectionSending   Direction = "Sending"
	DirectionReceiving Direction = "Receiving"
)

func (d Direction) IsValid() bool {
	return d == DirectionSending || d == DirectionReceiving
}

func (d Direction) IsSending() bool {
	return d == DirectionSending
}

func (d Direction) IsReceiving() bool {
	return d == DirectionReceiving
}

const (
	// ServiceProviderIDScheme is the identifier scheme of Peppol service
	// providers, the subject CN of their access point certificate.
	ServiceProviderIDScheme = "CertSubjectCN"

	// TransportProtocolAS4V2 identifies the Peppol AS4 v2 transport
	// profile, the default protocol on the network.
	TransportProtocolAS4V2 = "peppol-transport-as4-v2_0"
)

// ScopedID is an identifier qualified by the scheme it belongs to.
type ScopedID struct {
	SchemeID string
	Value    string
}

// ReportingItemParams carries the attributes of one document exchange.
// Every field is mandatory.
type ReportingItemParams struct {
	ExchangeTime      time.Time
	Direction         Direction
	SenderIDScheme    string
	SenderID          string
	ReceiverIDScheme  string
	ReceiverID        string
	DocTypeIDScheme   string
	DocTypeID         string
	ProcessIDScheme   string
	ProcessID         string
	TransportProtocol string
	EndUserCountry    string
	EndUserID         string
}

// ReportingItem is one recorded document exchange on the network. Items are
// validated by NewReportingItem and immutable afterwards.
type ReportingItem struct {
	exchangeTime      time.Time
	direction         Direction
	senderIDScheme    string
	senderID          string
	receiverIDScheme  string
	receiverID        string
	docTypeIDScheme   string
	docTypeID         string
	processIDScheme   string
	processID         string
	transportProtocol string
	endUserCountry    string
	endUserID         string
}

func NewReportingItem(p ReportingItemParams) (ReportingItem, error) {
	item := ReportingItem{
		exchangeTime:      p.ExchangeTime,
		direction:         p.Direction,
		senderIDScheme:    p.SenderIDScheme,
		senderID:          p.SenderID,
		receiverIDScheme:  p.ReceiverIDScheme,
		receiverID:        p.ReceiverID,
		docTypeIDScheme:   p.DocTypeIDScheme,
		docTypeID:         p.DocTypeID,
		processIDScheme:   p.ProcessIDScheme,
		processID:         p.ProcessID,
		transportProtocol: p.TransportProtocol,
		endUserCountry:    p.EndUserCountry,
		endUserID:         p.EndUserID,
	}
	if err := item.Validate(); err != nil {
		return ReportingItem{}, err
	}
	return item, nil
}

// Validate checks every mandatory field. It exists separately from
// NewReportingItem so that collections can re-check values coming back from
// a storage backend.
func (i ReportingItem) Validate() error {
	if i.exchangeTime.IsZero() {
		return &ValidationError{Field: "ExchangeTime", Reason: "must not be zero"}
	}
	if !i.direction.IsValid() {
		return &ValidationError{Field: "Direction", Reason: fmt.Sprintf("unknown direction %q", string(i.direction))}
	}
	for _, f := range []struct {
		name  string
		value string
	}{
		{"SenderIDScheme", i.senderIDScheme},
		{"SenderID", i.senderID},
		{"ReceiverIDScheme", i.receiverIDScheme},
		{"ReceiverID", i.receiverID},
		{"DocTypeIDScheme", i.docTypeIDScheme},
		{"DocTypeID", i.docTypeID},
		{"ProcessIDScheme", i.processIDScheme},
		{"ProcessID", i.processID},
		{"TransportProtocol", i.transportProtocol},
		{"EndUserID", i.endUserID},
	} {
		if f.value == "" {
			return &ValidationError{Field: f.name, Reason: "must not be empty"}
		}
	}
	if !isCountryCode(i.endUserCountry) {
		return &ValidationError{Field: "EndUserCountry", Reason: "must be an ISO 3166-1 alpha-2 code"}
	}
	return nil
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

func (i ReportingItem) ExchangeTime() time.Time {
	return i.exchangeTime
}

func (i ReportingItem) Direction() Direction {
	return i.direction
}

func (i ReportingItem) Sender() ScopedID {
	return ScopedID{SchemeID: i.senderIDScheme, Value: i.senderID}
}

func (i ReportingItem) Receiver() ScopedID {
	return ScopedID{SchemeID: i.receiverIDScheme, Value: i.receiverID}
}

func (i ReportingItem) DocType() ScopedID {
	return ScopedID{SchemeID: i.docTypeIDScheme, Value: i.docTypeID}
}

func (i ReportingItem) Process() ScopedID {
	return ScopedID{SchemeID: i.processIDScheme, Value: i.processID}
}

func (i ReportingItem) TransportProtocol() string {
	return i.transportProtocol
}

func (i ReportingItem) EndUserCountry() string {
	return i.endUserCountry
}

func (i ReportingItem) EndUserID() string {
	return i.endUserID
}

// ReportingServiceProvider is the party on whose behalf the item is
// reported: the sender when sending, the receiver when receiving.
func (i ReportingItem) ReportingServiceProvider() ScopedID {
	if i.direction.IsSending() {
		return i.Sender()
	}
	return i.Receiver()
}

// OtherServiceProvider is the counterparty of the exchange: the receiver
// when sending, the sender when receiving.
func (i ReportingItem) OtherServiceProvider() ScopedID {
	if i.direction.IsSending() {
		return i.Receiver()
	}
	return i.Sender()
}

// ValidateItems checks a batch of items before aggregation. The error names
// the index of the first invalid item.
func ValidateItems(items []ReportingItem) error {
	for n, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("reporting item %d: %w", n, err)
		}
	}
	return nil
}
