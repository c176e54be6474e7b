package domain

import "math/big"

// ReportHeader carries the reporting period and the identity of the service
// provider submitting the report
type ReportHeader struct {
	ReportPeriod ReportPeriod
	ReporterID   ScopedID
}

// ReportKey is one dimension value of a subtotal or subset group
type ReportKey struct {
	MetaSchemeID string
	SchemeID     string
	Value        string
}

// IncomingOutgoing is a pair of message counts
type IncomingOutgoing struct {
	Incoming *big.Int
	Outgoing *big.Int
}

// TransactionSubtotal is one group of a transaction statistics breakdown
type TransactionSubtotal struct {
	Type string
	Keys []ReportKey
	IncomingOutgoing
}

// TransactionStatisticsReport is the complete data of one TSR document
type TransactionStatisticsReport struct {
	CustomizationID string
	ProfileID       string
	Header          ReportHeader
	Total           IncomingOutgoing
	Subtotals       []TransactionSubtotal
}

// EndUserCounts is the distinct end user metric triple of the EUSR
type EndUserCounts struct {
	SendingEndUsers            *big.Int
	ReceivingEndUsers          *big.Int
	SendingOrReceivingEndUsers *big.Int
}

// EndUserSubset is one group of an end user statistics breakdown
type EndUserSubset struct {
	Type string
	Keys []ReportKey
	EndUserCounts
}

// EndUserStatisticsReport is the complete data of one EUSR document
type EndUserStatisticsReport struct {
	CustomizationID string
	ProfileID       string
	Header          ReportHeader
	FullSet         EndUserCounts
	Subsets         []EndUserSubset
}

// PeriodSummary is an operational overview of the items collected for one
// reporting period
type PeriodSummary struct {
	Period            ReportPeriod
	TotalItems        int64
	Incoming          int64
	Outgoing          int64
	DistinctEndUsers  int64
	DistinctCountries int64
}
