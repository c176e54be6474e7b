package api

import "time"

// ReportingItem is the ingest payload describing one document exchange.
type ReportingItem struct {
	ExchangeTime      time.Time `json:"exchange_time"`
	Direction         string    `json:"direction"`
	SenderIDScheme    string    `json:"sender_id_scheme"`
	SenderID          string    `json:"sender_id"`
	ReceiverIDScheme  string    `json:"receiver_id_scheme"`
	ReceiverID        string    `json:"receiver_id"`
	DocTypeIDScheme   string    `json:"doc_type_id_scheme"`
	DocTypeID         string    `json:"doc_type_id"`
	ProcessIDScheme   string    `json:"process_id_scheme"`
	ProcessID         string    `json:"process_id"`
	TransportProtocol string    `json:"transport_protocol"`
	EndUserCountry    string    `json:"end_user_country"`
	EndUserID         string    `json:"end_user_id"`
}

// ItemReceipt acknowledges one accepted reporting item.
type ItemReceipt struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ReportSummary is the JSON overview of one reporting period.
type ReportSummary struct {
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	TotalItems        int64  `json:"total_items"`
	Incoming          int64  `json:"incoming"`
	Outgoing          int64  `json:"outgoing"`
	DistinctEndUsers  int64  `json:"distinct_end_users"`
	DistinctCountries int64  `json:"distinct_countries"`
}
