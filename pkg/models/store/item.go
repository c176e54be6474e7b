package store

type ReportingItemRecord struct {
	ID                string `json:"id"`
	ExchangeTime      string `json:"exchange_time"`
	ExchangeDate      string `json:"exchange_date"`
	Direction         string `json:"direction"`
	SenderScheme      string `json:"sender_scheme"`
	SenderID          string `json:"sender_id"`
	ReceiverScheme    string `json:"receiver_scheme"`
	ReceiverID        string `json:"receiver_id"`
	DocTypeScheme     string `json:"doc_type_scheme"`
	DocTypeID         string `json:"doc_type_id"`
	ProcessScheme     string `json:"process_scheme"`
	ProcessID         string `json:"process_id"`
	TransportProtocol string `json:"transport_protocol"`
	EndUserCountry    string `json:"end_user_country"`
	EndUserID         string `json:"end_user_id"`
}
