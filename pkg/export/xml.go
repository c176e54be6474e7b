package export

import (
	"encoding/xml"
	"fmt"
	"math/big"

	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
)

// XML namespaces of the published report schemas.
const (
	TSRNamespace  = "urn:fdc:peppol.eu:edec:xsd:transaction-statistics-report:1.0"
	EUSRNamespace = "urn:fdc:peppol.eu:edec:xsd:end-user-statistics-report:1.1"
)

type reporterIDXML struct {
	SchemeID string `xml:"schemeID,attr"`
	Value    string `xml:",chardata"`
}

type reportPeriodXML struct {
	StartDate string `xml:"StartDate"`
	EndDate   string `xml:"EndDate"`
}

type headerXML struct {
	ReportPeriod reportPeriodXML `xml:"ReportPeriod"`
	ReporterID   reporterIDXML   `xml:"ReporterID"`
}

type keyXML struct {
	MetaSchemeID string `xml:"metaSchemeID,attr"`
	SchemeID     string `xml:"schemeID,attr"`
	Value        string `xml:",chardata"`
}

type totalXML struct {
	Incoming *big.Int `xml:"Incoming"`
	Outgoing *big.Int `xml:"Outgoing"`
}

type subtotalXML struct {
	Type     string   `xml:"type,attr"`
	Keys     []keyXML `xml:"Key"`
	Incoming *big.Int `xml:"Incoming"`
	Outgoing *big.Int `xml:"Outgoing"`
}

type transactionStatisticsXML struct {
	XMLName         xml.Name      `xml:"TransactionStatisticsReport"`
	Namespace       string        `xml:"xmlns,attr"`
	CustomizationID string        `xml:"CustomizationID"`
	ProfileID       string        `xml:"ProfileID"`
	Header          headerXML     `xml:"Header"`
	Total           totalXML      `xml:"Total"`
	Subtotals       []subtotalXML `xml:"Subtotal"`
}

type endUserCountsXML struct {
	SendingEndUsers            *big.Int `xml:"SendingEndUsers"`
	ReceivingEndUsers          *big.Int `xml:"ReceivingEndUsers"`
	SendingOrReceivingEndUsers *big.Int `xml:"SendingOrReceivingEndUsers"`
}

type subsetXML struct {
	Type                       string   `xml:"type,attr"`
	Keys                       []keyXML `xml:"Key"`
	SendingEndUsers            *big.Int `xml:"SendingEndUsers"`
	ReceivingEndUsers          *big.Int `xml:"ReceivingEndUsers"`
	SendingOrReceivingEndUsers *big.Int `xml:"SendingOrReceivingEndUsers"`
}

type endUserStatisticsXML struct {
	XMLName         xml.Name         `xml:"EndUserStatisticsReport"`
	Namespace       string           `xml:"xmlns,attr"`
	CustomizationID string           `xml:"CustomizationID"`
	ProfileID       string           `xml:"ProfileID"`
	Header          headerXML        `xml:"Header"`
	FullSet         endUserCountsXML `xml:"FullSet"`
	Subsets         []subsetXML      `xml:"Subset"`
}

func headerOf(h domain.ReportHeader) headerXML {
	return headerXML{
		ReportPeriod: reportPeriodXML{
			StartDate: h.ReportPeriod.StartDate.Format(domain.DateLayout),
			EndDate:   h.ReportPeriod.EndDate.Format(domain.DateLayout),
		},
		ReporterID: reporterIDXML{
			SchemeID: h.ReporterID.SchemeID,
			Value:    h.ReporterID.Value,
		},
	}
}

func keysOf(keys []domain.ReportKey) []keyXML {
	out := make([]keyXML, 0, len(keys))
	for _, k := range keys {
		out = append(out, keyXML{MetaSchemeID: k.MetaSchemeID, SchemeID: k.SchemeID, Value: k.Value})
	}
	return out
}

func count(n *big.Int) *big.Int {
	if n == nil {
		return big.NewInt(0)
	}
	return n
}

func marshal(doc any) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	return append(out, '\n'), nil
}

// TransactionStatisticsXML renders the report as a standalone XML document
// in the published TSR schema.
func TransactionStatisticsXML(r *domain.TransactionStatisticsReport) ([]byte, error) {
	doc := transactionStatisticsXML{
		Namespace:       TSRNamespace,
		CustomizationID: r.CustomizationID,
		ProfileID:       r.ProfileID,
		Header:          headerOf(r.Header),
		Total: totalXML{
			Incoming: count(r.Total.Incoming),
			Outgoing: count(r.Total.Outgoing),
		},
	}
	for _, s := range r.Subtotals {
		doc.Subtotals = append(doc.Subtotals, subtotalXML{
			Type:     s.Type,
			Keys:     keysOf(s.Keys),
			Incoming: count(s.Incoming),
			Outgoing: count(s.Outgoing),
		})
	}

	out, err := marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal transaction statistics report: %w", err)
	}
	return out, nil
}

// EndUserStatisticsXML renders the report as a standalone XML document in
// the published EUSR schema.
func EndUserStatisticsXML(r *domain.EndUserStatisticsReport) ([]byte, error) {
	doc := endUserStatisticsXML{
		Namespace:       EUSRNamespace,
		CustomizationID: r.CustomizationID,
		ProfileID:       r.ProfileID,
		Header:          headerOf(r.Header),
		FullSet: endUserCountsXML{
			SendingEndUsers:            count(r.FullSet.SendingEndUsers),
			ReceivingEndUsers:          count(r.FullSet.ReceivingEndUsers),
			SendingOrReceivingEndUsers: count(r.FullSet.SendingOrReceivingEndUsers),
		},
	}
	for _, s := range r.Subsets {
		doc.Subsets = append(doc.Subsets, subsetXML{
			Type:                       s.Type,
			Keys:                       keysOf(s.Keys),
			SendingEndUsers:            count(s.SendingEndUsers),
			ReceivingEndUsers:          count(s.ReceivingEndUsers),
			SendingOrReceivingEndUsers: count(s.SendingOrReceivingEndUsers),
		})
	}

	out, err := marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal end user statistics report: %w", err)
	}
	return out, nil
}
