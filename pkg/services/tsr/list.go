package tsr

import (
	"math/big"
	"sort"

	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
)

// Subtotal type discriminators of the transaction statistics schema.
const (
	SubtotalPerTransportProtocol = "PerTP"
	SubtotalPerServiceProvider   = "PerSP-DT-PR"
	SubtotalPerCountry           = "PerSP-DT-PR-CC"
)

// Meta scheme IDs of the subtotal key dimensions.
const (
	metaSchemeTransportProtocol = "TP"
	metaSchemeServiceProvider   = "SP"
	metaSchemeDocType           = "DT"
	metaSchemeProcess           = "PR"
	metaSchemeCountry           = "CC"
)

const (
	transportProtocolSchemeID = "Peppol"
	endUserCountrySchemeID    = "EndUserCountry"
)

// ItemList is a closed batch of reporting items for one period. The list is
// read-only after construction; aggregate queries never mutate it and may
// run concurrently.
type ItemList struct {
	items []domain.ReportingItem
}

// NewItemList validates every supplied item and keeps a private copy of the
// batch. An empty batch is legal and yields all-zero aggregates.
func NewItemList(items ...domain.ReportingItem) (*ItemList, error) {
	if err := domain.ValidateItems(items); err != nil {
		return nil, err
	}
	l := &ItemList{items: make([]domain.ReportingItem, len(items))}
	copy(l.items, items)
	return l, nil
}

func (l *ItemList) Len() int {
	return len(l.items)
}

// TotalIncomingCount counts the items received by the reporting service
// provider.
func (l *ItemList) TotalIncomingCount() int64 {
	var n int64
	for _, item := range l.items {
		if item.Direction().IsReceiving() {
			n++
		}
	}
	return n
}

// TotalOutgoingCount counts the items sent by the reporting service
// provider.
func (l *ItemList) TotalOutgoingCount() int64 {
	var n int64
	for _, item := range l.items {
		if item.Direction().IsSending() {
			n++
		}
	}
	return n
}

// Subtotals computes the three subtotal families of the report. Families
// appear in their fixed schema order; within a family the groups are sorted
// by their key values so the output is stable across runs.
func (l *ItemList) Subtotals() []domain.TransactionSubtotal {
	subtotals := l.perTransportProtocol()
	subtotals = append(subtotals, l.perServiceProvider()...)
	subtotals = append(subtotals, l.perCountry()...)
	return subtotals
}

type directionCounts struct {
	incoming int64
	outgoing int64
}

// countBy buckets the items by a derived key and accumulates the incoming
// and outgoing message counts of every bucket.
func countBy[K comparable](items []domain.ReportingItem, keyOf func(domain.ReportingItem) K) map[K]*directionCounts {
	groups := make(map[K]*directionCounts)
	for _, item := range items {
		k := keyOf(item)
		c := groups[k]
		if c == nil {
			c = &directionCounts{}
			groups[k] = c
		}
		if item.Direction().IsReceiving() {
			c.incoming++
		} else {
			c.outgoing++
		}
	}
	return groups
}

func messageCounts(c *directionCounts) domain.IncomingOutgoing {
	return domain.IncomingOutgoing{
		Incoming: big.NewInt(c.incoming),
		Outgoing: big.NewInt(c.outgoing),
	}
}

type transportKey struct {
	protocol string
}

func (k transportKey) less(o transportKey) bool {
	return k.protocol < o.protocol
}

type serviceProviderKey struct {
	spSchemeID      string
	spID            string
	docTypeSchemeID string
	docTypeID       string
	processSchemeID string
	processID       string
}

func serviceProviderKeyOf(item domain.ReportingItem) serviceProviderKey {
	other := item.OtherServiceProvider()
	return serviceProviderKey{
		spSchemeID:      other.SchemeID,
		spID:            other.Value,
		docTypeSchemeID: item.DocType().SchemeID,
		docTypeID:       item.DocType().Value,
		processSchemeID: item.Process().SchemeID,
		processID:       item.Process().Value,
	}
}

func (k serviceProviderKey) less(o serviceProviderKey) bool {
	if k.spID != o.spID {
		return k.spID < o.spID
	}
	if k.spSchemeID != o.spSchemeID {
		return k.spSchemeID < o.spSchemeID
	}
	if k.docTypeID != o.docTypeID {
		return k.docTypeID < o.docTypeID
	}
	if k.docTypeSchemeID != o.docTypeSchemeID {
		return k.docTypeSchemeID < o.docTypeSchemeID
	}
	if k.processID != o.processID {
		return k.processID < o.processID
	}
	return k.processSchemeID < o.processSchemeID
}

func (k serviceProviderKey) reportKeys() []domain.ReportKey {
	return []domain.ReportKey{
		{MetaSchemeID: metaSchemeServiceProvider, SchemeID: k.spSchemeID, Value: k.spID},
		{MetaSchemeID: metaSchemeDocType, SchemeID: k.docTypeSchemeID, Value: k.docTypeID},
		{MetaSchemeID: metaSchemeProcess, SchemeID: k.processSchemeID, Value: k.processID},
	}
}

type countryKey struct {
	serviceProviderKey
	country string
}

func (k countryKey) less(o countryKey) bool {
	if k.serviceProviderKey != o.serviceProviderKey {
		return k.serviceProviderKey.less(o.serviceProviderKey)
	}
	return k.country < o.country
}

// sortedKeys flattens a group map into its keys ordered by less.
func sortedKeys[K comparable](groups map[K]*directionCounts, less func(a, b K) bool) []K {
	keys := make([]K, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return less(keys[a], keys[b]) })
	return keys
}

func (l *ItemList) perTransportProtocol() []domain.TransactionSubtotal {
	groups := countBy(l.items, func(item domain.ReportingItem) transportKey {
		return transportKey{protocol: item.TransportProtocol()}
	})

	subtotals := make([]domain.TransactionSubtotal, 0, len(groups))
	for _, k := range sortedKeys(groups, transportKey.less) {
		subtotals = append(subtotals, domain.TransactionSubtotal{
			Type: SubtotalPerTransportProtocol,
			Keys: []domain.ReportKey{
				{MetaSchemeID: metaSchemeTransportProtocol, SchemeID: transportProtocolSchemeID, Value: k.protocol},
			},
			IncomingOutgoing: messageCounts(groups[k]),
		})
	}
	return subtotals
}

func (l *ItemList) perServiceProvider() []domain.TransactionSubtotal {
	groups := countBy(l.items, serviceProviderKeyOf)

	subtotals := make([]domain.TransactionSubtotal, 0, len(groups))
	for _, k := range sortedKeys(groups, serviceProviderKey.less) {
		subtotals = append(subtotals, domain.TransactionSubtotal{
			Type:             SubtotalPerServiceProvider,
			Keys:             k.reportKeys(),
			IncomingOutgoing: messageCounts(groups[k]),
		})
	}
	return subtotals
}

func (l *ItemList) perCountry() []domain.TransactionSubtotal {
	groups := countBy(l.items, func(item domain.ReportingItem) countryKey {
		return countryKey{
			serviceProviderKey: serviceProviderKeyOf(item),
			country:            item.EndUserCountry(),
		}
	})

	subtotals := make([]domain.TransactionSubtotal, 0, len(groups))
	for _, k := range sortedKeys(groups, countryKey.less) {
		keys := append(k.reportKeys(), domain.ReportKey{
			MetaSchemeID: metaSchemeCountry,
			SchemeID:     endUserCountrySchemeID,
			Value:        k.country,
		})
		subtotals = append(subtotals, domain.TransactionSubtotal{
			Type:             SubtotalPerCountry,
			Keys:             keys,
			IncomingOutgoing: messageCounts(groups[k]),
		})
	}
	return subtotals
}
