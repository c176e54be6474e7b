package eusr

import (
	"math/big"
	"sort"

	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
)

// Subset type discriminators of the end user statistics schema.
const (
	SubsetPerDocTypeProcess        = "PerDT-PR"
	SubsetPerDocTypeProcessCountry = "PerDT-PR-EUC"
	SubsetPerCountry               = "PerEUC"
)

// Meta scheme IDs of the subset key dimensions.
const (
	metaSchemeDocType = "DT"
	metaSchemeProcess = "PR"
	metaSchemeCountry = "CC"
)

const endUserCountrySchemeID = "EndUserCountry"

// ItemList is a closed batch of reporting items for one period. Unlike the
// transaction statistics, the end user statistics count distinct end users
// rather than messages, so a user active on many exchanges contributes once
// per group.
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

// userSet tracks the distinct end users observed per direction.
type userSet struct {
	sending   map[string]struct{}
	receiving map[string]struct{}
	any       map[string]struct{}
}

func newUserSet() *userSet {
	return &userSet{
		sending:   make(map[string]struct{}),
		receiving: make(map[string]struct{}),
		any:       make(map[string]struct{}),
	}
}

func (s *userSet) add(item domain.ReportingItem) {
	id := item.EndUserID()
	s.any[id] = struct{}{}
	if item.Direction().IsSending() {
		s.sending[id] = struct{}{}
	} else {
		s.receiving[id] = struct{}{}
	}
}

func (s *userSet) counts() domain.EndUserCounts {
	return domain.EndUserCounts{
		SendingEndUsers:            big.NewInt(int64(len(s.sending))),
		ReceivingEndUsers:          big.NewInt(int64(len(s.receiving))),
		SendingOrReceivingEndUsers: big.NewInt(int64(len(s.any))),
	}
}

// usersBy buckets the items by a derived key and collects the distinct end
// users of every bucket.
func usersBy[K comparable](items []domain.ReportingItem, keyOf func(domain.ReportingItem) K) map[K]*userSet {
	groups := make(map[K]*userSet)
	for _, item := range items {
		k := keyOf(item)
		s := groups[k]
		if s == nil {
			s = newUserSet()
			groups[k] = s
		}
		s.add(item)
	}
	return groups
}

func (l *ItemList) allUsers() *userSet {
	s := newUserSet()
	for _, item := range l.items {
		s.add(item)
	}
	return s
}

// SendingEndUserCount counts the distinct end users that sent at least one
// document in the period.
func (l *ItemList) SendingEndUserCount() int64 {
	return int64(len(l.allUsers().sending))
}

// ReceivingEndUserCount counts the distinct end users that received at
// least one document in the period.
func (l *ItemList) ReceivingEndUserCount() int64 {
	return int64(len(l.allUsers().receiving))
}

// SendingOrReceivingEndUserCount counts the distinct end users active in
// either direction. A user both sending and receiving counts once.
func (l *ItemList) SendingOrReceivingEndUserCount() int64 {
	return int64(len(l.allUsers().any))
}

// FullSet computes the report-wide distinct end user counts.
func (l *ItemList) FullSet() domain.EndUserCounts {
	return l.allUsers().counts()
}

// Subsets computes the three subset families of the report. Families appear
// in their fixed schema order; within a family the groups are sorted by
// their key values so the output is stable across runs.
func (l *ItemList) Subsets() []domain.EndUserSubset {
	subsets := l.perDocTypeProcess()
	subsets = append(subsets, l.perDocTypeProcessCountry()...)
	subsets = append(subsets, l.perCountry()...)
	return subsets
}

type docTypeProcessKey struct {
	docTypeSchemeID string
	docTypeID       string
	processSchemeID string
	processID       string
}

func docTypeProcessKeyOf(item domain.ReportingItem) docTypeProcessKey {
	return docTypeProcessKey{
		docTypeSchemeID: item.DocType().SchemeID,
		docTypeID:       item.DocType().Value,
		processSchemeID: item.Process().SchemeID,
		processID:       item.Process().Value,
	}
}

func (k docTypeProcessKey) less(o docTypeProcessKey) bool {
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

func (k docTypeProcessKey) reportKeys() []domain.ReportKey {
	return []domain.ReportKey{
		{MetaSchemeID: metaSchemeDocType, SchemeID: k.docTypeSchemeID, Value: k.docTypeID},
		{MetaSchemeID: metaSchemeProcess, SchemeID: k.processSchemeID, Value: k.processID},
	}
}

type docTypeProcessCountryKey struct {
	docTypeProcessKey
	country string
}

func (k docTypeProcessCountryKey) less(o docTypeProcessCountryKey) bool {
	if k.docTypeProcessKey != o.docTypeProcessKey {
		return k.docTypeProcessKey.less(o.docTypeProcessKey)
	}
	return k.country < o.country
}

type countryKey struct {
	country string
}

func (k countryKey) less(o countryKey) bool {
	return k.country < o.country
}

func countryReportKey(country string) domain.ReportKey {
	return domain.ReportKey{MetaSchemeID: metaSchemeCountry, SchemeID: endUserCountrySchemeID, Value: country}
}

func sortedKeys[K comparable](groups map[K]*userSet, less func(a, b K) bool) []K {
	keys := make([]K, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return less(keys[a], keys[b]) })
	return keys
}

func (l *ItemList) perDocTypeProcess() []domain.EndUserSubset {
	groups := usersBy(l.items, docTypeProcessKeyOf)

	subsets := make([]domain.EndUserSubset, 0, len(groups))
	for _, k := range sortedKeys(groups, docTypeProcessKey.less) {
		subsets = append(subsets, domain.EndUserSubset{
			Type:          SubsetPerDocTypeProcess,
			Keys:          k.reportKeys(),
			EndUserCounts: groups[k].counts(),
		})
	}
	return subsets
}

func (l *ItemList) perDocTypeProcessCountry() []domain.EndUserSubset {
	groups := usersBy(l.items, func(item domain.ReportingItem) docTypeProcessCountryKey {
		return docTypeProcessCountryKey{
			docTypeProcessKey: docTypeProcessKeyOf(item),
			country:           item.EndUserCountry(),
		}
	})

	subsets := make([]domain.EndUserSubset, 0, len(groups))
	for _, k := range sortedKeys(groups, docTypeProcessCountryKey.less) {
		keys := append(k.reportKeys(), countryReportKey(k.country))
		subsets = append(subsets, domain.EndUserSubset{
			Type:          SubsetPerDocTypeProcessCountry,
			Keys:          keys,
			EndUserCounts: groups[k].counts(),
		})
	}
	return subsets
}

func (l *ItemList) perCountry() []domain.EndUserSubset {
	groups := usersBy(l.items, func(item domain.ReportingItem) countryKey {
		return countryKey{country: item.EndUserCountry()}
	})

	subsets := make([]domain.EndUserSubset, 0, len(groups))
	for _, k := range sortedKeys(groups, countryKey.less) {
		subsets = append(subsets, domain.EndUserSubset{
			Type:          SubsetPerCountry,
			Keys:          []domain.ReportKey{countryReportKey(k.country)},
			EndUserCounts: groups[k].counts(),
		})
	}
	return subsets
}
