package sqldb

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
	"github.com/edec-tools/peppol-reporting/pkg/store/backend"
)

func testItem(t *testing.T, direction domain.Direction) domain.ReportingItem {
	t.Helper()

	params := domain.ReportingItemParams{
		ExchangeTime:      time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC),
		Direction:         direction,
		SenderIDScheme:    domain.ServiceProviderIDScheme,
		ReceiverIDScheme:  domain.ServiceProviderIDScheme,
		DocTypeIDScheme:   "busdox-docid-qns",
		DocTypeID:         "DT1",
		ProcessIDScheme:   "cenbii-procid-ubl",
		ProcessID:         "PR1",
		TransportProtocol: domain.TransportProtocolAS4V2,
		EndUserCountry:    "FI",
		EndUserID:         "u1",
	}
	if direction.IsSending() {
		params.SenderID = "POP000001"
		params.ReceiverID = "POP000002"
	} else {
		params.SenderID = "POP000002"
		params.ReceiverID = "POP000001"
	}

	item, err := domain.NewReportingItem(params)
	require.NoError(t, err)
	return item
}

var itemColumns = []string{
	"id", "exchange_time", "direction",
	"sender_scheme", "sender_id", "receiver_scheme", "receiver_id",
	"doc_type_scheme", "doc_type_id", "process_scheme", "process_id",
	"transport_protocol", "end_user_country", "end_user_id",
}

func TestDialect_Rebind(t *testing.T) {
	query := "INSERT INTO t (a, b) VALUES (?, ?)"

	assert.Equal(t, query, DialectSQLite.rebind(query))
	assert.Equal(t, "INSERT INTO t (a, b) VALUES ($1, $2)", DialectPostgres.rebind(query))
}

func TestNew_RequiresDB(t *testing.T) {
	_, err := New(nil, DialectSQLite)
	require.Error(t, err)
}

func TestStore_Init(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS reporting_items").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_reporting_items_exchange_date").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s, err := New(db, DialectSQLite)
	require.NoError(t, err)
	require.NoError(t, s.Init(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_StoreItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	query := regexp.QuoteMeta(`
		INSERT INTO reporting_items (
			id, exchange_time, exchange_date, direction,
			sender_scheme, sender_id, receiver_scheme, receiver_id,
			doc_type_scheme, doc_type_id, process_scheme, process_id,
			transport_protocol, end_user_country, end_user_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	mock.ExpectExec(query).
		WithArgs(
			sqlmock.AnyArg(),
			"2023-06-15T10:00:00Z",
			"2023-06-15",
			"Sending",
			domain.ServiceProviderIDScheme,
			"POP000001",
			domain.ServiceProviderIDScheme,
			"POP000002",
			"busdox-docid-qns",
			"DT1",
			"cenbii-procid-ubl",
			"PR1",
			domain.TransportProtocolAS4V2,
			"FI",
			"u1",
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	s, err := New(db, DialectSQLite)
	require.NoError(t, err)

	require.NoError(t, s.StoreItem(context.Background(), testItem(t, domain.DirectionSending)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Postgres_ReboundQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	insert := regexp.QuoteMeta(`
		INSERT INTO reporting_items (
			id, exchange_time, exchange_date, direction,
			sender_scheme, sender_id, receiver_scheme, receiver_id,
			doc_type_scheme, doc_type_id, process_scheme, process_id,
			transport_protocol, end_user_country, end_user_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`)
	mock.ExpectExec(insert).
		WillReturnResult(sqlmock.NewResult(1, 1))

	scan := regexp.QuoteMeta(`WHERE exchange_date >= $1 AND exchange_date <= $2`)
	mock.ExpectQuery(scan).
		WithArgs("2023-06-01", "2023-06-30").
		WillReturnRows(sqlmock.NewRows(itemColumns))

	s, err := New(db, DialectPostgres)
	require.NoError(t, err)

	require.NoError(t, s.StoreItem(context.Background(), testItem(t, domain.DirectionSending)))

	items, err := backend.LoadItems(context.Background(), s, backend.Filter{
		Period: domain.MonthOf(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_StoreItem_RejectsInvalid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := New(db, DialectSQLite)
	require.NoError(t, err)

	require.Error(t, s.StoreItem(context.Background(), domain.ReportingItem{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ForEachItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	query := regexp.QuoteMeta(`
		SELECT id, exchange_time, direction,
			sender_scheme, sender_id, receiver_scheme, receiver_id,
			doc_type_scheme, doc_type_id, process_scheme, process_id,
			transport_protocol, end_user_country, end_user_id
		FROM reporting_items
		WHERE exchange_date >= ? AND exchange_date <= ?
		ORDER BY exchange_time, id`)
	rows := sqlmock.NewRows(itemColumns).
		AddRow("id-1", "2023-06-01T08:00:00Z", "Sending",
			domain.ServiceProviderIDScheme, "POP000001", domain.ServiceProviderIDScheme, "POP000002",
			"busdox-docid-qns", "DT1", "cenbii-procid-ubl", "PR1",
			domain.TransportProtocolAS4V2, "FI", "u1").
		AddRow("id-2", "2023-06-02T09:30:00Z", "Receiving",
			domain.ServiceProviderIDScheme, "POP000003", domain.ServiceProviderIDScheme, "POP000001",
			"busdox-docid-qns", "DT1", "cenbii-procid-ubl", "PR1",
			domain.TransportProtocolAS4V2, "DE", "u2")
	mock.ExpectQuery(query).
		WithArgs("2023-06-01", "2023-06-30").
		WillReturnRows(rows)

	s, err := New(db, DialectSQLite)
	require.NoError(t, err)

	items, err := backend.LoadItems(context.Background(), s, backend.Filter{
		Period: domain.MonthOf(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.DirectionSending, items[0].Direction())
	assert.Equal(t, "POP000003", items[1].Sender().Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ForEachItem_ServiceProviderScope(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	query := regexp.QuoteMeta(`
		SELECT id, exchange_time, direction,
			sender_scheme, sender_id, receiver_scheme, receiver_id,
			doc_type_scheme, doc_type_id, process_scheme, process_id,
			transport_protocol, end_user_country, end_user_id
		FROM reporting_items
		WHERE exchange_date >= ? AND exchange_date <= ?
		AND ((direction = 'Sending' AND sender_id = ?) OR (direction = 'Receiving' AND receiver_id = ?))
		ORDER BY exchange_time, id`)
	mock.ExpectQuery(query).
		WithArgs("2023-06-01", "2023-06-30", "POP000001", "POP000001").
		WillReturnRows(sqlmock.NewRows(itemColumns))

	s, err := New(db, DialectSQLite)
	require.NoError(t, err)

	items, err := backend.LoadItems(context.Background(), s, backend.Filter{
		Period:            domain.MonthOf(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)),
		ServiceProviderID: "POP000001",
	})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ForEachItem_CorruptRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(itemColumns).
		AddRow("id-1", "2023-06-01T08:00:00Z", "Broadcast",
			domain.ServiceProviderIDScheme, "POP000001", domain.ServiceProviderIDScheme, "POP000002",
			"busdox-docid-qns", "DT1", "cenbii-procid-ubl", "PR1",
			domain.TransportProtocolAS4V2, "FI", "u1")
	mock.ExpectQuery("SELECT id, exchange_time, direction").
		WillReturnRows(rows)

	s, err := New(db, DialectSQLite)
	require.NoError(t, err)

	err = s.ForEachItem(context.Background(), backend.Filter{
		Period: domain.MonthOf(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)),
	}, func(domain.ReportingItem) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reporting item id-1")
}
