package redisdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/edec-tools/peppol-reporting/pkg/adapters"
	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
	storemodels "github.com/edec-tools/peppol-reporting/pkg/models/store"
	"github.com/edec-tools/peppol-reporting/pkg/store/backend"
)

const (
	itemKeyPrefix = "peppol:reporting:item:"
	dayKeyPrefix  = "peppol:reporting:day:"

	dialTimeout = 5 * time.Second
)

// Store keeps reporting items in redis: one hash per item plus a per-day
// list of item IDs for period scans. Writes go through a transaction so a
// day list never references a missing hash.
type Store struct {
	rdb *goredis.Client
}

// Open connects to redis and verifies the connection with a ping.
func Open(ctx context.Context, cfg backend.RedisConfig) (*Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis backend requires an address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Store{rdb: rdb}, nil
}

// Factory adapts Open to the backend registry.
func Factory(cfg backend.Config) (backend.Store, error) {
	return Open(context.Background(), cfg.Redis)
}

func itemKey(id string) string {
	return itemKeyPrefix + id
}

func dayKey(date time.Time) string {
	return dayKeyPrefix + date.Format(domain.DateLayout)
}

func itemFields(rec storemodels.ReportingItemRecord) map[string]string {
	return map[string]string{
		"exchange_time":      rec.ExchangeTime,
		"exchange_date":      rec.ExchangeDate,
		"direction":          rec.Direction,
		"sender_scheme":      rec.SenderScheme,
		"sender_id":          rec.SenderID,
		"receiver_scheme":    rec.ReceiverScheme,
		"receiver_id":        rec.ReceiverID,
		"doc_type_scheme":    rec.DocTypeScheme,
		"doc_type_id":        rec.DocTypeID,
		"process_scheme":     rec.ProcessScheme,
		"process_id":         rec.ProcessID,
		"transport_protocol": rec.TransportProtocol,
		"end_user_country":   rec.EndUserCountry,
		"end_user_id":        rec.EndUserID,
	}
}

func recordFromFields(id string, fields map[string]string) storemodels.ReportingItemRecord {
	return storemodels.ReportingItemRecord{
		ID:                id,
		ExchangeTime:      fields["exchange_time"],
		ExchangeDate:      fields["exchange_date"],
		Direction:         fields["direction"],
		SenderScheme:      fields["sender_scheme"],
		SenderID:          fields["sender_id"],
		ReceiverScheme:    fields["receiver_scheme"],
		ReceiverID:        fields["receiver_id"],
		DocTypeScheme:     fields["doc_type_scheme"],
		DocTypeID:         fields["doc_type_id"],
		ProcessScheme:     fields["process_scheme"],
		ProcessID:         fields["process_id"],
		TransportProtocol: fields["transport_protocol"],
		EndUserCountry:    fields["end_user_country"],
		EndUserID:         fields["end_user_id"],
	}
}

func (s *Store) StoreItem(ctx context.Context, item domain.ReportingItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	rec := adapters.MapReportingItemDomainToStore(item)
	rec.ID = uuid.NewString()

	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, itemKey(rec.ID), itemFields(rec))
		pipe.RPush(ctx, dayKey(item.ExchangeTime()), rec.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store reporting item: %w", err)
	}
	return nil
}

func (s *Store) ForEachItem(ctx context.Context, f backend.Filter, fn func(domain.ReportingItem) error) error {
	for _, day := range f.Period.Days() {
		ids, err := s.rdb.LRange(ctx, dayKey(day), 0, -1).Result()
		if err != nil {
			return fmt.Errorf("read day index %s: %w", day.Format(domain.DateLayout), err)
		}
		if len(ids) == 0 {
			continue
		}

		cmds := make([]*goredis.MapStringStringCmd, len(ids))
		pipe := s.rdb.Pipeline()
		for n, id := range ids {
			cmds[n] = pipe.HGetAll(ctx, itemKey(id))
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("read reporting items: %w", err)
		}

		for n, cmd := range cmds {
			fields := cmd.Val()
			if len(fields) == 0 {
				return fmt.Errorf("reporting item %s: hash missing", ids[n])
			}

			item, err := adapters.MapReportingItemStoreToDomain(recordFromFields(ids[n], fields))
			if err != nil {
				return fmt.Errorf("reporting item %s: %w", ids[n], err)
			}
			if !f.Matches(item) {
				continue
			}
			if err := fn(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
