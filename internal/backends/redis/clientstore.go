package redis

import (
	"clientreg/internal/types"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	sessionKeyNameTemplate = "_clientreg_%s"
	clientFieldTemplate    = "c:%d"
	clientFieldPrefix      = "c:"
	seqField               = "seq"

	maxTxAttempts = 3
)

// ClientStore keeps one session in a single hash: field "seq" is the id counter and
// each "c:<id>" field holds a JSON encoded record. Every write pushes the session TTL forward.
type ClientStore struct {
	cli     *redis.Client
	session string
	ttl     time.Duration
}

// NewClientStore returns a store scoped to session. A zero ttl disables expiry.
func NewClientStore(cli *redis.Client, session string, ttl time.Duration) *ClientStore {
	return &ClientStore{cli: cli, session: session, ttl: ttl}
}

func (s *ClientStore) Register(ctx context.Context, fields types.ClientFields) (types.ClientRecord, error) {
	key := getSessionKey(s.session)
	var seq *redis.IntCmd
	_, err := s.cli.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		seq = pipe.HIncrBy(ctx, key, seqField, 1)
		s.touch(ctx, pipe, key)
		return nil
	})
	if err != nil {
		return types.ClientRecord{}, types.Err(types.ErrDataStoreAccess, err, "")
	}
	rec := types.NewRecord(int(seq.Val()), fields)
	out, err := json.Marshal(rec)
	if err != nil {
		return types.ClientRecord{}, err
	}
	_, err = s.cli.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, getClientField(rec.ID), string(out))
		s.touch(ctx, pipe, key)
		return nil
	})
	if err != nil {
		return types.ClientRecord{}, types.Err(types.ErrDataStoreAccess, err, "register client %d", rec.ID)
	}
	return rec, nil
}

func (s *ClientStore) List(ctx context.Context) ([]types.ClientRecord, error) {
	out := s.cli.HGetAll(ctx, getSessionKey(s.session))
	if out.Err() != nil {
		return nil, types.Err(types.ErrDataStoreAccess, out.Err(), "")
	}
	m := out.Val()
	recs := make([]types.ClientRecord, 0, len(m))
	for field, raw := range m {
		if _, ok := parseClientField(field); !ok {
			continue
		}
		var rec types.ClientRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("invalid record %s: %w", field, err)
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}

func (s *ClientStore) FindByID(ctx context.Context, id int) (types.ClientRecord, error) {
	raw, err := s.cli.HGet(ctx, getSessionKey(s.session), getClientField(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return types.ClientRecord{}, types.ErrNotFound
		}
		return types.ClientRecord{}, types.Err(types.ErrDataStoreAccess, err, "")
	}
	var rec types.ClientRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return types.ClientRecord{}, fmt.Errorf("invalid record %d: %w", id, err)
	}
	return rec, nil
}

func (s *ClientStore) Update(ctx context.Context, id int, fields types.ClientFields) (types.ClientRecord, error) {
	return s.mutate(ctx, id, fields.Apply)
}

func (s *ClientStore) Deactivate(ctx context.Context, id int) (types.ClientRecord, error) {
	return s.mutate(ctx, id, func(rec types.ClientRecord) types.ClientRecord {
		rec.Active = false
		return rec
	})
}

func (s *ClientStore) ClearAll(ctx context.Context) error {
	out := s.cli.Del(ctx, getSessionKey(s.session))
	return out.Err()
}

// mutate rewrites one record under WATCH so concurrent writers to the session retry
// instead of overwriting each other.
func (s *ClientStore) mutate(ctx context.Context, id int, fn func(types.ClientRecord) types.ClientRecord) (types.ClientRecord, error) {
	key := getSessionKey(s.session)
	field := getClientField(id)
	var next types.ClientRecord

	txf := func(tx *redis.Tx) error {
		raw, err := tx.HGet(ctx, key, field).Result()
		if err != nil {
			return err
		}
		var rec types.ClientRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return fmt.Errorf("invalid record %d: %w", id, err)
		}
		next = fn(rec)
		out, err := json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, field, string(out))
			s.touch(ctx, pipe, key)
			return nil
		})
		return err
	}

	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 10 * time.Millisecond)
		}
		err := s.cli.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return next, nil
		case errors.Is(err, redis.Nil):
			return types.ClientRecord{}, types.ErrNotFound
		case errors.Is(err, redis.TxFailedErr):
			log.WithField("client_id", id).Debug("redis transaction raced, retrying")
			lastErr = err
			continue
		default:
			return types.ClientRecord{}, types.Err(types.ErrDataStoreAccess, err, "")
		}
	}
	return types.ClientRecord{}, types.Err(types.ErrDataStoreAccess, lastErr, "gave up after %d attempts", maxTxAttempts)
}

func (s *ClientStore) touch(ctx context.Context, pipe redis.Pipeliner, key string) {
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
}

func getSessionKey(session string) string {
	return fmt.Sprintf(sessionKeyNameTemplate, session)
}

func getClientField(id int) string {
	return fmt.Sprintf(clientFieldTemplate, id)
}

func parseClientField(field string) (int, bool) {
	if !strings.HasPrefix(field, clientFieldPrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(field, clientFieldPrefix))
	return id, err == nil
}
