package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
)

const scanBatch = 50

// PickupStore keeps pickups in Redis. Every mutation of an existing pickup
// is a single Lua script, so writes are atomic per record. The scripts move
// ids between status sets that are not declared in KEYS, which rules out
// Redis Cluster; the store therefore takes a single-node client.
type PickupStore struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
	newID  func() string
}

// NewPickupStore creates a store writing keys under prefix.
func NewPickupStore(rdb *redis.Client, prefix string) *PickupStore {
	if prefix == "" {
		prefix = "pickup"
	}
	return &PickupStore{
		rdb:    rdb,
		prefix: prefix,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

func (s *PickupStore) itemKey(id string) string { return s.prefix + ":item:" + id }
func (s *PickupStore) indexKey() string         { return s.prefix + ":index" }
func (s *PickupStore) seqKey() string           { return s.prefix + ":seq" }
func (s *PickupStore) statusPrefix() string     { return s.prefix + ":status:" }

func (s *PickupStore) statusKey(st domain.PickupStatus) string {
	return s.statusPrefix() + string(st)
}

// Ping checks the connection.
func (s *PickupStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Create stores a new pending pickup owned by ownerID.
func (s *PickupStore) Create(ctx context.Context, ownerID string, f domain.PickupFields) (*domain.Pickup, error) {
	now := s.now().UTC()
	p := domain.Pickup{
		ID:              s.newID(),
		UserID:          ownerID,
		Status:          domain.StatusPending,
		Location:        f.Location,
		EstimatedWeight: f.EstimatedWeight,
		WasteType:       f.WasteType,
		RequestedTime:   f.RequestedTime.UTC(),
		CreatedAt:       now,
		UpdatedAt:       now,
		Version:         1,
	}

	seq, err := s.rdb.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("create pickup: next seq: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.itemKey(p.ID), encodeNew(p, seq))
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(seq), Member: p.ID})
		pipe.SAdd(ctx, s.statusKey(p.Status), p.ID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create pickup: %w", err)
	}

	// Round-trip through the codec so callers see exactly what is stored.
	rec, err := decode(stringMap(encodeNew(p, seq)))
	if err != nil {
		return nil, err
	}
	return &rec.pickup, nil
}

// Get returns the pickup with id, or nil when it does not exist.
func (s *PickupStore) Get(ctx context.Context, id string) (*domain.Pickup, error) {
	h, err := s.rdb.HGetAll(ctx, s.itemKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get pickup %s: %w", id, err)
	}
	if len(h) == 0 {
		return nil, nil
	}
	rec, err := decode(h)
	if err != nil {
		return nil, err
	}
	return &rec.pickup, nil
}

// Update applies u to the pickup if cond holds at write time.
func (s *PickupStore) Update(ctx context.Context, id string, u domain.PickupUpdate, cond domain.Condition) (*domain.Pickup, error) {
	if u.Empty() {
		return nil, fmt.Errorf("update pickup %s: %w", id, apperr.ErrInvalid)
	}

	statuses := make([]string, len(cond.StatusIn))
	for i, st := range cond.StatusIn {
		statuses[i] = string(st)
	}

	args := []any{
		s.statusPrefix(),
		formatTime(s.now()),
		strconv.FormatInt(cond.Version, 10),
		strings.Join(statuses, ","),
	}
	args = append(args, encodeUpdate(u)...)

	reply, err := updateScript.Run(ctx, s.rdb, []string{s.itemKey(id)}, args...).Slice()
	if err != nil {
		return nil, fmt.Errorf("update pickup %s: %w", id, err)
	}
	return s.scriptResult(id, "update", reply)
}

// HardDelete removes the pickup and returns its last value.
func (s *PickupStore) HardDelete(ctx context.Context, id string) (*domain.Pickup, error) {
	reply, err := hardDeleteScript.Run(ctx, s.rdb,
		[]string{s.itemKey(id), s.indexKey()},
		s.statusPrefix(),
	).Slice()
	if err != nil {
		return nil, fmt.Errorf("hard delete pickup %s: %w", id, err)
	}
	return s.scriptResult(id, "hard delete", reply)
}

func (s *PickupStore) scriptResult(id, op string, reply []any) (*domain.Pickup, error) {
	if len(reply) == 0 {
		return nil, fmt.Errorf("%s pickup %s: empty script reply", op, id)
	}
	code, _ := reply[0].(int64)
	switch code {
	case replyNotFound:
		return nil, fmt.Errorf("%s pickup %s: %w", op, id, apperr.ErrNotFound)
	case replyConflict:
		cur := ""
		if len(reply) > 1 {
			cur, _ = reply[1].(string)
		}
		return nil, &domain.StatusConflictError{Current: domain.PickupStatus(cur)}
	case replyOK:
		if len(reply) < 2 {
			return nil, fmt.Errorf("%s pickup %s: missing record in reply", op, id)
		}
		h, err := pairs(reply[1])
		if err != nil {
			return nil, fmt.Errorf("%s pickup %s: %w", op, id, err)
		}
		rec, err := decode(h)
		if err != nil {
			return nil, err
		}
		return &rec.pickup, nil
	default:
		return nil, fmt.Errorf("%s pickup %s: unexpected reply code %d", op, id, code)
	}
}

// List returns one page of pickups in insertion order (or reverse) that
// match f. The cursor is the insertion sequence of the last returned pickup,
// so pickups created while paging never shift earlier pages.
func (s *PickupStore) List(ctx context.Context, f domain.ListFilter) (domain.Page, error) {
	size := f.PageSize()

	var (
		after    int64
		hasAfter bool
	)
	if f.Cursor != "" {
		seq, err := decodeCursor(f.Cursor)
		if err != nil {
			return domain.Page{}, err
		}
		after, hasAfter = seq, true
	}

	out := make([]domain.Pickup, 0, size)
	var lastSeq int64
	for {
		rng := &redis.ZRangeBy{Min: "-inf", Max: "+inf", Count: scanBatch}
		var (
			zs  []redis.Z
			err error
		)
		if f.Reverse {
			if hasAfter {
				rng.Max = "(" + strconv.FormatInt(after, 10)
			}
			zs, err = s.rdb.ZRevRangeByScoreWithScores(ctx, s.indexKey(), rng).Result()
		} else {
			if hasAfter {
				rng.Min = "(" + strconv.FormatInt(after, 10)
			}
			zs, err = s.rdb.ZRangeByScoreWithScores(ctx, s.indexKey(), rng).Result()
		}
		if err != nil {
			return domain.Page{}, fmt.Errorf("list pickups: scan index: %w", err)
		}
		if len(zs) == 0 {
			return domain.Page{Pickups: out}, nil
		}

		ids := make([]string, len(zs))
		for i, z := range zs {
			ids[i], _ = z.Member.(string)
		}
		recs, err := s.load(ctx, ids)
		if err != nil {
			return domain.Page{}, fmt.Errorf("list pickups: %w", err)
		}

		for _, rec := range recs {
			if !f.Match(rec.pickup) {
				continue
			}
			if len(out) == size {
				// one more match exists past the page
				return domain.Page{Pickups: out, NextCursor: encodeCursor(lastSeq)}, nil
			}
			out = append(out, rec.pickup)
			lastSeq = rec.seq
		}

		if len(zs) < scanBatch {
			return domain.Page{Pickups: out}, nil
		}
		after, hasAfter = int64(zs[len(zs)-1].Score), true
	}
}

// ScanByStatus returns every pickup currently in status st, in insertion order.
func (s *PickupStore) ScanByStatus(ctx context.Context, st domain.PickupStatus) ([]domain.Pickup, error) {
	ids, err := s.rdb.SMembers(ctx, s.statusKey(st)).Result()
	if err != nil {
		return nil, fmt.Errorf("scan pickups by status %s: %w", st, err)
	}
	recs, err := s.load(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("scan pickups by status %s: %w", st, err)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })

	out := make([]domain.Pickup, 0, len(recs))
	for _, rec := range recs {
		// status may have moved between SMEMBERS and HGETALL
		if rec.pickup.Status == st {
			out = append(out, rec.pickup)
		}
	}
	return out, nil
}

// load fetches hashes for ids in one pipeline, preserving order and
// skipping ids removed in the meantime.
func (s *PickupStore) load(ctx context.Context, ids []string) ([]record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, s.itemKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	out := make([]record, 0, len(ids))
	for _, cmd := range cmds {
		h, err := cmd.Result()
		if err != nil {
			return nil, err
		}
		if len(h) == 0 {
			continue
		}
		rec, err := decode(h)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func stringMap(m map[string]any) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = fmt.Sprint(v)
	}
	return out
}
