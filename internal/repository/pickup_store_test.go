package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
	"service-pickup/internal/policy"
)

func newTestStore(t *testing.T) (*PickupStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewPickupStore(rdb, "test")
	var n atomic.Int64
	s.newID = func() string { return fmt.Sprintf("p-%03d", n.Add(1)) }
	s.now = func() time.Time { return time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC) }
	return s, mr
}

func fields(hour int) domain.PickupFields {
	return domain.PickupFields{
		Location:        "123 Test St",
		EstimatedWeight: 50,
		WasteType:       domain.WasteRecyclable,
		RequestedTime:   time.Date(2023, 4, 1, hour, 0, 0, 0, time.UTC),
	}
}

func TestPickupStore_CreateGet(t *testing.T) {
	t.Parallel()
	s, mr := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "u-1", fields(10))
	require.NoError(t, err)
	require.Equal(t, "p-001", p.ID)
	require.Equal(t, domain.StatusPending, p.Status)
	require.Equal(t, "u-1", p.UserID)
	require.Nil(t, p.DriverID)
	require.Nil(t, p.DeletedAt)
	require.EqualValues(t, 1, p.Version)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p, got)

	ok, err := mr.SIsMember("test:status:pending", p.ID)
	require.NoError(t, err)
	require.True(t, ok)

	missing, err := s.Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPickupStore_UpdateMovesStatusAndBumpsVersion(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "u-1", fields(10))
	require.NoError(t, err)

	up, err := s.Update(ctx, p.ID,
		domain.PickupUpdate{Status: domain.Set(domain.StatusAvailable), Location: domain.Set("9 Elm St")},
		domain.Condition{StatusIn: []domain.PickupStatus{domain.StatusPending}, Version: p.Version},
	)
	require.NoError(t, err)
	require.Equal(t, domain.StatusAvailable, up.Status)
	require.Equal(t, "9 Elm St", up.Location)
	require.EqualValues(t, 2, up.Version)

	avail, err := s.ScanByStatus(ctx, domain.StatusAvailable)
	require.NoError(t, err)
	require.Len(t, avail, 1)
	pending, err := s.ScanByStatus(ctx, domain.StatusPending)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestPickupStore_UpdateConditions(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "u-1", fields(10))
	require.NoError(t, err)
	accept := domain.PickupUpdate{Status: domain.Set(domain.StatusAccepted), DriverID: domain.Set("d-1")}

	_, err = s.Update(ctx, p.ID, accept, domain.Condition{StatusIn: []domain.PickupStatus{domain.StatusAvailable}})
	var conflict *domain.StatusConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, domain.StatusPending, conflict.Current)

	_, err = s.Update(ctx, p.ID, accept, domain.Condition{Version: 7})
	require.ErrorAs(t, err, &conflict)

	_, err = s.Update(ctx, "missing", accept, domain.Condition{})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.Update(ctx, p.ID, domain.PickupUpdate{}, domain.Condition{})
	require.ErrorIs(t, err, apperr.ErrInvalid)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p, got, "failed conditions must not write")
}

func TestPickupStore_RemoveField(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "u-1", fields(10))
	require.NoError(t, err)
	p, err = s.Update(ctx, p.ID, domain.PickupUpdate{Status: domain.Set(domain.StatusAccepted), DriverID: domain.Set("d-1")}, domain.Condition{})
	require.NoError(t, err)
	require.Equal(t, "d-1", *p.DriverID)

	p, err = s.Update(ctx, p.ID, domain.PickupUpdate{Status: domain.Set(domain.StatusCancelled), DriverID: domain.Remove[string]()}, domain.Condition{Version: p.Version})
	require.NoError(t, err)
	require.Nil(t, p.DriverID)
	require.Equal(t, domain.StatusCancelled, p.Status)
}

func TestPickupStore_UpdateToDeleted(t *testing.T) {
	t.Parallel()
	s, mr := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "u-1", fields(10))
	require.NoError(t, err)
	p, err = s.Update(ctx, p.ID, policy.AcceptEffect(domain.Actor{ID: "d-1", Role: domain.RoleDriver}), domain.Condition{})
	require.NoError(t, err)

	at := time.Date(2023, 4, 2, 8, 30, 0, 0, time.UTC)
	onlyAccepted := domain.Condition{StatusIn: []domain.PickupStatus{domain.StatusAccepted}}
	del, err := s.Update(ctx, p.ID, policy.SoftDeleteEffect(at), onlyAccepted)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDeleted, del.Status)
	require.Nil(t, del.DriverID)
	require.NotNil(t, del.DeletedAt)
	require.True(t, at.Equal(*del.DeletedAt))

	ok, err := mr.SIsMember("test:status:deleted", p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = mr.SIsMember("test:status:accepted", p.ID)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.Update(ctx, p.ID, policy.SoftDeleteEffect(at), onlyAccepted)
	var conflict *domain.StatusConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, domain.StatusDeleted, conflict.Current)

	_, err = s.Update(ctx, "missing", policy.SoftDeleteEffect(at), domain.Condition{})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPickupStore_HardDelete(t *testing.T) {
	t.Parallel()
	s, mr := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "u-1", fields(10))
	require.NoError(t, err)

	last, err := s.HardDelete(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p, last)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Nil(t, got)
	require.False(t, mr.Exists("test:item:"+p.ID))

	page, err := s.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Empty(t, page.Pickups)

	_, err = s.HardDelete(ctx, p.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func seed(t *testing.T, s *PickupStore, n int, publish func(i int) bool) []domain.Pickup {
	t.Helper()
	ctx := context.Background()
	out := make([]domain.Pickup, 0, n)
	for i := 0; i < n; i++ {
		p, err := s.Create(ctx, "u-1", fields(i%24))
		require.NoError(t, err)
		if publish(i) {
			p, err = s.Update(ctx, p.ID, domain.PickupUpdate{Status: domain.Set(domain.StatusAvailable)}, domain.Condition{})
			require.NoError(t, err)
		}
		out = append(out, *p)
	}
	return out
}

func ids(ps []domain.Pickup) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestPickupStore_ListPaginates(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()
	all := seed(t, s, 120, func(int) bool { return false })

	var got []string
	cursor := ""
	pages := 0
	for {
		page, err := s.List(ctx, domain.ListFilter{Limit: 25, Cursor: cursor})
		require.NoError(t, err)
		require.LessOrEqual(t, len(page.Pickups), 25)
		got = append(got, ids(page.Pickups)...)
		pages++
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	require.Equal(t, ids(all), got)
	require.Equal(t, 5, pages)
}

func TestPickupStore_ListDefaultAndMaxLimit(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()
	seed(t, s, 130, func(int) bool { return false })

	page, err := s.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, page.Pickups, domain.DefaultPageSize)
	require.NotEmpty(t, page.NextCursor)

	page, err = s.List(ctx, domain.ListFilter{Limit: 1000})
	require.NoError(t, err)
	require.Len(t, page.Pickups, domain.MaxPageSize)
}

func TestPickupStore_ListStatusFilterStable(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()
	all := seed(t, s, 60, func(i int) bool { return i%3 == 0 })

	var want []string
	for _, p := range all {
		if p.Status == domain.StatusAvailable {
			want = append(want, p.ID)
		}
	}

	f := domain.ListFilter{Statuses: []domain.PickupStatus{domain.StatusAvailable}, Limit: 100}
	first, err := s.List(ctx, f)
	require.NoError(t, err)
	second, err := s.List(ctx, f)
	require.NoError(t, err)

	require.Equal(t, want, ids(first.Pickups))
	require.Equal(t, ids(first.Pickups), ids(second.Pickups))
	require.Empty(t, first.NextCursor)
}

func TestPickupStore_ListNoCursorOnExactFit(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()
	seed(t, s, 10, func(i int) bool { return i < 5 })

	page, err := s.List(ctx, domain.ListFilter{Statuses: []domain.PickupStatus{domain.StatusAvailable}, Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Pickups, 5)
	require.Empty(t, page.NextCursor)
}

func TestPickupStore_ListTimeRangeAndReverse(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()
	all := seed(t, s, 24, func(int) bool { return false })

	start := time.Date(2023, 4, 1, 5, 0, 0, 0, time.UTC)
	end := time.Date(2023, 4, 1, 8, 0, 0, 0, time.UTC)
	page, err := s.List(ctx, domain.ListFilter{Start: &start, End: &end})
	require.NoError(t, err)
	require.Equal(t, ids(all[5:9]), ids(page.Pickups), "range is inclusive")

	page, err = s.List(ctx, domain.ListFilter{Reverse: true, Limit: 3})
	require.NoError(t, err)
	require.Equal(t, []string{all[23].ID, all[22].ID, all[21].ID}, ids(page.Pickups))

	next, err := s.List(ctx, domain.ListFilter{Reverse: true, Limit: 3, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Equal(t, []string{all[20].ID, all[19].ID, all[18].ID}, ids(next.Pickups))
}

func TestPickupStore_ListCursorToleratesInserts(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()
	all := seed(t, s, 10, func(int) bool { return false })

	page, err := s.List(ctx, domain.ListFilter{Limit: 4})
	require.NoError(t, err)

	seed(t, s, 3, func(int) bool { return false })

	rest, err := s.List(ctx, domain.ListFilter{Limit: 6, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Equal(t, ids(all[4:10]), ids(rest.Pickups))
	require.NotEmpty(t, rest.NextCursor)
}

func TestPickupStore_ListInvalidCursor(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)

	_, err := s.List(context.Background(), domain.ListFilter{Cursor: "%%%"})
	e, ok := apperr.As(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindBadRequest, e.Kind)
	require.Equal(t, "cursor", e.Field)
}

func TestPickupStore_ConcurrentAcceptSingleWinner(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, "u-1", fields(10))
	require.NoError(t, err)
	_, err = s.Update(ctx, p.ID, domain.PickupUpdate{Status: domain.Set(domain.StatusAvailable)}, domain.Condition{})
	require.NoError(t, err)

	const drivers = 16
	var (
		wg        sync.WaitGroup
		wins      atomic.Int32
		conflicts atomic.Int32
		winner    atomic.Value
	)
	for i := 0; i < drivers; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := s.Update(ctx, p.ID,
				domain.PickupUpdate{Status: domain.Set(domain.StatusAccepted), DriverID: domain.Set(id)},
				domain.Condition{StatusIn: []domain.PickupStatus{domain.StatusAvailable}},
			)
			var conflict *domain.StatusConflictError
			switch {
			case err == nil:
				wins.Add(1)
				winner.Store(id)
			case errors.As(err, &conflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(fmt.Sprintf("d-%d", i))
	}
	wg.Wait()

	require.EqualValues(t, 1, wins.Load())
	require.EqualValues(t, drivers-1, conflicts.Load())

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusAccepted, got.Status)
	require.Equal(t, winner.Load(), *got.DriverID)
}
