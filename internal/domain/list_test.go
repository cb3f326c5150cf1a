package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestListFilter_PageSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultPageSize},
		{-3, DefaultPageSize},
		{1, 1},
		{MaxPageSize, MaxPageSize},
		{MaxPageSize + 1, MaxPageSize},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ListFilter{Limit: tt.limit}.PageSize(), "limit %d", tt.limit)
	}
}

func TestListFilter_Match(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	before := at.Add(-time.Hour)
	after := at.Add(time.Hour)
	p := Pickup{Status: StatusAvailable, RequestedTime: at}

	tests := []struct {
		name string
		f    ListFilter
		want bool
	}{
		{name: "no filter", want: true},
		{name: "status match", f: ListFilter{Statuses: []PickupStatus{StatusPending, StatusAvailable}}, want: true},
		{name: "status miss", f: ListFilter{Statuses: []PickupStatus{StatusCompleted}}},
		{name: "inside window", f: ListFilter{Start: &before, End: &after}, want: true},
		{name: "window bounds inclusive", f: ListFilter{Start: &at, End: &at}, want: true},
		{name: "before start", f: ListFilter{Start: &after}},
		{name: "after end", f: ListFilter{End: &before}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.f.Match(p))
		})
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	for _, s := range Statuses() {
		require.True(t, s.Valid(), s)
	}
	require.False(t, PickupStatus("lost").Valid())
	require.True(t, StatusInProgress.HasDriver())
	require.False(t, StatusAvailable.HasDriver())
	require.True(t, WasteRecyclable.Valid())
	require.False(t, WasteType("nuclear").Valid())
}
