package repository

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
)

// Hash field names of a stored pickup.
const (
	fID              = "id"
	fUserID          = "userId"
	fDriverID        = "driverId"
	fStatus          = "status"
	fLocation        = "location"
	fEstimatedWeight = "estimatedWeight"
	fWasteType       = "wasteType"
	fRequestedTime   = "requestedTime"
	fDeletedAt       = "deletedAt"
	fCreatedAt       = "createdAt"
	fUpdatedAt       = "updatedAt"
	fSeq             = "seq"
	fVersion         = "version"
)

type record struct {
	pickup domain.Pickup
	seq    int64
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func encodeNew(p domain.Pickup, seq int64) map[string]any {
	return map[string]any{
		fID:              p.ID,
		fUserID:          p.UserID,
		fStatus:          string(p.Status),
		fLocation:        p.Location,
		fEstimatedWeight: formatFloat(p.EstimatedWeight),
		fWasteType:       string(p.WasteType),
		fRequestedTime:   formatTime(p.RequestedTime),
		fCreatedAt:       formatTime(p.CreatedAt),
		fUpdatedAt:       formatTime(p.UpdatedAt),
		fSeq:             seq,
		fVersion:         p.Version,
	}
}

// encodeUpdate flattens u into op/field/value triples for updateScript.
func encodeUpdate(u domain.PickupUpdate) []any {
	var args []any
	set := func(field, val string) { args = append(args, "s", field, val) }
	remove := func(field string) { args = append(args, "r", field, "") }

	if v, ok := u.Status.Value(); ok {
		set(fStatus, string(v))
	}
	switch u.DriverID.Op() {
	case domain.OpSet:
		v, _ := u.DriverID.Value()
		set(fDriverID, v)
	case domain.OpRemove:
		remove(fDriverID)
	}
	if v, ok := u.Location.Value(); ok {
		set(fLocation, v)
	}
	if v, ok := u.EstimatedWeight.Value(); ok {
		set(fEstimatedWeight, formatFloat(v))
	}
	if v, ok := u.WasteType.Value(); ok {
		set(fWasteType, string(v))
	}
	if v, ok := u.RequestedTime.Value(); ok {
		set(fRequestedTime, formatTime(v))
	}
	switch u.DeletedAt.Op() {
	case domain.OpSet:
		v, _ := u.DeletedAt.Value()
		set(fDeletedAt, formatTime(v))
	case domain.OpRemove:
		remove(fDeletedAt)
	}
	return args
}

func decode(h map[string]string) (record, error) {
	var (
		r   record
		err error
	)
	p := &r.pickup
	p.ID = h[fID]
	p.UserID = h[fUserID]
	p.Status = domain.PickupStatus(h[fStatus])
	p.Location = h[fLocation]
	p.WasteType = domain.WasteType(h[fWasteType])
	if v, ok := h[fDriverID]; ok && v != "" {
		p.DriverID = &v
	}

	if p.EstimatedWeight, err = strconv.ParseFloat(h[fEstimatedWeight], 64); err != nil {
		return r, fmt.Errorf("decode pickup %s %s: %w", p.ID, fEstimatedWeight, err)
	}
	if p.RequestedTime, err = time.Parse(time.RFC3339Nano, h[fRequestedTime]); err != nil {
		return r, fmt.Errorf("decode pickup %s %s: %w", p.ID, fRequestedTime, err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, h[fCreatedAt]); err != nil {
		return r, fmt.Errorf("decode pickup %s %s: %w", p.ID, fCreatedAt, err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, h[fUpdatedAt]); err != nil {
		return r, fmt.Errorf("decode pickup %s %s: %w", p.ID, fUpdatedAt, err)
	}
	if v, ok := h[fDeletedAt]; ok && v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return r, fmt.Errorf("decode pickup %s %s: %w", p.ID, fDeletedAt, err)
		}
		p.DeletedAt = &t
	}
	if r.seq, err = strconv.ParseInt(h[fSeq], 10, 64); err != nil {
		return r, fmt.Errorf("decode pickup %s %s: %w", p.ID, fSeq, err)
	}
	if p.Version, err = strconv.ParseInt(h[fVersion], 10, 64); err != nil {
		return r, fmt.Errorf("decode pickup %s %s: %w", p.ID, fVersion, err)
	}
	return r, nil
}

// pairs turns a flat HGETALL reply into a map.
func pairs(v any) (map[string]string, error) {
	flat, ok := v.([]any)
	if !ok || len(flat)%2 != 0 {
		return nil, fmt.Errorf("unexpected hash reply %T", v)
	}
	out := make(map[string]string, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		k, _ := flat[i].(string)
		val, _ := flat[i+1].(string)
		out[k] = val
	}
	return out, nil
}

func encodeCursor(seq int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(seq, 10)))
}

func decodeCursor(c string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(c)
	if err != nil {
		return 0, apperr.BadRequest("cursor", "invalid cursor")
	}
	seq, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || seq < 0 {
		return 0, apperr.BadRequest("cursor", "invalid cursor")
	}
	return seq, nil
}
