// Package validation normalizes raw records into well-formed users. Bad
// data is repaired or rejected here, never raised further up: downstream
// components rely on every User being complete.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/userdeck/userdeck/pkg/config"
	"github.com/userdeck/userdeck/pkg/metrics"
	"github.com/userdeck/userdeck/pkg/types"
)

// Counter names incremented by the validator.
const (
	MetricPassed   = "validation.passed.total"
	MetricAutofix  = "validation.autofixed.total"
	MetricRejected = "validation.rejected.total"
)

var (
	ErrNotAMapping  = errors.New("record is not a mapping")
	ErrMissingID    = errors.New("record missing required id field")
	ErrInvalidID    = errors.New("record id is not an integer")
	ErrMissingField = errors.New("record missing required field")
)

// Defaults substituted for absent fields when auto-fix is enabled. These
// match the original dataset conventions.
const (
	DefaultString = "UNKNOWN"
	DefaultDate   = "1970-01-01"
)

// Validator normalizes raw records according to the configured policy.
type Validator struct {
	cfg *config.AppConfig
	reg *metrics.Registry
}

// New creates a validator. The metrics registry may be nil when counting
// is disabled.
func New(cfg *config.AppConfig, reg *metrics.Registry) *Validator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Validator{cfg: cfg, reg: reg}
}

func (v *Validator) inc(name string) {
	if v.reg != nil && v.cfg.EnableMetrics {
		v.reg.Inc(name)
	}
}

// Validate turns a raw record into a User. Missing string fields are filled
// with documented defaults; strict mode, or disabling auto-fix, rejects them
// instead. A missing or non-integer id always rejects the record. The
// returned error wraps one of the package sentinels.
func (v *Validator) Validate(raw types.Raw) (types.User, error) {
	if raw == nil {
		v.inc(MetricRejected)
		return types.User{}, ErrNotAMapping
	}

	idVal, ok := raw[types.FieldID]
	if !ok {
		v.inc(MetricRejected)
		return types.User{}, ErrMissingID
	}
	id, err := coerceID(idVal)
	if err != nil {
		v.inc(MetricRejected)
		return types.User{}, fmt.Errorf("%w: %v", ErrInvalidID, idVal)
	}

	user := types.User{ID: id}
	fixed := false

	for _, field := range types.Fields() {
		if field == types.FieldID {
			continue
		}
		value, present := stringField(raw, field)
		if !present {
			if v.cfg.StrictValidation || !v.cfg.AutoFixMalformed {
				v.inc(MetricRejected)
				return types.User{}, fmt.Errorf("%w: %s (id=%d)", ErrMissingField, field, id)
			}
			user.Set(field, defaultFor(field))
			fixed = true
			continue
		}
		user.Set(field, value)
	}

	// Unrecognized string-valued fields ride along in Extra.
	known := make(map[string]struct{}, len(types.Fields()))
	for _, f := range types.Fields() {
		known[f] = struct{}{}
	}
	for key, val := range raw {
		if _, ok := known[key]; ok {
			continue
		}
		if s, ok := stringify(val); ok {
			user.Set(key, s)
		}
	}

	if fixed {
		v.inc(MetricAutofix)
	} else {
		v.inc(MetricPassed)
	}
	return user, nil
}

func defaultFor(field string) string {
	switch field {
	case types.FieldJoinDate, types.FieldLastLogin:
		return DefaultDate
	default:
		return DefaultString
	}
}

func stringField(raw types.Raw, field string) (string, bool) {
	val, ok := raw[field]
	if !ok || val == nil {
		return "", false
	}
	return stringify(val)
}

// stringify converts scalar values to their display string. Composite
// values (maps, slices) are not representable as a field and report false.
func stringify(val any) (string, bool) {
	switch t := val.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

// coerceID accepts the integer representations produced by the common
// decoders: Go ints, JSON float64/json.Number, and numeric strings.
func coerceID(val any) (int64, error) {
	switch t := val.(type) {
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint64:
		if t > math.MaxInt64 {
			return 0, fmt.Errorf("id out of range: %d", t)
		}
		return int64(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("id is not integral: %v", t)
		}
		return int64(t), nil
	case json.Number:
		return t.Int64()
	case string:
		id, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("id is not numeric: %q", t)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("unsupported id type %T", val)
	}
}
