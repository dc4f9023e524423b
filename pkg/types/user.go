// Package types defines the user record shape shared by every component.
// Callers hand in loosely shaped Raw mappings; after validation the rest of
// the library only ever sees the precise User struct.
package types

import "strconv"

// Raw is the boundary representation of a record: a field-name to value
// mapping as it arrives from the caller (decoded JSON, YAML, literals).
type Raw = map[string]any

// Canonical field names, in display order.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldRole      = "role"
	FieldStatus    = "status"
	FieldJoinDate  = "join_date"
	FieldLastLogin = "last_login"
)

var fieldOrder = []string{
	FieldID,
	FieldName,
	FieldEmail,
	FieldRole,
	FieldStatus,
	FieldJoinDate,
	FieldLastLogin,
}

// Fields returns the canonical field names in display order.
func Fields() []string {
	out := make([]string, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// User is one validated user record. Extra holds string-valued fields that
// are not part of the canonical set so they survive a round trip through
// the store.
type User struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      string            `json:"role"`
	Status    string            `json:"status"`
	JoinDate  string            `json:"join_date"`
	LastLogin string            `json:"last_login"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// Field returns the value of the named field as a string. The second return
// reports whether the field exists on this record.
func (u User) Field(name string) (string, bool) {
	switch name {
	case FieldID:
		return strconv.FormatInt(u.ID, 10), true
	case FieldName:
		return u.Name, true
	case FieldEmail:
		return u.Email, true
	case FieldRole:
		return u.Role, true
	case FieldStatus:
		return u.Status, true
	case FieldJoinDate:
		return u.JoinDate, true
	case FieldLastLogin:
		return u.LastLogin, true
	}
	if u.Extra != nil {
		if v, ok := u.Extra[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Set assigns the named field. Unknown names land in Extra. The id field
// cannot be set through here; it is fixed at validation time.
func (u *User) Set(name, value string) {
	switch name {
	case FieldID:
		// id is immutable once validated
	case FieldName:
		u.Name = value
	case FieldEmail:
		u.Email = value
	case FieldRole:
		u.Role = value
	case FieldStatus:
		u.Status = value
	case FieldJoinDate:
		u.JoinDate = value
	case FieldLastLogin:
		u.LastLogin = value
	default:
		if u.Extra == nil {
			u.Extra = make(map[string]string)
		}
		u.Extra[name] = value
	}
}

// Clone returns an independent copy of the record.
func (u User) Clone() User {
	out := u
	if u.Extra != nil {
		out.Extra = make(map[string]string, len(u.Extra))
		for k, v := range u.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// ToRaw converts the record back to its boundary mapping form.
func (u User) ToRaw() Raw {
	raw := Raw{
		FieldID:        u.ID,
		FieldName:      u.Name,
		FieldEmail:     u.Email,
		FieldRole:      u.Role,
		FieldStatus:    u.Status,
		FieldJoinDate:  u.JoinDate,
		FieldLastLogin: u.LastLogin,
	}
	for k, v := range u.Extra {
		raw[k] = v
	}
	return raw
}

// CloneAll deep-copies a slice of records.
func CloneAll(users []User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}
