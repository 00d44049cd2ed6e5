package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Permission is a named capability granted to a user.  The set of known
// permissions is closed: values outside it are rejected by ParsePermission
// so a misspelled name can never silently grant or deny anything.
type Permission string

const (
	PermissionAdmin            Permission = "ADMIN"
	PermissionUser             Permission = "USER"
	PermissionItemCreate       Permission = "ITEMCREATE"
	PermissionItemUpdate       Permission = "ITEMUPDATE"
	PermissionItemDelete       Permission = "ITEMDELETE"
	PermissionPermissionUpdate Permission = "PERMISSIONUPDATE"
)

// knownPermissions mirrors the users.permissions SET column definition.
var knownPermissions = map[Permission]struct{}{
	PermissionAdmin:            {},
	PermissionUser:             {},
	PermissionItemCreate:       {},
	PermissionItemUpdate:       {},
	PermissionItemDelete:       {},
	PermissionPermissionUpdate: {},
}

// ErrUnknownPermission is returned when a name is not a known permission.
var ErrUnknownPermission = errors.New("unknown permission")

// ParsePermission normalises s (trim, upper-case) and checks it against the
// known permissions.
func ParsePermission(s string) (Permission, error) {
	p := Permission(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := knownPermissions[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPermission, s)
	}
	return p, nil
}

// Valid reports whether p is a known permission.
func (p Permission) Valid() bool {
	_, ok := knownPermissions[p]
	return ok
}

// PermissionSet is an unordered set of permissions.  The zero value is an
// empty set ready to use for reads; use NewPermissionSet to build one.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given permissions.
func NewPermissionSet(perms ...Permission) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// ParsePermissionSet parses every name and fails on the first unknown one.
func ParsePermissionSet(names []string) (PermissionSet, error) {
	s := make(PermissionSet, len(names))
	for _, n := range names {
		p, err := ParsePermission(n)
		if err != nil {
			return nil, err
		}
		s[p] = struct{}{}
	}
	return s, nil
}

// Has reports whether p is a member of s.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Intersects reports whether s and other share at least one permission.
func (s PermissionSet) Intersects(other PermissionSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for p := range small {
		if _, ok := large[p]; ok {
			return true
		}
	}
	return false
}

// Slice returns the members sorted by name.
func (s PermissionSet) Slice() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the set the way MySQL stores a SET column: sorted and
// comma-separated.
func (s PermissionSet) String() string {
	parts := make([]string, 0, len(s))
	for _, p := range s.Slice() {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ",")
}

// MarshalJSON encodes the set as a sorted array of names.
func (s PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON accepts an array of names and rejects unknown ones.
func (s *PermissionSet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	parsed, err := ParsePermissionSet(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer for the users.permissions SET column.
func (s PermissionSet) Value() (driver.Value, error) {
	return s.String(), nil
}

// Scan implements sql.Scanner for the users.permissions SET column.
func (s *PermissionSet) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*s = PermissionSet{}
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("permission set: unsupported scan type %T", src)
	}
	set := PermissionSet{}
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		p, err := ParsePermission(part)
		if err != nil {
			return err
		}
		set[p] = struct{}{}
	}
	*s = set
	return nil
}
