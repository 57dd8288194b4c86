package core

import "strings"

// Keywords for each role predicate. Contains-matches are substring tests on
// the normalized header; exact-matches compare the whole normalized header.
var (
	beforeContains = []string{"before"}
	beforeExact    = []string{"old", "original"}
	afterContains  = []string{"after"}
	afterExact     = []string{"new", "updated"}
	labelContains  = []string{"label", "name", "id"}
)

// ResolveRoles infers which headers supply before, after and label text.
//
// Headers are scanned left to right. Each header takes at most one role,
// tested in the order before, after, label. Every match overwrites the key
// for its role, so when several headers match the same predicate the last
// one wins. Afterwards an unset before key falls back to header 0 and an
// unset after key to header 1. The label role has no fallback.
func ResolveRoles(headers []string) ColumnRoleAssignment {
	var a ColumnRoleAssignment

	for _, h := range headers {
		switch matchRole(normalizeHeader(h)) {
		case RoleBefore:
			a.BeforeKey, a.HasBefore = h, true
		case RoleAfter:
			a.AfterKey, a.HasAfter = h, true
		case RoleLabel:
			a.LabelKey, a.HasLabel = h, true
		}
	}

	if !a.HasBefore && len(headers) >= 1 {
		a.BeforeKey, a.HasBefore = headers[0], true
	}
	if !a.HasAfter && len(headers) >= 2 {
		a.AfterKey, a.HasAfter = headers[1], true
	}
	return a
}

// normalizeHeader prepares a header for matching only; the verbatim header
// is what gets stored.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// matchRole runs the exclusive predicate chain. It returns "" when no
// predicate matches.
func matchRole(norm string) Role {
	switch {
	case containsAny(norm, beforeContains) || equalsAny(norm, beforeExact):
		return RoleBefore
	case containsAny(norm, afterContains) || equalsAny(norm, afterExact):
		return RoleAfter
	case containsAny(norm, labelContains):
		return RoleLabel
	default:
		return ""
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func equalsAny(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
