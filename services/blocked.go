// services/blocked.go
package services

import "strings"

// Calendar entries stylists book against themselves. An entry with no
// customer whose title contains one of these is internal time, not a sale.
var blockedTimeKeywords = []string{
	"personal time",
	"block",
	"break",
	"lunch",
	"off",
	"not available",
	"closed",
	"meeting",
	"admin",
}

// placeholderServiceTitle is what the scheduling platform sends when a
// booking has no real service attached.
const placeholderServiceTitle = "service"

// IsBlockedTime reports whether an event is internal time: no customer and
// a title matching the blocked keyword set.
func IsBlockedTime(serviceTitle, customerID string) bool {
	if customerID != "" {
		return false
	}
	title := strings.ToLower(serviceTitle)
	for _, keyword := range blockedTimeKeywords {
		if strings.Contains(title, keyword) {
			return true
		}
	}
	return false
}

// SkipReason decides whether an event should be synchronized at all. A
// non-empty reason means skip; skips are informational, never errors.
func SkipReason(ev NormalizedEvent) (string, bool) {
	if ev.StaffID == "" {
		return "no service provider on event", true
	}
	if IsBlockedTime(ev.ServiceTitle, ev.CustomerID) {
		return "blocked time: " + ev.ServiceTitle, true
	}
	if ev.CustomerID == "" {
		title := strings.ToLower(strings.TrimSpace(ev.ServiceTitle))
		if title == "" || title == placeholderServiceTitle {
			return "no customer and no service", true
		}
	}
	return "", false
}
