// services/payload.go
package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The scheduling platform has shipped several webhook generations: fields at
// the top level, under a "payload" wrapper, under an "Appointment" object,
// or on the first entry of its services array, in PascalCase or camelCase.
// Every field is resolved through one ordered candidate list so the
// precedence is explicit instead of branched per shape.

// BookingEvent wraps one raw scheduling webhook payload.
type BookingEvent struct {
	root map[string]interface{}
}

// NormalizedEvent holds the canonical fields the sync engine works with.
type NormalizedEvent struct {
	StaffID       string
	CustomerID    string
	BusinessID    string
	TotalAmount   float64
	ServiceTitle  string
	AppointmentID string
	AppointmentAt time.Time
}

func ParseBookingEvent(body []byte) (*BookingEvent, error) {
	var root map[string]interface{}
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("unreadable booking payload: %w", err)
	}
	return &BookingEvent{root: root}, nil
}

// candidate is one (container, key variants) pair in a fallback chain.
type candidate struct {
	container map[string]interface{}
	keys      []string
}

// resolve returns the first non-empty value in chain order.
func resolve(chain []candidate) (string, bool) {
	for _, cand := range chain {
		if cand.container == nil {
			continue
		}
		for _, key := range cand.keys {
			if s := stringify(cand.container[key]); s != "" {
				return s, true
			}
		}
	}
	return "", false
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func subMap(container map[string]interface{}, keys ...string) map[string]interface{} {
	if container == nil {
		return nil
	}
	for _, key := range keys {
		if m, ok := container[key].(map[string]interface{}); ok {
			return m
		}
	}
	return nil
}

func firstOfArray(container map[string]interface{}, keys ...string) map[string]interface{} {
	if container == nil {
		return nil
	}
	for _, key := range keys {
		if arr, ok := container[key].([]interface{}); ok && len(arr) > 0 {
			if m, ok := arr[0].(map[string]interface{}); ok {
				return m
			}
		}
	}
	return nil
}

// wrapper returns the "payload" envelope if the event carries one.
func (e *BookingEvent) wrapper() map[string]interface{} {
	return subMap(e.root, "payload", "Payload")
}

// appointment returns the appointment object, wherever it lives.
func (e *BookingEvent) appointment() map[string]interface{} {
	if m := subMap(e.root, "Appointment", "appointment"); m != nil {
		return m
	}
	return subMap(e.wrapper(), "Appointment", "appointment")
}

// firstService returns the first entry of the appointment's services array.
func (e *BookingEvent) firstService() map[string]interface{} {
	return firstOfArray(e.appointment(), "Services", "services")
}

// chain builds the standard container precedence (top level, payload
// wrapper, appointment object, first services entry) with one key set for
// every level.
func (e *BookingEvent) chain(keys ...string) []candidate {
	return []candidate{
		{e.root, keys},
		{e.wrapper(), keys},
		{e.appointment(), keys},
		{e.firstService(), keys},
	}
}

func (e *BookingEvent) field(keys ...string) string {
	v, _ := resolve(e.chain(keys...))
	return v
}

// StaffID is the scheduling platform's service-provider identifier.
func (e *BookingEvent) StaffID() string {
	return e.field("ServiceProviderId", "serviceProviderId")
}

func (e *BookingEvent) CustomerID() string {
	return e.field("CustomerId", "customerId")
}

func (e *BookingEvent) BusinessID() string {
	return e.field("BusinessId", "businessId")
}

// AppointmentID also accepts the appointment object's own id field.
func (e *BookingEvent) AppointmentID() string {
	chain := e.chain("AppointmentId", "appointmentId")
	chain = append(chain, candidate{e.appointment(), []string{"Id", "id"}})
	v, _ := resolve(chain)
	return v
}

// ServiceTitle falls back to the first line item's name.
func (e *BookingEvent) ServiceTitle() string {
	chain := e.chain("ServiceTitle", "serviceTitle", "ServiceName", "serviceName")
	chain = append(chain, candidate{e.firstService(), []string{"Name", "name", "Title", "title"}})
	v, _ := resolve(chain)
	return v
}

// TotalAmount falls back to the first line item's price and defaults to 0.
func (e *BookingEvent) TotalAmount() float64 {
	chain := e.chain("TotalAmount", "totalAmount")
	chain = append(chain, candidate{e.firstService(), []string{"Price", "price"}})
	v, ok := resolve(chain)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

var appointmentTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// AppointmentAt parses the appointment time, defaulting to the processing
// instant when absent or unparseable. A missing date is not an error.
func (e *BookingEvent) AppointmentAt(now time.Time) time.Time {
	chain := e.chain("AppointmentDateTime", "appointmentDateTime", "AppointmentDate", "appointmentDate")
	chain = append(chain, candidate{e.appointment(), []string{"StartTime", "startTime"}})
	raw, ok := resolve(chain)
	if !ok {
		return now
	}
	for _, layout := range appointmentTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return now
}

// customer returns the customer object when the payload nests one.
func (e *BookingEvent) customer() map[string]interface{} {
	if m := subMap(e.root, "Customer", "customer", "Client", "client"); m != nil {
		return m
	}
	if m := subMap(e.wrapper(), "Customer", "customer", "Client", "client"); m != nil {
		return m
	}
	return subMap(e.appointment(), "Customer", "customer", "Client", "client")
}

// StaffName and StaffRole are optional; identity resolution uses them to
// name auto-created stylists.
func (e *BookingEvent) StaffName() string {
	return e.field("ServiceProviderName", "serviceProviderName", "StaffName", "staffName")
}

func (e *BookingEvent) StaffRole() string {
	return e.field("ServiceProviderRole", "serviceProviderRole", "StaffRole", "staffRole")
}

// CustomerName joins first/last when the payload splits them.
func (e *BookingEvent) CustomerName() string {
	if name := e.field("CustomerName", "customerName"); name != "" {
		return name
	}
	cust := e.customer()
	if cust == nil {
		return ""
	}
	if name := stringify(cust["Name"]); name != "" {
		return name
	}
	if name := stringify(cust["name"]); name != "" {
		return name
	}
	first, _ := resolve([]candidate{{cust, []string{"FirstName", "firstName"}}})
	last, _ := resolve([]candidate{{cust, []string{"LastName", "lastName"}}})
	return strings.TrimSpace(first + " " + last)
}

func (e *BookingEvent) CustomerEmail() string {
	if email := e.field("CustomerEmail", "customerEmail"); email != "" {
		return email
	}
	v, _ := resolve([]candidate{{e.customer(), []string{"Email", "email"}}})
	return v
}

func (e *BookingEvent) eventType() string {
	return e.field("EventType", "eventType", "Action", "action", "Type", "type")
}

func (e *BookingEvent) status() string {
	return e.field("Status", "status")
}

// IsCancellation reports whether the event cancels or deletes an
// appointment rather than booking or updating one.
func (e *BookingEvent) IsCancellation() bool {
	action := strings.ToLower(e.eventType())
	if strings.Contains(action, "cancel") || strings.Contains(action, "delete") {
		return true
	}
	switch strings.ToLower(e.status()) {
	case "canceled", "cancelled", "deleted":
		return true
	}
	return false
}

// IsDeletion distinguishes hard deletes from cancellations; the resulting
// local order status differs.
func (e *BookingEvent) IsDeletion() bool {
	if strings.Contains(strings.ToLower(e.eventType()), "delete") {
		return true
	}
	return strings.ToLower(e.status()) == "deleted"
}

// Normalize extracts all canonical fields at once.
func (e *BookingEvent) Normalize(now time.Time) NormalizedEvent {
	return NormalizedEvent{
		StaffID:       e.StaffID(),
		CustomerID:    e.CustomerID(),
		BusinessID:    e.BusinessID(),
		TotalAmount:   e.TotalAmount(),
		ServiceTitle:  e.ServiceTitle(),
		AppointmentID: e.AppointmentID(),
		AppointmentAt: e.AppointmentAt(now),
	}
}
