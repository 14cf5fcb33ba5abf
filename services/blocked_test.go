package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlockedTime(t *testing.T) {
	tests := []struct {
		title      string
		customerID string
		blocked    bool
	}{
		{"Lunch Break", "", true},
		{"Lunch Break", "c1", false},
		{"PERSONAL TIME", "", true},
		{"Team Meeting", "", true},
		{"Day Off", "", true},
		{"Not Available", "", true},
		{"Haircut", "", false},
		{"Haircut", "c1", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.blocked, IsBlockedTime(tt.title, tt.customerID))
		})
	}
}

func TestSkipReason(t *testing.T) {
	tests := []struct {
		name string
		ev   NormalizedEvent
		skip bool
	}{
		{
			name: "no staff id always skips",
			ev:   NormalizedEvent{ServiceTitle: "Haircut", CustomerID: "c1"},
			skip: true,
		},
		{
			name: "blocked time skips",
			ev:   NormalizedEvent{StaffID: "p1", ServiceTitle: "Lunch Break"},
			skip: true,
		},
		{
			name: "blocked keyword with customer proceeds",
			ev:   NormalizedEvent{StaffID: "p1", ServiceTitle: "Lunch Break", CustomerID: "c1"},
			skip: false,
		},
		{
			name: "no customer but meaningful title proceeds",
			ev:   NormalizedEvent{StaffID: "p1", ServiceTitle: "Haircut"},
			skip: false,
		},
		{
			name: "no customer and placeholder title skips",
			ev:   NormalizedEvent{StaffID: "p1", ServiceTitle: "Service"},
			skip: true,
		},
		{
			name: "no customer and empty title skips",
			ev:   NormalizedEvent{StaffID: "p1"},
			skip: true,
		},
		{
			name: "real appointment proceeds",
			ev:   NormalizedEvent{StaffID: "p1", ServiceTitle: "Color", CustomerID: "c1"},
			skip: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, skip := SkipReason(tt.ev)
			assert.Equal(t, tt.skip, skip)
			if skip {
				assert.NotEmpty(t, reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}
