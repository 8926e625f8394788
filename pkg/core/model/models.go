package model

import (
	"fmt"
	"strings"
	"time"
)

// Person is a rostered team member. Roles holds the names of the duty roles
// the person is qualified for.
type Person struct {
	ID                  int64
	FirstName           string
	LastName            string
	Email               string
	Roles               []string
	IsProducer          bool
	IsAssistantProducer bool
	IsPresent           bool
}

// FullName returns the display name used in roster output
func (p Person) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", p.FirstName, p.LastName))
}

// HasRole reports whether the person is qualified for the named role.
// Role names compare case-insensitively throughout the system.
func (p Person) HasRole(name string) bool {
	for _, r := range p.Roles {
		if strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

// Role is a duty role from the catalogue. Special roles (hospitality,
// social media) are assigned once per roster instead of per event.
type Role struct {
	ID        int64
	Name      string
	IsSpecial bool
}

// Event is a scheduled service that needs its role slots filled
type Event struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
}

// AssignmentRecord is one historical fact: a person held a role for an
// event on a date. The engine reads these to compute rotation load.
type AssignmentRecord struct {
	PersonID   int64
	PersonName string
	RoleName   string
	EventID    int64
	Date       time.Time
}

// PersonRef identifies a person in roster output
type PersonRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SlotAssignment is one filled slot in an event's roster
type SlotAssignment struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	PersonID int64  `json:"person_id"`
}

// EventRoster groups the slot assignments produced for one event
type EventRoster struct {
	EventID     int64            `json:"event_id"`
	EventName   string           `json:"event_name"`
	Assignments []SlotAssignment `json:"assignments"`
}

// RosterResult is the full output of one generation run for a target date
type RosterResult struct {
	Date              string        `json:"date"`
	Producer          PersonRef     `json:"producer"`
	AssistantProducer PersonRef     `json:"assistant_producer"`
	Events            []EventRoster `json:"events"`
	Hospitality       []string      `json:"hospitality"`
	SocialMedia       []string      `json:"social_media"`
}

// PersonStats summarises one person's assignments over the reporting window
type PersonStats struct {
	TotalAssignments int            `json:"total_assignments"`
	Roles            map[string]int `json:"roles"`
}

// RoleStats summarises one role's assignments over the reporting window
type RoleStats struct {
	TotalAssignments int            `json:"total_assignments"`
	People           map[string]int `json:"people"`
}

// StatisticsResult is the bidirectional assignment-count report
type StatisticsResult struct {
	Period           string                 `json:"period"`
	PersonStatistics map[string]PersonStats `json:"person_statistics"`
	RoleStatistics   map[string]RoleStats   `json:"role_statistics"`
	TotalAssignments int                    `json:"total_assignments"`
}
