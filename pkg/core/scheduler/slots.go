package scheduler

import "strings"

// Slot is one (display label, underlying role) pair an event needs filled.
// The same slot list applies to every active event.
type Slot struct {
	Label string
	Role  string
}

// EventSlots is the fixed role-slot table for a service. Order here is the
// order slots are filled, which matters because earlier slots get first
// pick of the candidate pool.
var EventSlots = []Slot{
	{Label: "Camera 1", Role: "Videography"},
	{Label: "Camera 2", Role: "Videography"},
	{Label: "Streaming", Role: "Streaming"},
	{Label: "Media Desk", Role: "Media desk"},
	{Label: "Time Keeper", Role: "Time keeper"},
	{Label: "Sound Desk", Role: "Sound"},
}

// Pseudo-roles scored against history but not tied to an event slot
const (
	roleProducer          = "producer"
	roleAssistantProducer = "assistant_producer"
	roleHospitality       = "hospitality"
	roleSocialMedia       = "social media"
)

// RoleKey normalises a role name for lookups. Every map keyed by role name
// in this package uses this normalisation; applying it in one place avoids
// divergent casing between the catalogue, person tags and history records.
func RoleKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
