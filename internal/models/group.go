package models

// SchedulingType describes how hosts are assigned to a booking.
type SchedulingType string

const (
	// SchedulingNone is a plain single-host event type.
	SchedulingNone SchedulingType = ""
	// SchedulingRoundRobin rotates bookings across hosts.
	SchedulingRoundRobin SchedulingType = "roundRobin"
	// SchedulingCollective books all hosts at once.
	SchedulingCollective SchedulingType = "collective"
)

// Host is a user assigned to an event type.
type Host struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// EventType is a bookable configuration. Its ID is immutable and is the sole
// key used for reordering, hiding, and deletion.
type EventType struct {
	ID             int64          `json:"id" validate:"required"`
	Title          string         `json:"title" validate:"required"`
	Slug           string         `json:"slug" validate:"required"`
	Description    string         `json:"description"`
	Length         int            `json:"length" validate:"gt=0"`
	SchedulingType SchedulingType `json:"schedulingType" validate:"omitempty,oneof=roundRobin collective"`
	Hidden         bool           `json:"hidden"`

	// Position is the zero-based index inside the owning group. The slice
	// order in Group.Items always matches it once reconciled with the server.
	Position int `json:"position"`

	Hosts []Host `json:"hosts,omitempty" validate:"dive"`
}

// Group is an owner profile and its ordered event types. Groups are assembled
// by the backend; clients never create or destroy one, only replace Items.
type Group struct {
	ProfileID int64  `json:"profileId" validate:"required"`
	Slug      string `json:"slug" validate:"required"`
	Name      string `json:"name" validate:"required"`

	// TeamID is zero for personal profiles.
	TeamID      int64 `json:"teamId,omitempty"`
	MemberCount int   `json:"memberCount"`
	ReadOnly    bool  `json:"readOnly"`

	// Items is the ordered collection. IDs within it are unique and the
	// order is significant.
	Items []EventType `json:"items" validate:"dive"`
}

// IsTeam reports whether the group belongs to a team.
func (g *Group) IsTeam() bool {
	return g.TeamID != 0
}
