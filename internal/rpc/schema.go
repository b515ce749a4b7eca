// Package rpc defines the wire schema shared by the Schedulist server and
// client: procedure paths, request/response messages, the JSON codec, and a
// typed client with boundary validation.
//
// The schema is hand-authored. Messages are plain structs with json tags and
// travel through Connect with a JSON codec, so both sides share one explicit
// contract instead of guessing at optional fields.
package rpc

import "github.com/schedulist/schedulist/internal/models"

// Procedure paths for the Connect handlers and clients. The format matches
// what protoc-gen-connect-go would emit for a schedulist.v1 package.
const (
	ProcedureListGroups = "/schedulist.v1.EventTypeService/ListGroups"
	ProcedureReorder    = "/schedulist.v1.EventTypeService/Reorder"
	ProcedureSetHidden  = "/schedulist.v1.EventTypeService/SetHidden"
	ProcedureDelete     = "/schedulist.v1.EventTypeService/Delete"
	ProcedureCreate     = "/schedulist.v1.EventTypeService/Create"

	ProcedureRegister = "/schedulist.v1.AuthService/Register"
	ProcedureLogin    = "/schedulist.v1.AuthService/Login"
)

// RPCPrefix is the path prefix shared by all Connect procedures. The server
// uses it to route API traffic away from other endpoints.
const RPCPrefix = "/schedulist.v1."

// ListGroupsRequest fetches the caller's collection. The caller is implicit
// in the session token.
type ListGroupsRequest struct{}

// ListGroupsResponse carries every group visible to the caller, each with
// its event types in authoritative order.
type ListGroupsResponse struct {
	Groups []models.Group `json:"groups" validate:"dive"`
}

// ReorderRequest carries the full new id sequence for one group's
// collection, in display order.
type ReorderRequest struct {
	ProfileID int64   `json:"profileId"`
	IDs       []int64 `json:"ids"`
}

// ReorderResponse is empty; success or failure is all the caller needs.
type ReorderResponse struct{}

// SetHiddenRequest updates the visibility flag of one event type.
type SetHiddenRequest struct {
	ID     int64 `json:"id"`
	Hidden bool  `json:"hidden"`
}

// SetHiddenResponse is empty.
type SetHiddenResponse struct{}

// DeleteRequest removes one event type.
type DeleteRequest struct {
	ID int64 `json:"id"`
}

// DeleteResponse is empty.
type DeleteResponse struct{}

// CreateRequest creates a new event type at the tail of a group's
// collection. The duplicate flow and the empty-state call-to-action both end
// here.
type CreateRequest struct {
	ProfileID      int64                 `json:"profileId"`
	Title          string                `json:"title"`
	Slug           string                `json:"slug"`
	Description    string                `json:"description"`
	Length         int                   `json:"length"`
	SchedulingType models.SchedulingType `json:"schedulingType"`
}

// CreateResponse returns the created event type with its assigned ID and
// position.
type CreateResponse struct {
	EventType models.EventType `json:"eventType"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Slug        string `json:"slug"`
	Password    string `json:"password"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the session token for subsequent calls.
type AuthResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Slug        string `json:"slug"`
}
