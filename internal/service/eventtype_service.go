// Package service implements the Connect RPC services over storage.Store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/schedulist/schedulist/internal/middleware"
	"github.com/schedulist/schedulist/internal/models"
	"github.com/schedulist/schedulist/internal/ordering"
	"github.com/schedulist/schedulist/internal/rpc"
	"github.com/schedulist/schedulist/internal/storage"
)

// EventTypeService implements the event type RPC procedures. Every operation
// runs in the context of the authenticated user and is checked against that
// user's groups before touching storage, so one user can never address
// another user's event types by guessing IDs.
type EventTypeService struct {
	store storage.Store
}

// NewEventTypeService creates a new EventTypeService with the given storage backend.
func NewEventTypeService(store storage.Store) *EventTypeService {
	return &EventTypeService{store: store}
}

// ListGroups returns the caller's groups with their ordered collections.
func (s *EventTypeService) ListGroups(ctx context.Context, req *connect.Request[rpc.ListGroupsRequest]) (*connect.Response[rpc.ListGroupsResponse], error) {
	userID := middleware.GetUserID(ctx)

	groups, err := s.store.ListGroups(ctx, userID)
	if err != nil {
		slog.Error("ListGroups failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("ListGroups successful", "user_id", userID, "count", len(groups))

	return connect.NewResponse(&rpc.ListGroupsResponse{Groups: groups}), nil
}

// Reorder rewrites the order of one group's collection. The request carries
// the full id sequence; anything that is not a permutation of the stored
// collection is rejected.
func (s *EventTypeService) Reorder(ctx context.Context, req *connect.Request[rpc.ReorderRequest]) (*connect.Response[rpc.ReorderResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("Reorder request received",
		"user_id", userID,
		"profile_id", req.Msg.ProfileID,
		"ids_count", len(req.Msg.IDs),
	)

	if req.Msg.ProfileID == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("profile_id required"))
	}
	if !ordering.Unique(req.Msg.IDs) {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("duplicate ids in reorder request"))
	}

	if _, err := s.writableGroup(ctx, userID, req.Msg.ProfileID); err != nil {
		return nil, err
	}

	if err := s.store.ReorderEventTypes(ctx, req.Msg.ProfileID, req.Msg.IDs); err != nil {
		slog.Error("Reorder failed", "profile_id", req.Msg.ProfileID, "error", err)
		if errors.Is(err, storage.ErrNotPermutation) {
			return nil, connect.NewError(connect.CodeFailedPrecondition, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Reorder successful", "profile_id", req.Msg.ProfileID)

	return connect.NewResponse(&rpc.ReorderResponse{}), nil
}

// SetHidden flips the visibility flag of one event type.
func (s *EventTypeService) SetHidden(ctx context.Context, req *connect.Request[rpc.SetHiddenRequest]) (*connect.Response[rpc.SetHiddenResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("SetHidden request received", "user_id", userID, "id", req.Msg.ID, "hidden", req.Msg.Hidden)

	if _, err := s.ownedEventType(ctx, userID, req.Msg.ID); err != nil {
		return nil, err
	}

	if err := s.store.SetEventTypeHidden(ctx, req.Msg.ID, req.Msg.Hidden); err != nil {
		slog.Error("SetHidden failed", "id", req.Msg.ID, "error", err)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&rpc.SetHiddenResponse{}), nil
}

// Delete removes one event type. Deletion is final.
func (s *EventTypeService) Delete(ctx context.Context, req *connect.Request[rpc.DeleteRequest]) (*connect.Response[rpc.DeleteResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("Delete request received", "user_id", userID, "id", req.Msg.ID)

	if _, err := s.ownedEventType(ctx, userID, req.Msg.ID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteEventType(ctx, req.Msg.ID); err != nil {
		slog.Error("Delete failed", "id", req.Msg.ID, "error", err)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Delete successful", "id", req.Msg.ID)

	return connect.NewResponse(&rpc.DeleteResponse{}), nil
}

// Create appends a new event type to a group's collection.
func (s *EventTypeService) Create(ctx context.Context, req *connect.Request[rpc.CreateRequest]) (*connect.Response[rpc.CreateResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("Create request received",
		"user_id", userID,
		"profile_id", req.Msg.ProfileID,
		"slug", req.Msg.Slug,
	)

	if req.Msg.Title == "" || req.Msg.Slug == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("title and slug required"))
	}
	if req.Msg.Length <= 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("length must be positive"))
	}

	group, err := s.writableGroup(ctx, userID, req.Msg.ProfileID)
	if err != nil {
		return nil, err
	}
	for _, it := range group.Items {
		if it.Slug == req.Msg.Slug {
			return nil, connect.NewError(connect.CodeAlreadyExists,
				fmt.Errorf("slug %q already used in this group", req.Msg.Slug))
		}
	}

	et := &models.EventType{
		Title:          req.Msg.Title,
		Slug:           req.Msg.Slug,
		Description:    req.Msg.Description,
		Length:         req.Msg.Length,
		SchedulingType: req.Msg.SchedulingType,
	}
	if err := s.store.CreateEventType(ctx, req.Msg.ProfileID, et); err != nil {
		slog.Error("Create failed", "profile_id", req.Msg.ProfileID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Create successful", "id", et.ID, "position", et.Position)

	return connect.NewResponse(&rpc.CreateResponse{EventType: *et}), nil
}

// writableGroup returns the user's group with the given profile ID, or an
// RPC error when the group is missing or read-only for this user.
func (s *EventTypeService) writableGroup(ctx context.Context, userID string, profileID int64) (*models.Group, error) {
	groups, err := s.store.ListGroups(ctx, userID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	for i := range groups {
		if groups[i].ProfileID != profileID {
			continue
		}
		if groups[i].ReadOnly {
			return nil, connect.NewError(connect.CodePermissionDenied,
				fmt.Errorf("group %d is read-only for this user", profileID))
		}
		return &groups[i], nil
	}

	return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("group %d: %w", profileID, storage.ErrNotFound))
}

// ownedEventType locates the event type inside the user's writable groups.
// An id outside them is reported as not found, deliberately not as
// permission denied, to avoid leaking which ids exist.
func (s *EventTypeService) ownedEventType(ctx context.Context, userID string, id int64) (*models.EventType, error) {
	groups, err := s.store.ListGroups(ctx, userID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	for i := range groups {
		for j := range groups[i].Items {
			if groups[i].Items[j].ID != id {
				continue
			}
			if groups[i].ReadOnly {
				return nil, connect.NewError(connect.CodeNotFound,
					fmt.Errorf("event type %d: %w", id, storage.ErrNotFound))
			}
			return &groups[i].Items[j], nil
		}
	}

	return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("event type %d: %w", id, storage.ErrNotFound))
}
