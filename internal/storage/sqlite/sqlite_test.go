package sqlite

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/schedulist/schedulist/internal/models"
	"github.com/schedulist/schedulist/internal/storage"
)

func setupTestStore(t *testing.T) (*SQLiteStore, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return store, cleanup
}

// seedUser creates a user and returns it along with the personal profile ID.
func seedUser(t *testing.T, store *SQLiteStore, email, slug string) (*models.User, int64) {
	t.Helper()

	ctx := context.Background()
	user := models.NewUser(email, "Test "+slug, slug, "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	groups, err := store.ListGroups(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 personal profile, got %d", len(groups))
	}

	return user, groups[0].ProfileID
}

func seedEventType(t *testing.T, store *SQLiteStore, profileID int64, title, slug string) *models.EventType {
	t.Helper()

	et := &models.EventType{Title: title, Slug: slug, Length: 30}
	if err := store.CreateEventType(context.Background(), profileID, et); err != nil {
		t.Fatalf("CreateEventType failed: %v", err)
	}
	return et
}

func currentIDs(t *testing.T, store *SQLiteStore, userID string) []int64 {
	t.Helper()

	groups, err := store.ListGroups(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) == 0 {
		return nil
	}

	ids := make([]int64, len(groups[0].Items))
	for i, it := range groups[0].Items {
		ids[i] = it.ID
	}
	return ids
}

func TestCreateUserCreatesPersonalProfile(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user, _ := seedUser(t, store, "alice@example.com", "alice")

	groups, err := store.ListGroups(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}

	g := groups[0]
	if g.Slug != "alice" {
		t.Errorf("expected profile slug 'alice', got %q", g.Slug)
	}
	if g.IsTeam() {
		t.Error("personal profile must not be a team")
	}
	if g.ReadOnly {
		t.Error("personal profile must not be read-only")
	}
	if g.MemberCount != 1 {
		t.Errorf("expected member count 1, got %d", g.MemberCount)
	}
}

func TestCreateEventTypeAppendsPositions(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user, profileID := seedUser(t, store, "alice@example.com", "alice")

	a := seedEventType(t, store, profileID, "Intro", "intro")
	b := seedEventType(t, store, profileID, "Demo", "demo")
	c := seedEventType(t, store, profileID, "Review", "review")

	if a.Position != 0 || b.Position != 1 || c.Position != 2 {
		t.Errorf("expected tail positions 0,1,2, got %d,%d,%d", a.Position, b.Position, c.Position)
	}

	ids := currentIDs(t, store, user.ID)
	want := []int64{a.ID, b.ID, c.ID}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
}

func TestReorderEventTypes(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user, profileID := seedUser(t, store, "alice@example.com", "alice")
	a := seedEventType(t, store, profileID, "A", "a")
	b := seedEventType(t, store, profileID, "B", "b")
	c := seedEventType(t, store, profileID, "C", "c")

	// Swap the first two, as a move-up of index 1 would.
	err := store.ReorderEventTypes(context.Background(), profileID, []int64{b.ID, a.ID, c.ID})
	if err != nil {
		t.Fatalf("ReorderEventTypes failed: %v", err)
	}

	ids := currentIDs(t, store, user.ID)
	want := []int64{b.ID, a.ID, c.ID}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
}

func TestReorderRejectsNonPermutation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user, profileID := seedUser(t, store, "alice@example.com", "alice")
	a := seedEventType(t, store, profileID, "A", "a")
	b := seedEventType(t, store, profileID, "B", "b")

	ctx := context.Background()
	cases := [][]int64{
		{a.ID},             // missing id
		{a.ID, b.ID, 9999}, // unknown id
		{a.ID, a.ID},       // duplicate id
		nil,                // empty
	}
	for _, ids := range cases {
		err := store.ReorderEventTypes(ctx, profileID, ids)
		if !errors.Is(err, storage.ErrNotPermutation) {
			t.Errorf("reorder %v: expected ErrNotPermutation, got %v", ids, err)
		}
	}

	// The stored order must be untouched after rejected requests.
	ids := currentIDs(t, store, user.ID)
	want := []int64{a.ID, b.ID}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
}

func TestSetEventTypeHidden(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, profileID := seedUser(t, store, "alice@example.com", "alice")
	et := seedEventType(t, store, profileID, "A", "a")

	ctx := context.Background()
	if err := store.SetEventTypeHidden(ctx, et.ID, true); err != nil {
		t.Fatalf("SetEventTypeHidden failed: %v", err)
	}

	got, err := store.GetEventType(ctx, et.ID)
	if err != nil {
		t.Fatalf("GetEventType failed: %v", err)
	}
	if !got.Hidden {
		t.Error("expected event type to be hidden")
	}

	if err := store.SetEventTypeHidden(ctx, 9999, true); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestDeleteEventTypeCompactsPositions(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user, profileID := seedUser(t, store, "alice@example.com", "alice")
	a := seedEventType(t, store, profileID, "A", "a")
	b := seedEventType(t, store, profileID, "B", "b")
	c := seedEventType(t, store, profileID, "C", "c")

	ctx := context.Background()
	if err := store.DeleteEventType(ctx, b.ID); err != nil {
		t.Fatalf("DeleteEventType failed: %v", err)
	}

	groups, err := store.ListGroups(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	items := groups[0].Items
	if len(items) != 2 {
		t.Fatalf("expected 2 items after delete, got %d", len(items))
	}
	if items[0].ID != a.ID || items[1].ID != c.ID {
		t.Errorf("expected remaining order [%d %d], got [%d %d]", a.ID, c.ID, items[0].ID, items[1].ID)
	}
	if items[0].Position != 0 || items[1].Position != 1 {
		t.Errorf("expected compacted positions 0,1, got %d,%d", items[0].Position, items[1].Position)
	}

	if err := store.DeleteEventType(ctx, b.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound on repeated delete, got %v", err)
	}
}
