// Package models defines the core domain models for Schedulist.
//
// # Models
//
//   - Group: an owner profile (personal or team) and its ordered event types
//   - EventType: a bookable configuration (title, slug, duration, visibility)
//   - Host: a user assigned to an event type
//   - User: a registered account, used for authentication and ownership
//
// # Design Principles
//
// 1. **Order is data**: the sequence of EventTypes inside a Group is
// significant and mirrors the persisted position column at all times.
// 2. **IDs are the only keys**: EventType.ID is immutable and is the sole
// handle used for reordering, hiding, and deletion.
// 3. **Groups are read-only containers**: the backend assembles them; clients
// only ever replace the Items sequence, never create or destroy a Group.
// 4. **Avoid circular references**: relationships use ID values, not pointers.
package models
