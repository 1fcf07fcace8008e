// Package store provides SQLite-backed storage for plants, watering logs
// and care tasks.
//
// Every read and write is scoped by owner: a plant that exists but belongs
// to another user is reported exactly like a missing one, as ErrNotFound.
//
// Reads return fully populated garden.Plant values. Watering logs and care
// tasks are always loaded (possibly empty), ordered by date then id and by
// id respectively, and plants are listed in id order.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Deleting a plant cascades to its logs and tasks
//
// Timestamps are stored as fixed-width RFC 3339 UTC text.
package store
