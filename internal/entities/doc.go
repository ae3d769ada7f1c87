// Package entities contains the value types shared by the rotation engine:
// polled snapshots of characters, roster entries for hostiles and allies,
// resource pools and archetype paths.
//
// Snapshots are plain data decoded from the state provider. Roster entries
// (Hostile, Member) implement core.Entity so they can travel as the source
// or target of toolkit events.
package entities
