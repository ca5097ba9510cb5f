// Package session owns the in-memory session table: creation with
// collision-checked opaque tokens, lookup, idempotent removal, atomic
// refresh rotation, and expired-session sweeping.
//
// The store is the single authority for live sessions. All state lives in
// process memory; a restart invalidates every session, which is the
// intended durability model. Get deliberately returns expired sessions so
// that "session exists but is stale" and "session unknown" remain
// distinguishable outcomes; expiry is enforced by the caller.
package session
