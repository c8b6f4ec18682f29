// Package events holds upstream trigger event shapes.
//
// Shared decoding policy: upstream sources document many string fields as
// required but deliver null or "" in practice. Every such field is plain
// Go string (or a nil-able map/pointer for composites), so null and ""
// both decode to the zero value without error; the zero value uniformly
// means "absent". No event decode may fail because a documented-required
// field was null or empty.
package events
