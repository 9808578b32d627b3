// Package session keeps per-visitor UI state in memory.
//
// A Session is the server-side stand-in for the page's loading indicator,
// output area and toast: it implements generation.UI and owns the Coordinator
// that serializes that visitor's generation runs. Sessions live only in
// memory and are evicted after a period of inactivity.
package session
