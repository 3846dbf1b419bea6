// Package jsonstore implements a JSON document served from memory and
// persisted to a single file in the background.
//
// The document is loaded once at construction and guarded by a
// reader/writer lock: reads (GET lookups and the sync worker's
// serialize step) run concurrently, while patch application takes the
// exclusive lock for the duration of its resolve-and-apply step only.
// No I/O happens under the lock.
//
// Every successful patch raises a single-slot dirty signal. The sync
// worker blocks on that signal, serializes the current document, and
// rewrites the backing file wholesale. Signals coalesce: bursts of
// patches may be flushed as one write, but the state on disk is always
// eventually at least as recent as the last completed patch.
package jsonstore
