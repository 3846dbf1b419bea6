// Package engine implements the gateway's request routing and dispatch.
//
// A Router owns an ordered list of compiled routes, sorted by
// specificity (fewest wildcards first). For each request it collects
// every route whose pattern matches the path and tries them in order.
// A handler either produces a final response or declines, handing back
// a fallback (for example 405 on a method mismatch); the router keeps
// the last fallback and moves on to the next candidate. This lets a
// GET fall through a POST-only route to a GET-capable one.
//
// Each request is dispatched inside a recover boundary: a panic in a
// handler becomes a 500 response and an error log record, and never
// takes down the listener or other in-flight requests.
package engine
