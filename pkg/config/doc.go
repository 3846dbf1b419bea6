// Package config provides the gateway's configuration types and
// loading utilities.
//
// A configuration document declares the server settings and an ordered
// list of routes. Each route pairs a path pattern with exactly one
// handler kind (dir, file, proxy, json, mock) plus optional method
// restrictions, a path-rewrite template, and extra response headers.
// Validation runs before the listener binds; any violation aborts
// startup.
package config
