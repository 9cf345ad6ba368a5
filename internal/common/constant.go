// Package common contains shared constants and sentinel errors used across
// the user store components.
package common

// DefaultListLimit caps List calls that pass a non-positive limit.
const DefaultListLimit = 100

// MetricsNamespace prefixes every Prometheus metric exported by the server.
const MetricsNamespace = "userstore"
