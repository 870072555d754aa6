// Package domain contains the core value objects shared between the
// resolver adapters and the HTTP layer.
package domain
