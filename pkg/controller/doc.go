// Package controller provides HTTP middlewares and mux helpers shared by all
// API surfaces: permissive CORS, request-scoped access logging, and pprof
// endpoint registration.
package controller
