package controller

import (
	"net/http"
	"net/http/pprof"
)

// PprofMux returns a mux with the runtime profiling endpoints registered.
// Mount it under /debug/pprof/ with http.StripPrefix.
func PprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)

	return mux
}
