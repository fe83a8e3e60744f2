package main

import (
	"net/http"
)

// healthHandler returns server and database health status
func (rm *RouteManager) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if !rm.dbManager.IsConnectionHealthy() {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]string{"status": status})
}
