package handlers

import "net/http"

// HandleHealth is a simple health check handler that returns "ok".
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// RedirectHandler returns a handler that redirects every request to target.
func RedirectHandler(target string) http.Handler {
	return http.RedirectHandler(target, http.StatusTemporaryRedirect)
}
