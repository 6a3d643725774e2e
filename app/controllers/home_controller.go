package controllers

import "net/http"

const homePage = "<p>posts api</p>"

// Home answers the root URL with a static HTML fragment.
func Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(homePage))
}

// NotFound is the JSON 404 for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
}

// MethodNotAllowed is the JSON 405 for known routes hit with another verb.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
}
