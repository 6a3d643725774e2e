package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"postsapi/app/observability"
	"postsapi/app/repositories"
	"postsapi/app/services"

	"github.com/gorilla/mux"
)

// Response messages shared by the post and comment routes.
const (
	MsgPostNotFound       = "The post with the specified ID does not exist."
	MsgPostFieldsRequired = "Please provide title and contents for the post."
	MsgTextRequired       = "Please provide text for the comment."
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorMessageResponse struct {
	ErrorMessage string `json:"errorMessage"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// sendJSON writes data as JSON with the given status.
func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendNotFound(w http.ResponseWriter) {
	sendJSON(w, http.StatusNotFound, messageResponse{Message: MsgPostNotFound})
}

func sendBadRequest(w http.ResponseWriter, message string) {
	sendJSON(w, http.StatusBadRequest, errorMessageResponse{ErrorMessage: message})
}

// failure describes how a route reports a service error.
type failure struct {
	operation      string
	invalidMessage string
	serverMessage  string
}

// sendError maps err to a 404, a 400 carrying f.invalidMessage, or a 500
// carrying f.serverMessage. Only the 500 case is logged since it hides the
// underlying error from the client.
func sendError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, f failure, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		sendNotFound(w)
	case errors.Is(err, services.ErrValidation):
		sendBadRequest(w, f.invalidMessage)
	default:
		observability.RecordDatastoreError(f.operation)
		logger.ErrorContext(r.Context(), "datastore operation failed",
			slog.String("operation", f.operation),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("post_id", mux.Vars(r)["id"]),
			slog.String("error", err.Error()),
		)
		sendJSON(w, http.StatusInternalServerError, errorResponse{Error: f.serverMessage})
	}
}

// postID reads the {id} path variable. Anything but a positive integer
// cannot name a stored post.
func postID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// errTrailingData rejects bodies holding more than one JSON value.
var errTrailingData = errors.New("unexpected data after JSON body")

// decodeBody decodes the JSON request body into v. An empty body leaves v
// untouched. The body must hold exactly one JSON value.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}
