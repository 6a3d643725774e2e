package controllers

import (
	"fmt"
	"log/slog"
	"net/http"

	"postsapi/app/models"
	"postsapi/app/services"
)

var (
	listCommentsFailure = failure{
		operation:     "list_comments",
		serverMessage: "The comments information could not be retrieved.",
	}
	createCommentFailure = failure{
		operation:      "create_comment",
		invalidMessage: MsgTextRequired,
		serverMessage:  "There was an error while saving the comment to the database",
	}
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	logger         *slog.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, logger *slog.Logger) *CommentController {
	return &CommentController{
		commentService: commentService,
		logger:         logger,
	}
}

// Index lists the comments of a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		sendNotFound(w)
		return
	}

	comments, err := cc.commentService.ListPostComments(id)
	if err != nil {
		sendError(w, r, cc.logger, listCommentsFailure, err)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create adds a comment to a post and echoes the submitted text.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		sendNotFound(w)
		return
	}

	// Decode failures fall through as an empty input so that a missing post
	// still wins over a bad body.
	var in models.CommentInput
	if err := decodeBody(r, &in); err != nil {
		in = models.CommentInput{}
	}

	if _, err := cc.commentService.CreateComment(id, in); err != nil {
		sendError(w, r, cc.logger, createCommentFailure, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/posts/%d/comments", id))
	sendJSON(w, http.StatusCreated, in)
}
