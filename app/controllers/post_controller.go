package controllers

import (
	"fmt"
	"log/slog"
	"net/http"

	"postsapi/app/models"
	"postsapi/app/services"
)

var (
	listPostsFailure = failure{
		operation:     "list_posts",
		serverMessage: "The posts information could not be retrieved.",
	}
	getPostFailure = failure{
		operation:     "get_post",
		serverMessage: "The post information could not be retrieved.",
	}
	createPostFailure = failure{
		operation:      "create_post",
		invalidMessage: MsgPostFieldsRequired,
		serverMessage:  "There was an error while saving the post to the database",
	}
	updatePostFailure = failure{
		operation:      "update_post",
		invalidMessage: MsgPostFieldsRequired,
		serverMessage:  "The post information could not be modified.",
	}
	deletePostFailure = failure{
		operation:     "delete_post",
		serverMessage: "The post could not be removed",
	}
)

// PostController handles HTTP requests for posts
type PostController struct {
	postService *services.PostService
	logger      *slog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, logger *slog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// Index lists posts, narrowed by the id, title and contents query parameters.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	filter := models.ParsePostFilter(r.URL.Query())

	posts, err := pc.postService.ListPosts(filter)
	if err != nil {
		sendError(w, r, pc.logger, listPostsFailure, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		sendNotFound(w)
		return
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		sendError(w, r, pc.logger, getPostFailure, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create stores a new post and echoes the submitted fields.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := decodeBody(r, &in); err != nil {
		sendBadRequest(w, MsgPostFieldsRequired)
		return
	}

	post, err := pc.postService.CreatePost(in)
	if err != nil {
		sendError(w, r, pc.logger, createPostFailure, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/posts/%d", post.ID))
	sendJSON(w, http.StatusCreated, in)
}

// Update replaces the title and contents of a post.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		sendNotFound(w)
		return
	}

	// A malformed body is reported only once the post is known to exist.
	var in models.PostInput
	if err := decodeBody(r, &in); err != nil {
		in = models.PostInput{}
	}

	post, err := pc.postService.UpdatePost(id, in)
	if err != nil {
		sendError(w, r, pc.logger, updatePostFailure, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete removes a post with its comments and returns the removed post.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		sendNotFound(w)
		return
	}

	post, err := pc.postService.DeletePost(id)
	if err != nil {
		sendError(w, r, pc.logger, deletePostFailure, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}
