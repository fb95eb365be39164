package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	postUC "github.com/nghiatran/devconnect/internal/application/usecase/post"
	"github.com/nghiatran/devconnect/pkg/apperror"
)

type PostHandler struct {
	createPostUseCase *postUC.CreatePostUseCase
	listPostsUseCase  *postUC.ListPostsUseCase
	getPostUseCase    *postUC.GetPostUseCase
	deletePostUseCase *postUC.DeletePostUseCase
	toggleLikeUseCase *postUC.ToggleLikeUseCase
	commentUseCase    *postUC.CommentUseCase
}

func NewPostHandler(
	createUC *postUC.CreatePostUseCase,
	listUC *postUC.ListPostsUseCase,
	getUC *postUC.GetPostUseCase,
	deleteUC *postUC.DeletePostUseCase,
	likeUC *postUC.ToggleLikeUseCase,
	commentUC *postUC.CommentUseCase,
) *PostHandler {
	return &PostHandler{
		createPostUseCase: createUC,
		listPostsUseCase:  listUC,
		getPostUseCase:    getUC,
		deletePostUseCase: deleteUC,
		toggleLikeUseCase: likeUC,
		commentUseCase:    commentUC,
	}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	output, err := h.createPostUseCase.Execute(c.Request.Context(), postUC.CreatePostInput{
		OwnerID: userID,
		Text:    req.Text,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToPostDTO(output.Post))
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	output, err := h.listPostsUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]PostDTO, len(output.Posts))
	for i, p := range output.Posts {
		dtos[i] = ToPostDTO(p)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("post", c.Param("id")))
		return
	}

	output, err := h.getPostUseCase.Execute(c.Request.Context(), postUC.GetPostInput{PostID: postID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToPostDTO(output.Post))
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("post", c.Param("id")))
		return
	}

	if err := h.deletePostUseCase.Execute(c.Request.Context(), postUC.DeletePostInput{
		PostID:      postID,
		RequesterID: userID,
	}); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post removed"})
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("post", c.Param("id")))
		return
	}

	output, err := h.toggleLikeUseCase.Execute(c.Request.Context(), postUC.ToggleLikeInput{
		PostID:      postID,
		RequesterID: userID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToLikeDTOs(output.Likes))
}

func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("post", c.Param("id")))
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	output, err := h.commentUseCase.ExecuteAdd(c.Request.Context(), postUC.AddCommentInput{
		PostID:      postID,
		RequesterID: userID,
		Text:        req.Text,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToCommentDTOs(output.Comments))
}

func (h *PostHandler) RemoveComment(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("post", c.Param("id")))
		return
	}

	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("comment", c.Param("comment_id")))
		return
	}

	output, err := h.commentUseCase.ExecuteRemove(c.Request.Context(), postUC.RemoveCommentInput{
		PostID:      postID,
		CommentID:   commentID,
		RequesterID: userID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToCommentDTOs(output.Comments))
}
