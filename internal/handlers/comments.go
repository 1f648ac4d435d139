package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/playvault/playvault/internal/middleware"
	"github.com/playvault/playvault/internal/services"
	"github.com/playvault/playvault/internal/utils"
	"gorm.io/gorm"
)

// CommentHandler handles game comment routes.
type CommentHandler struct {
	DB *gorm.DB
}

// Add handles POST /api/games/:gameId/comments
// @Summary Add a comment
// @Description One comment per user per game.
// @Tags Comments
// @Accept json
// @Produce json
// @Param gameId path int true "External numeric id"
// @Param body body object true "content"
// @Success 201 {object} models.Comment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /games/{gameId}/comments [post]
func (h *CommentHandler) Add(c *fiber.Ctx) error {
	gameAppID, ok := parseIDParam(c, "gameId")
	if !ok {
		return utils.ErrorResponse(c, "game id must be a valid number", fiber.StatusBadRequest, "comments.validation.gameId")
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "invalid input", fiber.StatusBadRequest, "comments.validation.input")
	}
	if strings.TrimSpace(body.Content) == "" {
		return utils.ErrorResponse(c, "content is required", fiber.StatusBadRequest, "comments.validation.input")
	}

	comment, err := services.AddComment(h.DB, middleware.UserID(c), gameAppID, body.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.NotFoundResponse(c, "game not found")
		case errors.Is(err, services.ErrAlreadyCommented):
			return utils.ErrorResponse(c, "you have already commented on this game", fiber.StatusBadRequest, "comments.duplicate")
		default:
			return err
		}
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// List handles GET /api/games/:gameId/comments
// @Summary List comments for a game
// @Description Newest first, each with the commenting user's name and photo.
// @Tags Comments
// @Produce json
// @Param gameId path int true "External numeric id"
// @Success 200 {array} models.Comment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /games/{gameId}/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	gameAppID, ok := parseIDParam(c, "gameId")
	if !ok {
		return utils.ErrorResponse(c, "game id must be a valid number", fiber.StatusBadRequest, "comments.validation.gameId")
	}

	comments, err := services.ListComments(h.DB, gameAppID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(comments)
}

// Update handles PUT /api/comments/:commentId
// @Summary Edit a comment
// @Description Only the authoring user may edit.
// @Tags Comments
// @Accept json
// @Produce json
// @Param commentId path int true "Comment id"
// @Param body body object true "content"
// @Success 200 {object} models.Comment
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /comments/{commentId} [put]
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return utils.ErrorResponse(c, "comment id must be a valid number", fiber.StatusBadRequest, "comments.validation.commentId")
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "invalid input", fiber.StatusBadRequest, "comments.validation.input")
	}
	if strings.TrimSpace(body.Content) == "" {
		return utils.ErrorResponse(c, "content is required", fiber.StatusBadRequest, "comments.validation.input")
	}

	comment, err := services.UpdateComment(h.DB, commentID, middleware.UserID(c), body.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.NotFoundResponse(c, "comment not found")
		case errors.Is(err, services.ErrNotOwner):
			return utils.ErrorResponse(c, "you can only edit your own comments", fiber.StatusForbidden, "comments.ownership")
		default:
			return err
		}
	}
	return c.Status(fiber.StatusOK).JSON(comment)
}

// Delete handles DELETE /api/comments/:commentId
// @Summary Delete a comment
// @Description Only the authoring user may delete.
// @Tags Comments
// @Produce json
// @Param commentId path int true "Comment id"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /comments/{commentId} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return utils.ErrorResponse(c, "comment id must be a valid number", fiber.StatusBadRequest, "comments.validation.commentId")
	}

	err := services.DeleteComment(h.DB, commentID, middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.NotFoundResponse(c, "comment not found")
		case errors.Is(err, services.ErrNotOwner):
			return utils.ErrorResponse(c, "you can only delete your own comments", fiber.StatusForbidden, "comments.ownership")
		default:
			return err
		}
	}
	return utils.MessageResponse(c, fiber.StatusOK, "comment deleted successfully")
}
