package handlers

import (
	"encoding/json"
	"net/http"

	"peersphere-backend/application/commands"
	"peersphere-backend/application/commands/bus"
	"peersphere-backend/application/queries"
	querybus "peersphere-backend/application/queries/bus"
	"peersphere-backend/domain/core/entities"
	"peersphere-backend/domain/core/valueobjects"
	"peersphere-backend/pkg/auth"
	"peersphere-backend/pkg/common"
	"peersphere-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *QuestionHandler {
	return &QuestionHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateQuestionRequest represents the request body for asking a question
type CreateQuestionRequest struct {
	Title   string   `json:"title" validate:"required,min=10,max=200"`
	Content string   `json:"content" validate:"required,min=20"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,max=5,dive,min=1,max=35"`
}

// VoteRequest represents the request body for casting a vote
type VoteRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// CommentRequest represents the request body for adding a comment
type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// CreateQuestion handles POST /questions
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(h.logger, w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	cmd := commands.CreateQuestionCommand{
		AuthorID: userCtx.UserID,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.logger.Error("Failed to create question",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(h.logger, w, err)
		return
	}

	question, ok := result.(*entities.Question)
	if !ok {
		respondError(h.logger, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected command result")
		return
	}

	viewer, _ := valueobjects.NewUserID(userCtx.UserID)
	respondJSON(h.logger, w, http.StatusCreated, queries.NewQuestionView(question, viewer))
}

// GetQuestion handles GET /questions/{questionID}
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")
	if _, err := uuid.Parse(questionID); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid question ID format")
		return
	}

	query := queries.GetQuestionQuery{
		QuestionID: questionID,
		ViewerID:   viewerID(r),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, result)
}

// ListQuestions handles GET /questions
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	params := common.ExtractCursorParams(r, queries.DefaultPageSize, queries.MaxPageSize)

	query := queries.ListQuestionsQuery{
		Tag:       r.URL.Query().Get("tag"),
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list questions", zap.Error(err))
		respondAppError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, result)
}

// VoteQuestion handles POST /questions/{questionID}/vote
func (h *QuestionHandler) VoteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")
	if _, err := uuid.Parse(questionID); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid question ID format")
		return
	}

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(h.logger, w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	cmd := commands.VoteQuestionCommand{
		QuestionID: questionID,
		VoterID:    userCtx.UserID,
		Direction:  req.Direction,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.logger.Warn("Question vote rejected",
			zap.String("questionID", questionID),
			zap.String("voterID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(h.logger, w, err)
		return
	}

	question, ok := result.(*entities.Question)
	if !ok {
		respondError(h.logger, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected command result")
		return
	}

	viewer, _ := valueobjects.NewUserID(userCtx.UserID)
	respondJSON(h.logger, w, http.StatusOK, queries.NewQuestionView(question, viewer))
}

// CommentQuestion handles POST /questions/{questionID}/comments
func (h *QuestionHandler) CommentQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")
	if _, err := uuid.Parse(questionID); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid question ID format")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(h.logger, w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	cmd := commands.AddCommentCommand{
		Target:   commands.CommentOnQuestion,
		TargetID: questionID,
		AuthorID: userCtx.UserID,
		Content:  req.Content,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, result)
}

// viewerID returns the authenticated caller's ID or "" for anonymous
// requests that came through OptionalAuthenticate
func viewerID(r *http.Request) string {
	if userCtx, err := auth.GetUserFromContext(r.Context()); err == nil {
		return userCtx.UserID
	}
	return ""
}
