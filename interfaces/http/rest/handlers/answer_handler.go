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
	"peersphere-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnswerHandler handles answer-related HTTP requests
type AnswerHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewAnswerHandler creates a new answer handler
func NewAnswerHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *AnswerHandler {
	return &AnswerHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateAnswerRequest represents the request body for posting an answer
type CreateAnswerRequest struct {
	Content string `json:"content" validate:"required,min=10"`
}

// CreateAnswer handles POST /questions/{questionID}/answers
func (h *AnswerHandler) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")
	if _, err := uuid.Parse(questionID); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid question ID format")
		return
	}

	var req CreateAnswerRequest
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

	cmd := commands.CreateAnswerCommand{
		QuestionID: questionID,
		AuthorID:   userCtx.UserID,
		Content:    req.Content,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.logger.Error("Failed to create answer",
			zap.String("questionID", questionID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(h.logger, w, err)
		return
	}

	answer, ok := result.(*entities.Answer)
	if !ok {
		respondError(h.logger, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected command result")
		return
	}

	viewer, _ := valueobjects.NewUserID(userCtx.UserID)
	respondJSON(h.logger, w, http.StatusCreated, queries.NewAnswerView(answer, viewer))
}

// ListAnswers handles GET /questions/{questionID}/answers
func (h *AnswerHandler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")
	if _, err := uuid.Parse(questionID); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid question ID format")
		return
	}

	query := queries.ListAnswersQuery{
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

// VoteAnswer handles POST /answers/{answerID}/vote
func (h *AnswerHandler) VoteAnswer(w http.ResponseWriter, r *http.Request) {
	answerID := chi.URLParam(r, "answerID")
	if _, err := uuid.Parse(answerID); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid answer ID format")
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

	cmd := commands.VoteAnswerCommand{
		AnswerID:  answerID,
		VoterID:   userCtx.UserID,
		Direction: req.Direction,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.logger.Warn("Answer vote rejected",
			zap.String("answerID", answerID),
			zap.String("voterID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(h.logger, w, err)
		return
	}

	answer, ok := result.(*entities.Answer)
	if !ok {
		respondError(h.logger, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected command result")
		return
	}

	viewer, _ := valueobjects.NewUserID(userCtx.UserID)
	respondJSON(h.logger, w, http.StatusOK, queries.NewAnswerView(answer, viewer))
}

// AcceptAnswer handles POST /answers/{answerID}/accept
func (h *AnswerHandler) AcceptAnswer(w http.ResponseWriter, r *http.Request) {
	answerID := chi.URLParam(r, "answerID")
	if _, err := uuid.Parse(answerID); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid answer ID format")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(h.logger, w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	cmd := commands.AcceptAnswerCommand{
		AnswerID:   answerID,
		AcceptedBy: userCtx.UserID,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.logger.Warn("Answer acceptance rejected",
			zap.String("answerID", answerID),
			zap.String("acceptedBy", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(h.logger, w, err)
		return
	}

	answer, ok := result.(*entities.Answer)
	if !ok {
		respondError(h.logger, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected command result")
		return
	}

	viewer, _ := valueobjects.NewUserID(userCtx.UserID)
	respondJSON(h.logger, w, http.StatusOK, queries.NewAnswerView(answer, viewer))
}

// CommentAnswer handles POST /answers/{answerID}/comments
func (h *AnswerHandler) CommentAnswer(w http.ResponseWriter, r *http.Request) {
	answerID := chi.URLParam(r, "answerID")
	if _, err := uuid.Parse(answerID); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid answer ID format")
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
		Target:   commands.CommentOnAnswer,
		TargetID: answerID,
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
