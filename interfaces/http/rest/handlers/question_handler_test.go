package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"peersphere-backend/application/commands"
	"peersphere-backend/application/commands/bus"
	"peersphere-backend/application/queries"
	querybus "peersphere-backend/application/queries/bus"
	"peersphere-backend/domain/core/entities"
	"peersphere-backend/domain/core/valueobjects"
	"peersphere-backend/tests/fixtures"
)

func TestQuestionHandler_VoteQuestion_ReturnsFullQuestionView(t *testing.T) {
	// Arrange: the voter has already landed in the downvote set
	question := fixtures.NewQuestionBuilder().WithAuthorID("asker-1").MustBuild()
	voter, _ := valueobjects.NewUserID("voter-1")
	_, err := question.Vote(voter, entities.VoteDown)
	assert.NoError(t, err)

	commandBus := bus.NewCommandBus()
	assert.NoError(t, commandBus.Register(commands.VoteQuestionCommand{},
		bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			return question, nil
		})))
	handler := NewQuestionHandler(commandBus, querybus.NewQueryBus(), zap.NewNop())

	router := chi.NewRouter()
	router.Post("/questions/{questionID}/vote", handler.VoteQuestion)

	req := authedRequest(http.MethodPost,
		"/questions/"+question.ID().String()+"/vote",
		`{"direction":"down"}`, "voter-1")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert: the body is the updated question, not a vote summary
	assert.Equal(t, http.StatusOK, rec.Code)

	var view queries.QuestionView
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, question.ID().String(), view.ID)
	assert.Equal(t, question.Title(), view.Title)
	assert.Equal(t, question.Content(), view.Content)
	assert.Equal(t, 1, view.Downvotes)
	assert.Equal(t, -1, view.Score)
	assert.Equal(t, "down", view.ViewerVote)
}
