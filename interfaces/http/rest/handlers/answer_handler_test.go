package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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
	"peersphere-backend/pkg/auth"
	"peersphere-backend/tests/fixtures"
)

// stubbedAnswerHandler registers stub command handlers that return the
// given answer, so the HTTP layer can be exercised without repositories.
func stubbedAnswerHandler(t *testing.T, answer *entities.Answer) *AnswerHandler {
	t.Helper()

	commandBus := bus.NewCommandBus()
	stub := bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) (interface{}, error) {
		return answer, nil
	})
	assert.NoError(t, commandBus.Register(commands.VoteAnswerCommand{}, stub))
	assert.NoError(t, commandBus.Register(commands.AcceptAnswerCommand{}, stub))

	return NewAnswerHandler(commandBus, querybus.NewQueryBus(), zap.NewNop())
}

func authedRequest(method, target, body, userID string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := auth.SetUserInContext(req.Context(), &auth.UserContext{UserID: userID})
	return req.WithContext(ctx)
}

func TestAnswerHandler_VoteAnswer_ReturnsFullAnswerView(t *testing.T) {
	// Arrange: the voter has already landed in the upvote set
	answer := fixtures.NewAnswerBuilder().WithAuthorID("answerer-1").MustBuild()
	voter, _ := valueobjects.NewUserID("voter-1")
	_, err := answer.Vote(voter, entities.VoteUp)
	assert.NoError(t, err)

	handler := stubbedAnswerHandler(t, answer)
	router := chi.NewRouter()
	router.Post("/answers/{answerID}/vote", handler.VoteAnswer)

	req := authedRequest(http.MethodPost,
		"/answers/"+answer.ID().String()+"/vote",
		`{"direction":"up"}`, "voter-1")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert: the body is the updated answer, not a vote summary
	assert.Equal(t, http.StatusOK, rec.Code)

	var view queries.AnswerView
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, answer.ID().String(), view.ID)
	assert.Equal(t, answer.Content(), view.Content)
	assert.Equal(t, "answerer-1", view.AuthorID)
	assert.Equal(t, 1, view.Upvotes)
	assert.Equal(t, 1, view.Score)
	assert.Equal(t, "up", view.ViewerVote)
	assert.False(t, view.IsAccepted)
}

func TestAnswerHandler_AcceptAnswer_ReturnsFullAnswerView(t *testing.T) {
	// Arrange
	answer := fixtures.NewAnswerBuilder().
		WithAuthorID("answerer-1").
		Accepted().
		MustBuild()

	handler := stubbedAnswerHandler(t, answer)
	router := chi.NewRouter()
	router.Post("/answers/{answerID}/accept", handler.AcceptAnswer)

	req := authedRequest(http.MethodPost,
		"/answers/"+answer.ID().String()+"/accept",
		"", "asker-1")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var view queries.AnswerView
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, answer.ID().String(), view.ID)
	assert.Equal(t, answer.Content(), view.Content)
	assert.True(t, view.IsAccepted)
}
