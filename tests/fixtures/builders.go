// Package fixtures provides builders for test entities with sensible defaults.
package fixtures

import (
	"fmt"

	"peersphere-backend/domain/core/entities"
	"peersphere-backend/domain/core/valueobjects"
)

// QuestionBuilder helps create test questions with default values
type QuestionBuilder struct {
	authorID string
	title    string
	content  string
	tags     []string
}

func NewQuestionBuilder() *QuestionBuilder {
	return &QuestionBuilder{
		authorID: "test-user-123",
		title:    "How do I test builders?",
		content:  "This is a question body long enough to pass validation.",
		tags:     []string{"testing"},
	}
}

func (b *QuestionBuilder) WithAuthorID(authorID string) *QuestionBuilder {
	b.authorID = authorID
	return b
}

func (b *QuestionBuilder) WithTitle(title string) *QuestionBuilder {
	b.title = title
	return b
}

func (b *QuestionBuilder) WithContent(content string) *QuestionBuilder {
	b.content = content
	return b
}

func (b *QuestionBuilder) WithTags(tags ...string) *QuestionBuilder {
	b.tags = tags
	return b
}

func (b *QuestionBuilder) Build() (*entities.Question, error) {
	authorID, err := valueobjects.NewUserID(b.authorID)
	if err != nil {
		return nil, err
	}
	return entities.NewQuestion(authorID, b.title, b.content, b.tags)
}

func (b *QuestionBuilder) MustBuild() *entities.Question {
	question, err := b.Build()
	if err != nil {
		panic(err)
	}
	// Mark creation events as committed so tests don't see them
	question.MarkEventsAsCommitted()
	return question
}

// AnswerBuilder helps create test answers with default values
type AnswerBuilder struct {
	questionID valueobjects.QuestionID
	authorID   string
	content    string
	accepted   bool
}

func NewAnswerBuilder() *AnswerBuilder {
	return &AnswerBuilder{
		questionID: valueobjects.NewQuestionID(),
		authorID:   "test-user-123",
		content:    "An answer body long enough to pass validation.",
	}
}

func (b *AnswerBuilder) WithQuestionID(id valueobjects.QuestionID) *AnswerBuilder {
	b.questionID = id
	return b
}

func (b *AnswerBuilder) WithAuthorID(authorID string) *AnswerBuilder {
	b.authorID = authorID
	return b
}

func (b *AnswerBuilder) WithContent(content string) *AnswerBuilder {
	b.content = content
	return b
}

// Accepted marks the built answer as already accepted. The answer is
// reconstructed rather than accepted through the entity so no events fire.
func (b *AnswerBuilder) Accepted() *AnswerBuilder {
	b.accepted = true
	return b
}

func (b *AnswerBuilder) Build() (*entities.Answer, error) {
	authorID, err := valueobjects.NewUserID(b.authorID)
	if err != nil {
		return nil, err
	}

	answer, err := entities.NewAnswer(b.questionID, authorID, b.content)
	if err != nil {
		return nil, err
	}

	if b.accepted {
		answer, err = entities.ReconstructAnswer(
			answer.ID(), answer.QuestionID(), answer.AuthorID(), answer.Content(),
			answer.Votes(), answer.GetComments(), true,
			answer.CreatedAt(), answer.UpdatedAt(), answer.Version(),
		)
		if err != nil {
			return nil, err
		}
	}

	return answer, nil
}

func (b *AnswerBuilder) MustBuild() *entities.Answer {
	answer, err := b.Build()
	if err != nil {
		panic(err)
	}
	answer.MarkEventsAsCommitted()
	return answer
}

// UserBuilder helps create test users with default values
type UserBuilder struct {
	id         string
	username   string
	email      string
	reputation int
	following  []string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		id:       "test-user-123",
		username: "testuser",
		email:    "test@example.com",
	}
}

func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.id = id
	return b
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

func (b *UserBuilder) WithReputation(reputation int) *UserBuilder {
	b.reputation = reputation
	return b
}

func (b *UserBuilder) WithFollowing(ids ...string) *UserBuilder {
	b.following = ids
	return b
}

func (b *UserBuilder) Build() (*entities.User, error) {
	id, err := valueobjects.NewUserID(b.id)
	if err != nil {
		return nil, err
	}

	if b.reputation != 0 || len(b.following) > 0 {
		user, err := entities.NewUser(id, b.username, b.email)
		if err != nil {
			return nil, err
		}
		return entities.ReconstructUser(
			id, b.username, b.email, "",
			b.reputation, 0, 0,
			b.following, nil,
			user.CreatedAt(), user.UpdatedAt(), 1,
		)
	}

	return entities.NewUser(id, b.username, b.email)
}

func (b *UserBuilder) MustBuild() *entities.User {
	user, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("building test user: %v", err))
	}
	user.MarkEventsAsCommitted()
	return user
}
