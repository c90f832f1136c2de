package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"peersphere-backend/application/ports"
	"peersphere-backend/domain/core/entities"
	"peersphere-backend/domain/core/valueobjects"
	pkgerrors "peersphere-backend/pkg/errors"
)

// gsi1Name is the single GSI shared by all entity types
const gsi1Name = "GSI1"

// QuestionRepository implements ports.QuestionRepository using DynamoDB
type QuestionRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.QuestionRepository {
	return &QuestionRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// commentItem is the stored form of a comment
type commentItem struct {
	CommentID string `dynamodbav:"CommentID"`
	AuthorID  string `dynamodbav:"AuthorID"`
	Content   string `dynamodbav:"Content"`
	CreatedAt string `dynamodbav:"CreatedAt"`
}

// questionItem represents the DynamoDB item structure for a question.
// Vote membership lives in two string sets so votes can be moved with a
// single atomic update; DynamoDB forbids empty sets, hence omitempty.
type questionItem struct {
	PK         string        `dynamodbav:"PK"`
	SK         string        `dynamodbav:"SK"`
	GSI1PK     string        `dynamodbav:"GSI1PK"` // ENTITY#QUESTION, for newest-first listings
	GSI1SK     string        `dynamodbav:"GSI1SK"` // CreatedAt
	EntityType string        `dynamodbav:"EntityType"`
	QuestionID string        `dynamodbav:"QuestionID"`
	AuthorID   string        `dynamodbav:"AuthorID"`
	Title      string        `dynamodbav:"Title"`
	Content    string        `dynamodbav:"Content"`
	Tags       []string      `dynamodbav:"Tags,omitempty"`
	Upvotes    []string      `dynamodbav:"Upvotes,stringset,omitempty"`
	Downvotes  []string      `dynamodbav:"Downvotes,stringset,omitempty"`
	Comments   []commentItem `dynamodbav:"Comments,omitempty"`
	CreatedAt  string        `dynamodbav:"CreatedAt"`
	UpdatedAt  string        `dynamodbav:"UpdatedAt"`
	Version    int           `dynamodbav:"Version"`
}

func questionKey(id valueobjects.QuestionID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("QUESTION#%s", id.String())},
		"SK": &types.AttributeValueMemberS{Value: "METADATA"},
	}
}

// Save persists a question to DynamoDB
func (r *QuestionRepository) Save(ctx context.Context, question *entities.Question) error {
	item := questionItem{
		PK:         fmt.Sprintf("QUESTION#%s", question.ID().String()),
		SK:         "METADATA",
		GSI1PK:     "ENTITY#QUESTION",
		GSI1SK:     question.CreatedAt().UTC().Format(time.RFC3339Nano),
		EntityType: "QUESTION",
		QuestionID: question.ID().String(),
		AuthorID:   question.AuthorID().String(),
		Title:      question.Title(),
		Content:    question.Content(),
		Tags:       question.GetTags(),
		Upvotes:    question.Votes().Upvotes(),
		Downvotes:  question.Votes().Downvotes(),
		Comments:   marshalComments(question.GetComments()),
		CreatedAt:  question.CreatedAt().UTC().Format(time.RFC3339Nano),
		UpdatedAt:  question.UpdatedAt().UTC().Format(time.RFC3339Nano),
		Version:    question.Version(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal question: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save question",
			zap.Error(err),
			zap.String("questionID", question.ID().String()),
		)
		return pkgerrors.NewDatabaseError("save question", err)
	}

	r.logger.Debug("Question saved",
		zap.String("questionID", question.ID().String()),
		zap.String("authorID", question.AuthorID().String()),
	)

	return nil
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(ctx context.Context, id valueobjects.QuestionID) (*entities.Question, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       questionKey(id),
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get question", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("question")
	}

	var item questionItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal question: %w", err)
	}

	return r.reconstruct(item)
}

// List retrieves questions newest-first via GSI1
func (r *QuestionRepository) List(ctx context.Context, criteria ports.ListCriteria) ([]*entities.Question, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: "ENTITY#QUESTION"},
		},
		ScanIndexForward: aws.Bool(false), // newest first
		Limit:            aws.Int32(int32(criteria.Limit)),
	}

	if criteria.Tag != "" {
		input.FilterExpression = aws.String("contains(Tags, :tag)")
		input.ExpressionAttributeValues[":tag"] = &types.AttributeValueMemberS{Value: criteria.Tag}
	}

	if criteria.NextToken != "" {
		// The token is the last seen question ID; resolve its sort position
		tokenID, err := valueobjects.NewQuestionIDFromString(criteria.NextToken)
		if err != nil {
			return nil, pkgerrors.NewValidationError("invalid pagination token")
		}
		last, err := r.GetByID(ctx, tokenID)
		if err != nil {
			return nil, pkgerrors.NewValidationError("stale pagination token")
		}
		input.ExclusiveStartKey = map[string]types.AttributeValue{
			"PK":     &types.AttributeValueMemberS{Value: fmt.Sprintf("QUESTION#%s", tokenID.String())},
			"SK":     &types.AttributeValueMemberS{Value: "METADATA"},
			"GSI1PK": &types.AttributeValueMemberS{Value: "ENTITY#QUESTION"},
			"GSI1SK": &types.AttributeValueMemberS{Value: last.CreatedAt().UTC().Format(time.RFC3339Nano)},
		}
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list questions", err)
	}

	questions := make([]*entities.Question, 0, len(result.Items))
	for _, raw := range result.Items {
		var item questionItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal question item", zap.Error(err))
			continue
		}
		question, err := r.reconstruct(item)
		if err != nil {
			r.logger.Warn("Failed to reconstruct question",
				zap.String("questionID", item.QuestionID),
				zap.Error(err),
			)
			continue
		}
		questions = append(questions, question)
	}

	return questions, nil
}

// GetByAuthorID retrieves all questions posted by a user
func (r *QuestionRepository) GetByAuthorID(ctx context.Context, authorID valueobjects.UserID) ([]*entities.Question, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		FilterExpression:       aws.String("AuthorID = :author"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: "ENTITY#QUESTION"},
			":author": &types.AttributeValueMemberS{Value: authorID.String()},
		},
		ScanIndexForward: aws.Bool(false),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list questions by author", err)
	}

	questions := make([]*entities.Question, 0, len(result.Items))
	for _, raw := range result.Items {
		var item questionItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal question item", zap.Error(err))
			continue
		}
		question, err := r.reconstruct(item)
		if err != nil {
			continue
		}
		questions = append(questions, question)
	}

	return questions, nil
}

// ApplyVote moves the voter between the question's vote sets with one
// conditional update. The condition re-checks both sets so a concurrent
// duplicate or conflicting vote fails instead of corrupting the ledger.
func (r *QuestionRepository) ApplyVote(ctx context.Context, id valueobjects.QuestionID, change entities.VoteChange) error {
	updateExpr, conditionExpr, names := voteUpdateExpressions(change)

	input := &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      questionKey(id),
		UpdateExpression:         aws.String(updateExpr),
		ConditionExpression:      aws.String(conditionExpr),
		ExpressionAttributeNames: names,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":voterSet": &types.AttributeValueMemberSS{Value: []string{change.Voter.String()}},
			":voter":    &types.AttributeValueMemberS{Value: change.Voter.String()},
			":now":      &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	}

	if _, err := r.client.UpdateItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			// Existence was checked by the caller's load, so the failed
			// condition means a concurrent vote changed the sets under us.
			return pkgerrors.NewAlreadyVotedError("question")
		}
		return pkgerrors.NewDatabaseError("apply question vote", err)
	}

	return nil
}

// AppendComment appends a comment to the question's comment list
func (r *QuestionRepository) AppendComment(ctx context.Context, id valueobjects.QuestionID, comment entities.Comment) error {
	return appendComment(ctx, r.client, r.tableName, questionKey(id), comment, "question")
}

// Delete removes a question
func (r *QuestionRepository) Delete(ctx context.Context, id valueobjects.QuestionID) error {
	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 questionKey(id),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewNotFoundError("question")
		}
		return pkgerrors.NewDatabaseError("delete question", err)
	}

	return nil
}

func (r *QuestionRepository) reconstruct(item questionItem) (*entities.Question, error) {
	id, err := valueobjects.NewQuestionIDFromString(item.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored question ID: %w", err)
	}

	authorID, err := valueobjects.NewUserID(item.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored author ID: %w", err)
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, item.UpdatedAt)

	return entities.ReconstructQuestion(
		id,
		authorID,
		item.Title,
		item.Content,
		item.Tags,
		entities.ReconstructVoteLedger(item.Upvotes, item.Downvotes),
		unmarshalComments(item.Comments),
		createdAt,
		updatedAt,
		item.Version,
	)
}

func marshalComments(comments []entities.Comment) []commentItem {
	items := make([]commentItem, 0, len(comments))
	for _, c := range comments {
		items = append(items, commentItem{
			CommentID: c.ID,
			AuthorID:  c.AuthorID.String(),
			Content:   c.Content,
			CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return items
}

func unmarshalComments(items []commentItem) []entities.Comment {
	comments := make([]entities.Comment, 0, len(items))
	for _, item := range items {
		authorID, err := valueobjects.NewUserID(item.AuthorID)
		if err != nil {
			continue
		}
		createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
		comments = append(comments, entities.Comment{
			ID:        item.CommentID,
			AuthorID:  authorID,
			Content:   item.Content,
			CreatedAt: createdAt,
		})
	}
	return comments
}

// appendComment is shared by the question and answer repositories
func appendComment(ctx context.Context, client *dynamodb.Client, tableName string, key map[string]types.AttributeValue, comment entities.Comment, entity string) error {
	commentAV, err := attributevalue.MarshalList([]commentItem{{
		CommentID: comment.ID,
		AuthorID:  comment.AuthorID.String(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.UTC().Format(time.RFC3339Nano),
	}})
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(tableName),
		Key:                 key,
		UpdateExpression:    aws.String("SET Comments = list_append(if_not_exists(Comments, :empty), :comment), UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":comment": &types.AttributeValueMemberL{Value: commentAV},
			":empty":   &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":now":     &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	}

	if _, err := client.UpdateItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewNotFoundError(entity)
		}
		return pkgerrors.NewDatabaseError("append comment", err)
	}

	return nil
}
