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

// AnswerRepository implements ports.AnswerRepository using DynamoDB
type AnswerRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.AnswerRepository {
	return &AnswerRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// answerItem represents the DynamoDB item structure for an answer.
// GSI1 keys the answer under its question so one query returns a
// question's answers in posting order.
type answerItem struct {
	PK         string        `dynamodbav:"PK"`
	SK         string        `dynamodbav:"SK"`
	GSI1PK     string        `dynamodbav:"GSI1PK"` // QUESTION#<id>
	GSI1SK     string        `dynamodbav:"GSI1SK"` // CreatedAt
	EntityType string        `dynamodbav:"EntityType"`
	AnswerID   string        `dynamodbav:"AnswerID"`
	QuestionID string        `dynamodbav:"QuestionID"`
	AuthorID   string        `dynamodbav:"AuthorID"`
	Content    string        `dynamodbav:"Content"`
	Upvotes    []string      `dynamodbav:"Upvotes,stringset,omitempty"`
	Downvotes  []string      `dynamodbav:"Downvotes,stringset,omitempty"`
	Comments   []commentItem `dynamodbav:"Comments,omitempty"`
	IsAccepted bool          `dynamodbav:"IsAccepted"`
	CreatedAt  string        `dynamodbav:"CreatedAt"`
	UpdatedAt  string        `dynamodbav:"UpdatedAt"`
	Version    int           `dynamodbav:"Version"`
}

func answerKey(id valueobjects.AnswerID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("ANSWER#%s", id.String())},
		"SK": &types.AttributeValueMemberS{Value: "METADATA"},
	}
}

// Save persists an answer to DynamoDB
func (r *AnswerRepository) Save(ctx context.Context, answer *entities.Answer) error {
	item := answerItem{
		PK:         fmt.Sprintf("ANSWER#%s", answer.ID().String()),
		SK:         "METADATA",
		GSI1PK:     fmt.Sprintf("QUESTION#%s", answer.QuestionID().String()),
		GSI1SK:     answer.CreatedAt().UTC().Format(time.RFC3339Nano),
		EntityType: "ANSWER",
		AnswerID:   answer.ID().String(),
		QuestionID: answer.QuestionID().String(),
		AuthorID:   answer.AuthorID().String(),
		Content:    answer.Content(),
		Upvotes:    answer.Votes().Upvotes(),
		Downvotes:  answer.Votes().Downvotes(),
		Comments:   marshalComments(answer.GetComments()),
		IsAccepted: answer.IsAccepted(),
		CreatedAt:  answer.CreatedAt().UTC().Format(time.RFC3339Nano),
		UpdatedAt:  answer.UpdatedAt().UTC().Format(time.RFC3339Nano),
		Version:    answer.Version(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save answer",
			zap.Error(err),
			zap.String("answerID", answer.ID().String()),
		)
		return pkgerrors.NewDatabaseError("save answer", err)
	}

	r.logger.Debug("Answer saved",
		zap.String("answerID", answer.ID().String()),
		zap.String("questionID", answer.QuestionID().String()),
	)

	return nil
}

// GetByID retrieves an answer by its ID
func (r *AnswerRepository) GetByID(ctx context.Context, id valueobjects.AnswerID) (*entities.Answer, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       answerKey(id),
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get answer", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("answer")
	}

	var item answerItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answer: %w", err)
	}

	return r.reconstruct(item)
}

// GetByQuestionID retrieves all answers for a question, oldest first
func (r *AnswerRepository) GetByQuestionID(ctx context.Context, questionID valueobjects.QuestionID) ([]*entities.Answer, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		FilterExpression:       aws.String("EntityType = :entityType"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":         &types.AttributeValueMemberS{Value: fmt.Sprintf("QUESTION#%s", questionID.String())},
			":entityType": &types.AttributeValueMemberS{Value: "ANSWER"},
		},
		ScanIndexForward: aws.Bool(true), // posting order
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list answers", err)
	}

	answers := make([]*entities.Answer, 0, len(result.Items))
	for _, raw := range result.Items {
		var item answerItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal answer item", zap.Error(err))
			continue
		}
		answer, err := r.reconstruct(item)
		if err != nil {
			r.logger.Warn("Failed to reconstruct answer",
				zap.String("answerID", item.AnswerID),
				zap.Error(err),
			)
			continue
		}
		answers = append(answers, answer)
	}

	return answers, nil
}

// GetAcceptedByQuestionID retrieves the question's accepted answer
func (r *AnswerRepository) GetAcceptedByQuestionID(ctx context.Context, questionID valueobjects.QuestionID) (*entities.Answer, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Name),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		FilterExpression:       aws.String("EntityType = :entityType AND IsAccepted = :accepted"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":         &types.AttributeValueMemberS{Value: fmt.Sprintf("QUESTION#%s", questionID.String())},
			":entityType": &types.AttributeValueMemberS{Value: "ANSWER"},
			":accepted":   &types.AttributeValueMemberBOOL{Value: true},
		},
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get accepted answer", err)
	}

	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("accepted answer")
	}

	var item answerItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answer: %w", err)
	}

	return r.reconstruct(item)
}

// ApplyVote moves the voter between the answer's vote sets with one
// conditional update. The condition re-checks both sets so a concurrent
// duplicate or conflicting vote fails instead of corrupting the ledger.
func (r *AnswerRepository) ApplyVote(ctx context.Context, id valueobjects.AnswerID, change entities.VoteChange) error {
	updateExpr, conditionExpr, names := voteUpdateExpressions(change)

	input := &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      answerKey(id),
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
			return pkgerrors.NewAlreadyVotedError("answer")
		}
		return pkgerrors.NewDatabaseError("apply answer vote", err)
	}

	return nil
}

// MarkAccepted flips the accepted flag on, conditioned on it being off.
// Two processes racing to accept resolve here: exactly one wins.
func (r *AnswerRepository) MarkAccepted(ctx context.Context, id valueobjects.AnswerID) error {
	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 answerKey(id),
		UpdateExpression:    aws.String("SET IsAccepted = :true, UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK) AND IsAccepted = :false"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":now":   &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	}

	if _, err := r.client.UpdateItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewAlreadyAcceptedError()
		}
		return pkgerrors.NewDatabaseError("mark answer accepted", err)
	}

	return nil
}

// ClearAccepted flips the accepted flag off
func (r *AnswerRepository) ClearAccepted(ctx context.Context, id valueobjects.AnswerID) error {
	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 answerKey(id),
		UpdateExpression:    aws.String("SET IsAccepted = :false, UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":now":   &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	}

	if _, err := r.client.UpdateItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewNotFoundError("answer")
		}
		return pkgerrors.NewDatabaseError("clear accepted answer", err)
	}

	return nil
}

// AppendComment appends a comment to the answer's comment list
func (r *AnswerRepository) AppendComment(ctx context.Context, id valueobjects.AnswerID, comment entities.Comment) error {
	return appendComment(ctx, r.client, r.tableName, answerKey(id), comment, "answer")
}

// Delete removes an answer
func (r *AnswerRepository) Delete(ctx context.Context, id valueobjects.AnswerID) error {
	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 answerKey(id),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewNotFoundError("answer")
		}
		return pkgerrors.NewDatabaseError("delete answer", err)
	}

	return nil
}

func (r *AnswerRepository) reconstruct(item answerItem) (*entities.Answer, error) {
	id, err := valueobjects.NewAnswerIDFromString(item.AnswerID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored answer ID: %w", err)
	}

	questionID, err := valueobjects.NewQuestionIDFromString(item.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored question ID: %w", err)
	}

	authorID, err := valueobjects.NewUserID(item.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored author ID: %w", err)
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, item.UpdatedAt)

	return entities.ReconstructAnswer(
		id,
		questionID,
		authorID,
		item.Content,
		entities.ReconstructVoteLedger(item.Upvotes, item.Downvotes),
		unmarshalComments(item.Comments),
		item.IsAccepted,
		createdAt,
		updatedAt,
		item.Version,
	)
}
