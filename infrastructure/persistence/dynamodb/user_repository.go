package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"peersphere-backend/application/ports"
	"peersphere-backend/domain/core/entities"
	"peersphere-backend/domain/core/valueobjects"
	pkgerrors "peersphere-backend/pkg/errors"
)

// UserRepository implements ports.UserRepository using DynamoDB
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// userItem represents the DynamoDB item structure for a user profile.
// Reputation and the activity counters only ever change through ADD
// expressions, so concurrent votes never lose increments.
type userItem struct {
	PK             string   `dynamodbav:"PK"`
	SK             string   `dynamodbav:"SK"`
	GSI1PK         string   `dynamodbav:"GSI1PK"` // ENTITY#USER, for leaderboard scans
	GSI1SK         string   `dynamodbav:"GSI1SK"` // CreatedAt
	EntityType     string   `dynamodbav:"EntityType"`
	UserID         string   `dynamodbav:"UserID"`
	Username       string   `dynamodbav:"Username"`
	Email          string   `dynamodbav:"Email"`
	Bio            string   `dynamodbav:"Bio,omitempty"`
	Reputation     int      `dynamodbav:"Reputation"`
	QuestionsAsked int      `dynamodbav:"QuestionsAsked"`
	AnswersGiven   int      `dynamodbav:"AnswersGiven"`
	Following      []string `dynamodbav:"Following,stringset,omitempty"`
	Followers      []string `dynamodbav:"Followers,stringset,omitempty"`
	CreatedAt      string   `dynamodbav:"CreatedAt"`
	UpdatedAt      string   `dynamodbav:"UpdatedAt"`
	Version        int      `dynamodbav:"Version"`
}

func userKey(id valueobjects.UserID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", id.String())},
		"SK": &types.AttributeValueMemberS{Value: "PROFILE"},
	}
}

// Save persists a user profile to DynamoDB
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	item := userItem{
		PK:             fmt.Sprintf("USER#%s", user.ID().String()),
		SK:             "PROFILE",
		GSI1PK:         "ENTITY#USER",
		GSI1SK:         user.CreatedAt().UTC().Format(time.RFC3339Nano),
		EntityType:     "USER",
		UserID:         user.ID().String(),
		Username:       user.Username(),
		Email:          user.Email(),
		Bio:            user.Bio(),
		Reputation:     user.Reputation(),
		QuestionsAsked: user.QuestionsAsked(),
		AnswersGiven:   user.AnswersGiven(),
		Following:      user.Following(),
		Followers:      user.Followers(),
		CreatedAt:      user.CreatedAt().UTC().Format(time.RFC3339Nano),
		UpdatedAt:      user.UpdatedAt().UTC().Format(time.RFC3339Nano),
		Version:        user.Version(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save user",
			zap.Error(err),
			zap.String("userID", user.ID().String()),
		)
		return pkgerrors.NewDatabaseError("save user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id valueobjects.UserID) (*entities.User, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       userKey(id),
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get user", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return r.reconstruct(item)
}

// AdjustReputation applies a signed delta as a single atomic increment
func (r *UserRepository) AdjustReputation(ctx context.Context, id valueobjects.UserID, delta int) error {
	if delta == 0 {
		return nil
	}

	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 userKey(id),
		UpdateExpression:    aws.String("ADD Reputation :delta SET UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", delta)},
			":now":   &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	}

	if _, err := r.client.UpdateItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewNotFoundError("user")
		}
		return pkgerrors.NewDatabaseError("adjust reputation", err)
	}

	r.logger.Debug("Reputation adjusted",
		zap.String("userID", id.String()),
		zap.Int("delta", delta),
	)

	return nil
}

// IncrementQuestionsAsked bumps the questions counter atomically
func (r *UserRepository) IncrementQuestionsAsked(ctx context.Context, id valueobjects.UserID) error {
	return r.incrementCounter(ctx, id, "QuestionsAsked")
}

// IncrementAnswersGiven bumps the answers counter atomically
func (r *UserRepository) IncrementAnswersGiven(ctx context.Context, id valueobjects.UserID) error {
	return r.incrementCounter(ctx, id, "AnswersGiven")
}

func (r *UserRepository) incrementCounter(ctx context.Context, id valueobjects.UserID, attr string) error {
	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 userKey(id),
		UpdateExpression:    aws.String("ADD #counter :one SET UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeNames: map[string]string{
			"#counter": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
			":now": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	}

	if _, err := r.client.UpdateItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewNotFoundError("user")
		}
		return pkgerrors.NewDatabaseError("increment counter", err)
	}

	return nil
}

// Follow records follower -> followee on both profiles. The follower-side
// write is conditional on the relationship not existing; the followee-side
// set add is idempotent, so a retry after a partial failure converges.
func (r *UserRepository) Follow(ctx context.Context, followerID, followeeID valueobjects.UserID) error {
	followerInput := &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 userKey(followerID),
		UpdateExpression:    aws.String("ADD Following :target SET UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK) AND (attribute_not_exists(Following) OR NOT contains(Following, :targetID))"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":target":   &types.AttributeValueMemberSS{Value: []string{followeeID.String()}},
			":targetID": &types.AttributeValueMemberS{Value: followeeID.String()},
			":now":      &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	}

	if _, err := r.client.UpdateItem(ctx, followerInput); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewAlreadyFollowingError()
		}
		return pkgerrors.NewDatabaseError("follow user", err)
	}

	followeeInput := &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 userKey(followeeID),
		UpdateExpression:    aws.String("ADD Followers :source SET UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":source": &types.AttributeValueMemberSS{Value: []string{followerID.String()}},
			":now":    &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	}

	if _, err := r.client.UpdateItem(ctx, followeeInput); err != nil {
		return pkgerrors.NewDatabaseError("record follower", err)
	}

	return nil
}

// Unfollow removes follower -> followee from both profiles
func (r *UserRepository) Unfollow(ctx context.Context, followerID, followeeID valueobjects.UserID) error {
	followerInput := &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 userKey(followerID),
		UpdateExpression:    aws.String("DELETE Following :target SET UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK) AND contains(Following, :targetID)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":target":   &types.AttributeValueMemberSS{Value: []string{followeeID.String()}},
			":targetID": &types.AttributeValueMemberS{Value: followeeID.String()},
			":now":      &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	}

	if _, err := r.client.UpdateItem(ctx, followerInput); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewNotFoundError("follow relationship")
		}
		return pkgerrors.NewDatabaseError("unfollow user", err)
	}

	followeeInput := &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 userKey(followeeID),
		UpdateExpression:    aws.String("DELETE Followers :source SET UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":source": &types.AttributeValueMemberSS{Value: []string{followerID.String()}},
			":now":    &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	}

	if _, err := r.client.UpdateItem(ctx, followeeInput); err != nil {
		return pkgerrors.NewDatabaseError("remove follower", err)
	}

	return nil
}

// Leaderboard returns the top users by reputation. Reputation changes via
// ADD expressions, so it cannot double as a GSI sort key; the user
// population is scanned and ranked in memory instead.
func (r *UserRepository) Leaderboard(ctx context.Context, limit int) ([]*entities.User, error) {
	filter := expression.Name("EntityType").Equal(expression.Value("USER"))
	proj := expression.NamesList(
		expression.Name("UserID"),
		expression.Name("Username"),
		expression.Name("Email"),
		expression.Name("Bio"),
		expression.Name("Reputation"),
		expression.Name("QuestionsAsked"),
		expression.Name("AnswersGiven"),
		expression.Name("Following"),
		expression.Name("Followers"),
		expression.Name("CreatedAt"),
		expression.Name("UpdatedAt"),
		expression.Name("Version"),
	)

	expr, err := expression.NewBuilder().WithFilter(filter).WithProjection(proj).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard expression: %w", err)
	}

	users := []*entities.User{}
	var lastKey map[string]types.AttributeValue

	for {
		input := &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          expr.Filter(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		}

		result, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("scan leaderboard", err)
		}

		for _, raw := range result.Items {
			var item userItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Failed to unmarshal user item", zap.Error(err))
				continue
			}
			user, err := r.reconstruct(item)
			if err != nil {
				continue
			}
			users = append(users, user)
		}

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			break
		}
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Reputation() > users[j].Reputation()
	})

	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}

	return users, nil
}

func (r *UserRepository) reconstruct(item userItem) (*entities.User, error) {
	id, err := valueobjects.NewUserID(item.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored user ID: %w", err)
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, item.UpdatedAt)

	return entities.ReconstructUser(
		id,
		item.Username,
		item.Email,
		item.Bio,
		item.Reputation,
		item.QuestionsAsked,
		item.AnswersGiven,
		item.Following,
		item.Followers,
		createdAt,
		updatedAt,
		item.Version,
	)
}
