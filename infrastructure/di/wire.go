//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"peersphere-backend/application/commands/bus"
	"peersphere-backend/application/ports"
	querybus "peersphere-backend/application/queries/bus"
	"peersphere-backend/infrastructure/config"
	"peersphere-backend/pkg/auth"
	"peersphere-backend/pkg/observability"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	QuestionRepo   ports.QuestionRepository
	AnswerRepo     ports.AnswerRepository
	UserRepo       ports.UserRepository
	EventPublisher ports.EventPublisher
	Notifier       ports.Notifier
	CommandBus     *bus.CommandBus
	QueryBus       *querybus.QueryBus
	Cache          ports.Cache
	Metrics        *observability.MetricsCollector
	Tracer         *observability.Tracer
	JWTValidator   *auth.JWTValidator
	UserLimiter    auth.RateLimiter
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideQuestionRepository,
	ProvideAnswerRepository,
	ProvideUserRepository,
	ProvideEventPublisher,
	ProvideNotifier,
	ProvideMetricsCollector,
	ProvideTracer,
	ProvideJWTValidator,
	ProvideUserRateLimiter,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideInMemoryCache,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
