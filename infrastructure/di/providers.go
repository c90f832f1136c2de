package di

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"peersphere-backend/application/commands"
	"peersphere-backend/application/commands/bus"
	commands_handlers "peersphere-backend/application/commands/handlers"
	"peersphere-backend/application/ports"
	"peersphere-backend/application/queries"
	querybus "peersphere-backend/application/queries/bus"
	queries_handlers "peersphere-backend/application/queries/handlers"
	"peersphere-backend/infrastructure/config"
	"peersphere-backend/infrastructure/messaging/eventbridge"
	dynamostore "peersphere-backend/infrastructure/persistence/dynamodb"
	"peersphere-backend/pkg/auth"
	"peersphere-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration. When tracing is enabled
// every AWS client built from it reports X-Ray subsegments.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}

	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client when metrics are
// enabled; nil disables publication
func ProvideCloudWatchClient(awsCfg aws.Config, cfg *config.Config) *awscloudwatch.Client {
	if !cfg.EnableMetrics {
		return nil
	}
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideQuestionRepository creates a question repository
func ProvideQuestionRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.QuestionRepository {
	return dynamostore.NewQuestionRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideAnswerRepository creates an answer repository
func ProvideAnswerRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.AnswerRepository {
	return dynamostore.NewAnswerRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideUserRepository creates a user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamostore.NewUserRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventPublisher creates the EventBridge domain event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideNotifier creates the EventBridge notification emitter
func ProvideNotifier(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.Notifier {
	return eventbridge.NewNotifier(client, cfg.EventBusName, logger)
}

// ProvideMetricsCollector creates the CloudWatch metrics collector
func ProvideMetricsCollector(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.MetricsCollector {
	namespace := fmt.Sprintf("PeerSphere/%s", cfg.Environment)
	return observability.NewMetricsCollector(client, namespace, logger)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("peersphere-backend")
}

// ProvideJWTValidator creates the JWT validator used by the HTTP layer
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		Audience:      []string{"peersphere-api"},
	})
}

// ProvideUserRateLimiter picks the per-user limiter for the runtime:
// DynamoDB-backed in Lambda, where invocation memory is not shared,
// and an in-process sliding window everywhere else
func ProvideUserRateLimiter(client *awsdynamodb.Client, cfg *config.Config) auth.RateLimiter {
	perUser := cfg.RateLimitPerMinute * 2
	if cfg.IsLambda {
		return auth.NewDistributedUserRateLimiter(client, cfg.DynamoDBTable, perUser)
	}
	return auth.NewSlidingWindowLimiter(perUser, time.Minute)
}

// ProvideInMemoryCache creates a simple in-memory cache
func ProvideInMemoryCache() ports.Cache {
	return NewInMemoryCache()
}

// CommandHandlerAdapter adapts typed command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) (interface{}, error)
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	return a.handler(ctx, cmd)
}

// tracingMiddleware wraps command handling in an X-Ray subsegment
func tracingMiddleware(tracer *observability.Tracer) bus.Middleware {
	return func(next bus.CommandHandler) bus.CommandHandler {
		return bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			var result interface{}
			err := tracer.TraceFunction(ctx, reflect.TypeOf(cmd).Name(), func(ctx context.Context) error {
				var innerErr error
				result, innerErr = next.Handle(ctx, cmd)
				return innerErr
			})
			return result, err
		})
	}
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	questionRepo ports.QuestionRepository,
	answerRepo ports.AnswerRepository,
	userRepo ports.UserRepository,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	tracer *observability.Tracer,
	cfg *config.Config,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()

	middlewares := []bus.Middleware{
		bus.ValidationMiddleware(),
		bus.LoggingMiddleware(&zapLoggerAdapter{logger}),
	}
	if cfg.EnableTracing {
		middlewares = append(middlewares, tracingMiddleware(tracer))
	}
	pipeline := bus.NewPipeline(middlewares...)

	register := func(cmdType bus.Command, handler bus.CommandHandler) {
		commandBus.Register(cmdType, pipeline.Execute(handler))
	}

	createQuestionHandler := commands_handlers.NewCreateQuestionHandler(questionRepo, userRepo, publisher, logger)
	register(commands.CreateQuestionCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			createCmd, ok := cmd.(commands.CreateQuestionCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return createQuestionHandler.Handle(ctx, createCmd)
		},
	})

	voteQuestionHandler := commands_handlers.NewVoteQuestionHandler(questionRepo, userRepo, publisher, logger)
	register(commands.VoteQuestionCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			voteCmd, ok := cmd.(commands.VoteQuestionCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return voteQuestionHandler.Handle(ctx, voteCmd)
		},
	})

	createAnswerHandler := commands_handlers.NewCreateAnswerHandler(answerRepo, questionRepo, userRepo, notifier, publisher, logger)
	register(commands.CreateAnswerCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			createCmd, ok := cmd.(commands.CreateAnswerCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return createAnswerHandler.Handle(ctx, createCmd)
		},
	})

	voteAnswerHandler := commands_handlers.NewVoteAnswerHandler(answerRepo, userRepo, publisher, logger)
	register(commands.VoteAnswerCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			voteCmd, ok := cmd.(commands.VoteAnswerCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return voteAnswerHandler.Handle(ctx, voteCmd)
		},
	})

	acceptAnswerHandler := commands_handlers.NewAcceptAnswerHandler(answerRepo, questionRepo, userRepo, notifier, publisher, logger)
	register(commands.AcceptAnswerCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			acceptCmd, ok := cmd.(commands.AcceptAnswerCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return acceptAnswerHandler.Handle(ctx, acceptCmd)
		},
	})

	addCommentHandler := commands_handlers.NewAddCommentHandler(questionRepo, answerRepo, logger)
	register(commands.AddCommentCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			commentCmd, ok := cmd.(commands.AddCommentCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return addCommentHandler.Handle(ctx, commentCmd)
		},
	})

	followHandler := commands_handlers.NewFollowUserHandler(userRepo, publisher, logger)
	register(commands.FollowUserCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			followCmd, ok := cmd.(commands.FollowUserCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return nil, followHandler.HandleFollow(ctx, followCmd)
		},
	})
	register(commands.UnfollowUserCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			unfollowCmd, ok := cmd.(commands.UnfollowUserCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return nil, followHandler.HandleUnfollow(ctx, unfollowCmd)
		},
	})

	return commandBus
}

// QueryHandlerAdapter adapts typed query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	questionRepo ports.QuestionRepository,
	answerRepo ports.AnswerRepository,
	userRepo ports.UserRepository,
	cache ports.Cache,
	collector *observability.MetricsCollector,
	cfg *config.Config,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	var metrics *querybus.MetricsMiddleware
	if cfg.EnableMetrics {
		metrics = querybus.NewMetricsMiddleware(&busMetricsAdapter{collector})
	}

	register := func(queryType querybus.Query, handler querybus.QueryHandler) {
		if metrics != nil {
			handler = metrics.Wrap(handler)
		}
		queryBus.Register(queryType, handler)
	}

	getQuestionHandler := queries_handlers.NewGetQuestionHandler(questionRepo, logger)
	register(queries.GetQuestionQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetQuestionQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getQuestionHandler.Handle(ctx, getQuery)
		},
	})

	listQuestionsHandler := queries_handlers.NewListQuestionsHandler(questionRepo, logger)
	register(queries.ListQuestionsQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListQuestionsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listQuestionsHandler.Handle(ctx, listQuery)
		},
	})

	listAnswersHandler := queries_handlers.NewListAnswersHandler(answerRepo, questionRepo, logger)
	register(queries.ListAnswersQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListAnswersQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listAnswersHandler.Handle(ctx, listQuery)
		},
	})

	getUserHandler := queries_handlers.NewGetUserHandler(userRepo, logger)
	register(queries.GetUserQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetUserQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getUserHandler.Handle(ctx, getQuery)
		},
	})
	register(queries.GetUserStatsQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			statsQuery, ok := query.(queries.GetUserStatsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getUserHandler.HandleStats(ctx, statsQuery)
		},
	})

	leaderboardHandler := queries_handlers.NewLeaderboardHandler(userRepo, cache, logger)
	register(queries.LeaderboardQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			boardQuery, ok := query.(queries.LeaderboardQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return leaderboardHandler.Handle(ctx, boardQuery)
		},
	})

	return queryBus
}

// busMetricsAdapter satisfies the query bus metrics interface with the
// CloudWatch collector
type busMetricsAdapter struct {
	collector *observability.MetricsCollector
}

func (a *busMetricsAdapter) StartTimer(metric, label string) querybus.Timer {
	return &metricsTimer{
		collector: a.collector,
		metric:    metric,
		label:     label,
		start:     time.Now(),
	}
}

func (a *busMetricsAdapter) Increment(metric, label string) {
	a.collector.Increment(metric, label)
}

type metricsTimer struct {
	collector *observability.MetricsCollector
	metric    string
	label     string
	start     time.Time
}

func (t *metricsTimer) Stop() {
	t.collector.RecordDuration(t.metric, t.label, time.Since(t.start))
}

// zapLoggerAdapter adapts zap.Logger to the bus logging interface
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, fields ...interface{}) {
	a.logger.Info(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Error(msg string, fields ...interface{}) {
	a.logger.Error(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) fieldsToZap(fields ...interface{}) []zap.Field {
	var zapFields []zap.Field
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			key, _ := fields[i].(string)
			zapFields = append(zapFields, zap.Any(key, fields[i+1]))
		}
	}
	return zapFields
}
