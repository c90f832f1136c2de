package bus

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	pkgerrors "peersphere-backend/pkg/errors"
)

// Command is a state-changing request. Validate runs before dispatch so
// handlers only ever see well-formed commands.
type Command interface {
	Validate() error
}

// CommandHandler executes one command type. Handlers return the write's
// result so callers can respond with the updated state without a
// follow-up read.
type CommandHandler interface {
	Handle(ctx context.Context, cmd Command) (interface{}, error)
}

// CommandHandlerFunc adapts a function to CommandHandler.
type CommandHandlerFunc func(ctx context.Context, cmd Command) (interface{}, error)

func (f CommandHandlerFunc) Handle(ctx context.Context, cmd Command) (interface{}, error) {
	return f(ctx, cmd)
}

// CommandBus routes commands to handlers keyed by concrete command type.
// Registration happens once during container assembly; Send is safe for
// concurrent use afterwards.
type CommandBus struct {
	mu       sync.RWMutex
	handlers map[reflect.Type]CommandHandler
}

func NewCommandBus() *CommandBus {
	return &CommandBus{handlers: make(map[reflect.Type]CommandHandler)}
}

// Register binds handler to cmdType's concrete type. Registering the
// same type twice is a wiring bug and rejected.
func (b *CommandBus) Register(cmdType Command, handler CommandHandler) error {
	t := reflect.TypeOf(cmdType)

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, dup := b.handlers[t]; dup {
		return fmt.Errorf("handler already registered for command type %s", t.Name())
	}
	b.handlers[t] = handler
	return nil
}

// Send finds the command's handler and executes it through whatever
// middleware the handler was registered with.
func (b *CommandBus) Send(ctx context.Context, cmd Command) (interface{}, error) {
	b.mu.RLock()
	handler, ok := b.handlers[reflect.TypeOf(cmd)]
	b.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no handler registered for command type %T", cmd)
	}
	return handler.Handle(ctx, cmd)
}

// Middleware decorates a command handler.
type Middleware func(next CommandHandler) CommandHandler

// Logger is the structured logging surface the middleware needs; the DI
// layer adapts zap to it.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// LoggingMiddleware logs each command's type and outcome.
func LoggingMiddleware(logger Logger) Middleware {
	return func(next CommandHandler) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
			cmdType := reflect.TypeOf(cmd).Name()
			logger.Info("Executing command", "type", cmdType)

			result, err := next.Handle(ctx, cmd)
			if err != nil {
				logger.Error("Command failed", "type", cmdType, "error", err)
				return nil, err
			}

			logger.Info("Command succeeded", "type", cmdType)
			return result, nil
		})
	}
}

// ValidationMiddleware rejects invalid commands before the handler runs.
// Commands return plain errors from Validate; typing the rejection here
// keeps it mapping to a 400 instead of a generic server error.
func ValidationMiddleware() Middleware {
	return func(next CommandHandler) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
			if err := cmd.Validate(); err != nil {
				if pkgerrors.IsAppError(err) {
					return nil, err
				}
				return nil, pkgerrors.NewValidationError(err.Error())
			}
			return next.Handle(ctx, cmd)
		})
	}
}

// Pipeline composes middleware around handlers at registration time.
type Pipeline struct {
	middlewares []Middleware
}

func NewPipeline(middlewares ...Middleware) *Pipeline {
	return &Pipeline{middlewares: middlewares}
}

// Execute wraps handler so the first middleware in the pipeline runs
// outermost.
func (p *Pipeline) Execute(handler CommandHandler) CommandHandler {
	for i := len(p.middlewares) - 1; i >= 0; i-- {
		handler = p.middlewares[i](handler)
	}
	return handler
}
