package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finview/internal/amqp"
	"finview/internal/services"
	"finview/internal/storage"
	"finview/internal/store/memory"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := storage.NewRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	amqpClient := f.connectAMQP(config)
	service := newService(repo, amqpClient)

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	return &Result{
		Stores:       repo,
		Transactions: service,
		Cleanup: func() error {
			var errs []error
			if err := service.Close(); err != nil {
				errs = append(errs, err)
			}
			if err := repo.Close(); err != nil {
				errs = append(errs, err)
			}
			return errors.Join(errs...)
		},
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*Result, error) {
	store := memory.New()

	amqpClient := f.connectAMQP(config)
	service := newService(store, amqpClient)

	f.logger.Info("Initialized memory backend", "amqp_enabled", amqpClient != nil)

	return &Result{
		Stores:       store,
		Transactions: service,
		Cleanup:      service.Close,
	}, nil
}

// connectAMQP dials the broker when a URL is configured. Failures are
// logged and the backend runs without the change feed.
func (f *DefaultFactory) connectAMQP(config Config) *amqp.Client {
	if config.AMQPURL == "" {
		return nil
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without change feed", "error", err)
		return nil
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}

// newService keeps the publisher a typed nil out of the interface when
// AMQP is not configured.
func newService(stores Backend, amqpClient *amqp.Client) *services.TransactionService {
	var publisher services.EventPublisher
	if amqpClient != nil {
		publisher = amqpClient
	}
	return services.NewTransactionService(stores, publisher)
}
