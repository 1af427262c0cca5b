package jobq

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/cenkalti/backoff/v4"
)

// Queue names for the two job categories the workers consume.
const (
	SingleExecutionQueue = "singleExecutionJobs"
	MultiExecutionQueue  = "multiExecutionJobs"
)

// SqsAPI is the subset of the SQS client used by the queue client.
type SqsAPI interface {
	CreateQueue(ctx context.Context, params *sqs.CreateQueueInput, optFns ...func(*sqs.Options)) (*sqs.CreateQueueOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Dialer establishes a connection to the broker.
type Dialer func(ctx context.Context) (SqsAPI, error)

// Client routes job payloads to named broker queues. The underlying
// connection is established lazily on the first enqueue and reused; the
// mutex makes the first-use initialization single-flight so concurrent
// first requests do not open redundant connections.
type Client struct {
	logger *slog.Logger
	dial   Dialer

	maxAttempts uint64

	mu        sync.Mutex
	api       SqsAPI
	queueURLs map[string]string // declared queue name -> url
}

const defaultMaxAttempts = 3

// NewClient creates a queue client that connects to SQS using the
// environment AWS configuration on first use.
func NewClient(logger *slog.Logger) *Client {
	return NewCustomClient(logger, func(ctx context.Context) (SqsAPI, error) {
		return getSqsClientFromEnv(ctx)
	}, defaultMaxAttempts)
}

// NewCustomClient creates a queue client with a provided dialer and retry
// budget. maxAttempts bounds the number of send attempts per enqueue.
func NewCustomClient(logger *slog.Logger, dial Dialer, maxAttempts uint64) *Client {
	if maxAttempts == 0 {
		maxAttempts = 1
	}
	return &Client{
		logger:      logger,
		dial:        dial,
		maxAttempts: maxAttempts,
		queueURLs:   make(map[string]string),
	}
}

// Enqueue sends payload to the named queue. A successful return means the
// broker durably accepted the message (at-least-once delivery to workers);
// it says nothing about worker progress. Transient failures are retried
// with exponential backoff up to the attempt budget, after which
// ErrQueueUnavailable is returned. A failed attempt drops the cached
// connection so the next attempt re-establishes it.
func (c *Client) Enqueue(ctx context.Context, queueName string, payload []byte) error {
	attempt := func() error {
		api, url, err := c.ensureQueue(ctx, queueName)
		if err != nil {
			return err
		}
		_, err = api.SendMessage(ctx, &sqs.SendMessageInput{
			QueueUrl:    aws.String(url),
			MessageBody: aws.String(string(payload)),
		})
		if err != nil {
			c.logger.Warn("enqueue attempt failed",
				"queue", queueName, "error", err)
			c.reset()
			return err
		}
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxAttempts-1),
		ctx)
	if err := backoff.Retry(attempt, bo); err != nil {
		return ErrQueueUnavailable().SetDebug(err)
	}
	return nil
}

// ensureQueue lazily connects to the broker and declares the named queue.
// Declaration is idempotent: CreateQueue returns the existing queue's url
// when it was already declared with the same attributes. The api handle is
// returned together with the url, captured under the same lock, so the
// caller keeps a usable connection even when a concurrent failed attempt
// resets the client in the meantime.
func (c *Client) ensureQueue(ctx context.Context, queueName string) (SqsAPI, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.api == nil {
		api, err := c.dial(ctx)
		if err != nil {
			return nil, "", err
		}
		c.api = api
		c.logger.Info("broker connection established")
	}

	if url, ok := c.queueURLs[queueName]; ok {
		return c.api, url, nil
	}
	out, err := c.api.CreateQueue(ctx, &sqs.CreateQueueInput{
		QueueName: aws.String(queueName),
	})
	if err != nil {
		return nil, "", err
	}
	c.queueURLs[queueName] = *out.QueueUrl
	c.logger.Info("queue declared", "queue", queueName)
	return c.api, *out.QueueUrl, nil
}

func (c *Client) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.api = nil
	c.queueURLs = make(map[string]string)
}
