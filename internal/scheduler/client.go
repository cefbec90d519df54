package scheduler

import (
	"context"
	"fmt"
	"time"

	"sst_portal_backend/platform/config"
	"sst_portal_backend/platform/redis"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const defaultQueue = "default"

// Client enqueues diagnosis completions for the worker process. It
// satisfies the onboarding service's DiagnosisRunner.
type Client struct {
	client *asynq.Client
	queue  string
	delay  time.Duration
}

func NewClient(cfg config.SchedulerConfig, delay time.Duration) (*Client, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
		delay:  delay,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Schedule enqueues the completion of sessionID's diagnosis after the
// configured delay.
func (c *Client) Schedule(ctx context.Context, sessionID uuid.UUID) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("scheduler client not configured")
	}

	task, err := NewCompleteDiagnosisTask(sessionID)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(c.delay),
		asynq.Queue(c.queue),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	return err
}

func queueName(cfg config.SchedulerConfig) string {
	if q := cfg.GetAsynqQueueName(); q != "" {
		return q
	}
	return defaultQueue
}

func redisClientOpt(cfg config.SchedulerConfig) (asynq.RedisClientOpt, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return asynq.RedisClientOpt{}, fmt.Errorf("redis url not configured")
	}

	opt, err := redis.Options(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
