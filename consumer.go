package main

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"
	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

type messageQueue interface {
	Dequeue(ctx context.Context) (*azqueue.DequeuedMessage, error)
	Delete(ctx context.Context, id, receipt string) error
}

type consumer struct {
	queue           messageQueue
	process         func(ctx context.Context, payload string) error
	pollInterval    time.Duration
	maxDequeueCount int64
	backoff         backoff.BackOff
}

func newConsumer(queue messageQueue, process func(ctx context.Context, payload string) error, pollInterval time.Duration, maxDequeueCount int64) *consumer {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = pollInterval
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = 0
	bo.Reset()
	return &consumer{
		queue:           queue,
		process:         process,
		pollInterval:    pollInterval,
		maxDequeueCount: maxDequeueCount,
		backoff:         bo,
	}
}

// run polls the queue until ctx is cancelled.
func (c *consumer) run(ctx context.Context) {
	for {
		wait := c.poll(ctx)
		if ctx.Err() != nil {
			return
		}
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// poll handles at most one message and returns how long to wait before the
// next poll.
func (c *consumer) poll(ctx context.Context) time.Duration {
	msg, err := c.queue.Dequeue(ctx)
	if err != nil {
		wait := c.backoff.NextBackOff()
		log.WithError(err).WithField("retryIn", wait).Warn("receive failed")
		return wait
	}
	c.backoff.Reset()
	if msg == nil {
		return c.pollInterval
	}
	if msg.MessageID == nil || msg.PopReceipt == nil {
		log.Error("dequeued message without id or pop receipt")
		return c.pollInterval
	}
	logger := log.WithField("message", *msg.MessageID)
	text := ""
	if msg.MessageText != nil {
		text = *msg.MessageText
	}
	if err := c.process(ctx, text); err != nil {
		var count int64
		if msg.DequeueCount != nil {
			count = *msg.DequeueCount
		}
		if count < c.maxDequeueCount {
			logger.WithError(err).WithField("dequeueCount", count).Warn("message processing failed, leaving for redelivery")
			return 0
		}
		logger.WithError(err).WithField("dequeueCount", count).Error("dropping poison message")
		messagesDropped.Inc()
	}
	if err := c.queue.Delete(ctx, *msg.MessageID, *msg.PopReceipt); err != nil {
		logger.WithError(err).Error("failed to delete message")
	}
	return 0
}
