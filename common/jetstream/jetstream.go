package jetstream

import (
	"context"
	"github.com/nats-io/nats.go/jetstream"
	"time"
	"vending-machine/common/constant"
)

//go:generate mockgen -destination=mocks/publisher.go -package=mocks github.com/nats-io/nats.go/jetstream Publisher

func CreateQueueStream(ctx context.Context, js jetstream.JetStream, maxBytes int64) (jetstream.Stream, error) {
	cfg := jetstream.StreamConfig{
		Name:      constant.QueueStreamName,
		Retention: jetstream.WorkQueuePolicy,
		Subjects:  []string{constant.AllWildcard},
		MaxBytes:  maxBytes,
	}

	return js.CreateOrUpdateStream(ctx, cfg)
}

// ConsumerConfig builds a durable pull consumer bound to a subject filter.
func ConsumerConfig(durable, filterSubject string, maxDeliver int, ackWait time.Duration) jetstream.ConsumerConfig {
	return jetstream.ConsumerConfig{
		Durable:       durable,
		FilterSubject: filterSubject,
		MaxDeliver:    maxDeliver,
		AckWait:       ackWait,
	}
}
