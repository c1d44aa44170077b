package cmd

import (
	"context"
	"errors"
	"github.com/nats-io/nats.go/jetstream"
	"log/slog"
	"time"
	"vending-machine/common/constant"
)

type eventHandler func(ctx context.Context, msg []byte) error

// consume pulls from cons until ctx is done, dispatching on subject. A handler
// error naks the message so it is redelivered after nakDelay.
func consume(ctx context.Context, name string, cons jetstream.Consumer, nakDelay time.Duration, handlers map[string]eventHandler) {
	iter, err := cons.Messages()
	if err != nil {
		panic(err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := iter.Next()
				if errors.Is(err, jetstream.ErrMsgIteratorClosed) {
					return
				}

				if err != nil {
					slog.ErrorContext(ctx, "Error fetching message", slog.Any(constant.LogFieldErr, err))
					continue
				}

				handler, ok := handlers[msg.Subject()]
				if !ok {
					slog.WarnContext(ctx, "no handler for subject", slog.String("subject", msg.Subject()))
					msg.Term()
					continue
				}

				if eventErr := handler(ctx, msg.Data()); eventErr != nil {
					msg.NakWithDelay(nakDelay)
					continue
				}

				if err := msg.Ack(); err != nil {
					slog.ErrorContext(ctx, "Error acknowledging message",
						slog.Any(constant.LogFieldErr, err),
						slog.Any(constant.LogFieldPayload, string(msg.Data())),
						slog.String("subject", msg.Subject()),
					)
					continue
				}
			}
		}
	}()

	slog.InfoContext(ctx, name+" queue consumer started")

	<-ctx.Done()

	iter.Stop()

	slog.InfoContext(ctx, name+" queue consumer stopped")
}
