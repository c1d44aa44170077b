package cmd

import (
	"context"
	"log"
	"time"
	"vending-machine/common/constant"
	commonJetstream "vending-machine/common/jetstream"
	"vending-machine/inbound/event"
	emailOutbound "vending-machine/outbound/email"
)

func runQueueEmailCmd(ctx context.Context) {
	cfg := newCfg("env")

	stopProfiling := startProfiling(cfg, "email")
	defer stopProfiling()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	st := createStreamWorkQueue(ctx, cfg, js)

	outbound := &emailOutbound.EmailOutbound{Cfg: cfg}
	outbound.Init()

	emailEvent := event.EmailEvent{
		EmailOutbound: outbound,
		Timeout:       cfg.GetDuration("queue.email.timeout"),
	}

	cons, err := st.CreateOrUpdateConsumer(ctx, commonJetstream.ConsumerConfig(
		"consumer:email",
		constant.EmailWildcard,
		cfg.GetInt("queue.email.max_deliver"),
		cfg.GetDuration("queue.email.ack_wait"),
	))
	if err != nil {
		log.Fatalln("failed to create consumer", err)
	}

	consume(ctx, "email", cons, 5*time.Second, map[string]eventHandler{
		constant.SubjectSendEmail: emailEvent.SendEmailHandler,
	})
}
