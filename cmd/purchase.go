package cmd

import (
	"context"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"log"
	"time"
	"vending-machine/common/constant"
	commonJetstream "vending-machine/common/jetstream"
	"vending-machine/inbound/event"
)

func runQueuePurchaseCmd(ctx context.Context) {
	cfg := newCfg("env")

	stopProfiling := startProfiling(cfg, "purchase")
	defer stopProfiling()

	store, release := newStore(cfg)
	defer release()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	st := createStreamWorkQueue(ctx, cfg, js)

	purchaseEvent := event.PurchaseEvent{
		Store:             store,
		Publisher:         js,
		CurrencyFormatter: message.NewPrinter(language.English),
		Timeout:           cfg.GetDuration("queue.purchase.timeout"),
		TimeNow:           time.Now,
	}

	cons, err := st.CreateOrUpdateConsumer(ctx, commonJetstream.ConsumerConfig(
		"consumer:purchase",
		constant.PurchaseWildcard,
		cfg.GetInt("queue.purchase.max_deliver"),
		cfg.GetDuration("queue.purchase.ack_wait"),
	))
	if err != nil {
		log.Fatalln("failed to create consumer", err)
	}

	consume(ctx, "purchase", cons, time.Second, map[string]eventHandler{
		constant.SubjectPurchaseCompleted: purchaseEvent.RecordHandler,
	})
}
