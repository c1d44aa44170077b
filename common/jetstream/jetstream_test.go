package jetstream

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
	"vending-machine/common/constant"
)

func TestConsumerConfig(t *testing.T) {
	cfg := ConsumerConfig("consumer:purchase", constant.PurchaseWildcard, 5, 30*time.Second)

	assert.Equal(t, "consumer:purchase", cfg.Durable)
	assert.Equal(t, constant.PurchaseWildcard, cfg.FilterSubject)
	assert.Equal(t, 5, cfg.MaxDeliver)
	assert.Equal(t, 30*time.Second, cfg.AckWait)
}
