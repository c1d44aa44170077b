package common

import (
	"context"
	"errors"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"testing"
	"vending-machine/common/constant"
	jetstreamMock "vending-machine/common/jetstream/mocks"
)

func TestExtractTraceIDFromCtx(t *testing.T) {
	attr := ExtractTraceIDFromCtx(context.Background())

	assert.Equal(t, constant.LogFieldTraceId, attr.Key)
	assert.NotEmpty(t, attr.Value.String())
}

func TestPublishMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := jetstreamMock.NewMockPublisher(ctrl)

	publisher.EXPECT().
		Publish(gomock.Any(), constant.SubjectPurchaseCompleted, []byte(`{"reference":"01HX"}`), gomock.Any()).
		Return(&jetstream.PubAck{}, nil)

	err := PublishMessage(context.Background(), publisher, constant.SubjectPurchaseCompleted,
		map[string]string{"reference": "01HX"}, jetstream.WithMsgID("01HX"))
	require.NoError(t, err)
}

func TestPublishMessageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := jetstreamMock.NewMockPublisher(ctrl)
	publishErr := errors.New("nats: timeout")

	publisher.EXPECT().
		Publish(gomock.Any(), constant.SubjectPurchaseCompleted, gomock.Any()).
		Return(nil, publishErr)

	err := PublishMessage(context.Background(), publisher, constant.SubjectPurchaseCompleted, struct{}{})
	assert.ErrorIs(t, err, publishErr)
}

func TestPublishMessageMarshalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := jetstreamMock.NewMockPublisher(ctrl)

	err := PublishMessage(context.Background(), publisher, constant.SubjectPurchaseCompleted, make(chan int))
	assert.Error(t, err)
}
