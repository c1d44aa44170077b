package event

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"log/slog"
	"strings"
	"testing"
	"time"
	"vending-machine/common/constant"
	jetstreamMock "vending-machine/common/jetstream/mocks"
	"vending-machine/model"
	"vending-machine/outbound/memory"
	"vending-machine/outbound/postgres"
)

type PurchaseEventTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	publisher     *jetstreamMock.MockPublisher
	PgxMock       pgxmock.PgxPoolIface
	purchaseEvent PurchaseEvent
}

func (s *PurchaseEventTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.publisher = jetstreamMock.NewMockPublisher(s.ctrl)

	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}

	s.PgxMock = pool
	s.purchaseEvent = PurchaseEvent{
		Store:             postgres.New(pool),
		Publisher:         s.publisher,
		CurrencyFormatter: message.NewPrinter(language.English),
		Timeout:           10 * time.Second,
	}

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *PurchaseEventTestSuite) TearDownTest() {
	s.PgxMock.Close()
	s.ctrl.Finish()
}

func TestPurchaseEventTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseEventTestSuite))
}

func (s *PurchaseEventTestSuite) TestRecordHandler() {
	completedAt := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	input := model.PurchaseCompletedEventMessage{
		Reference:   "01JGQX0000000000000000000A",
		BuyerID:     "b1",
		ProductID:   1,
		ProductName: "Cola",
		Quantity:    40,
		TotalCost:   1400,
		Change:      model.Change{50: 1, 10: 1, 5: 1},
		CompletedAt: completedAt.Format(time.RFC3339),
	}

	expectInsert := func() *pgxmock.ExpectedExec {
		return s.PgxMock.ExpectExec("INSERT INTO purchases").
			WithArgs(
				input.Reference,
				"b1",
				int32(1),
				int32(40),
				int64(1400),
				int64(65),
				pgtype.Timestamp{Time: completedAt, Valid: true},
			)
	}

	accountRows := func(email string) *pgxmock.Rows {
		return pgxmock.NewRows([]string{"id", "username", "email", "role", "deposit"}).
			AddRow("b1", "jane", email, "Buyer", int32(0))
	}

	testCases := []struct {
		name        string
		msg         []byte
		setupMock   func()
		expectError bool
	}{
		{
			name:      "invalid json is dropped",
			msg:       []byte(`{invalid json`),
			setupMock: func() {},
		},
		{
			name: "insert error",
			msg:  mustJSON(input),
			setupMock: func() {
				expectInsert().WillReturnError(fmt.Errorf("database error"))
			},
			expectError: true,
		},
		{
			name: "already recorded still publishes receipt",
			msg:  mustJSON(input),
			setupMock: func() {
				expectInsert().WillReturnResult(pgxmock.NewResult("INSERT", 0))
				s.PgxMock.ExpectQuery("SELECT id, username, email, role, deposit FROM accounts").
					WithArgs("b1").
					WillReturnRows(accountRows("jane@example.com"))
				s.publisher.EXPECT().Publish(
					gomock.Any(),
					constant.SubjectSendEmail,
					gomock.Any(),
					gomock.Any(),
				).Return(&jetstream.PubAck{Stream: constant.QueueStreamName}, nil)
			},
		},
		{
			name: "find account error",
			msg:  mustJSON(input),
			setupMock: func() {
				expectInsert().WillReturnResult(pgxmock.NewResult("INSERT", 1))
				s.PgxMock.ExpectQuery("SELECT id, username, email, role, deposit FROM accounts").
					WithArgs("b1").
					WillReturnError(fmt.Errorf("database error"))
			},
			expectError: true,
		},
		{
			name: "buyer without email",
			msg:  mustJSON(input),
			setupMock: func() {
				expectInsert().WillReturnResult(pgxmock.NewResult("INSERT", 1))
				s.PgxMock.ExpectQuery("SELECT id, username, email, role, deposit FROM accounts").
					WithArgs("b1").
					WillReturnRows(accountRows(""))
			},
		},
		{
			name: "publish error",
			msg:  mustJSON(input),
			setupMock: func() {
				expectInsert().WillReturnResult(pgxmock.NewResult("INSERT", 1))
				s.PgxMock.ExpectQuery("SELECT id, username, email, role, deposit FROM accounts").
					WithArgs("b1").
					WillReturnRows(accountRows("jane@example.com"))
				s.publisher.EXPECT().Publish(
					gomock.Any(),
					constant.SubjectSendEmail,
					gomock.Any(),
					gomock.Any(),
				).Return(nil, fmt.Errorf("publish error"))
			},
			expectError: true,
		},
		{
			name: "success",
			msg:  mustJSON(input),
			setupMock: func() {
				expectInsert().WillReturnResult(pgxmock.NewResult("INSERT", 1))
				s.PgxMock.ExpectQuery("SELECT id, username, email, role, deposit FROM accounts").
					WithArgs("b1").
					WillReturnRows(accountRows("jane@example.com"))
				s.publisher.EXPECT().Publish(
					gomock.Any(),
					constant.SubjectSendEmail,
					gomock.Any(),
					gomock.Any(),
				).DoAndReturn(func(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
					var email model.SendEmailEventMessage
					s.Require().NoError(json.Unmarshal(payload, &email))
					s.Equal("jane@example.com", email.To)
					s.Equal("Purchase Receipt", email.Subject)
					s.Contains(email.Body, "Dear jane,")
					s.Contains(email.Body, "Total Amount: 1,400 cents")
					s.Contains(email.Body, "Total change: 65 cents")
					s.Less(strings.Index(email.Body, "- 1 x 50 cents"), strings.Index(email.Body, "- 1 x 5 cents"))
					return &jetstream.PubAck{Stream: constant.QueueStreamName}, nil
				})
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.setupMock()

			err := s.purchaseEvent.RecordHandler(context.Background(), tc.msg)

			if tc.expectError {
				s.Error(err)
			} else {
				s.NoError(err)
			}

			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

func (s *PurchaseEventTestSuite) TestBuildPurchaseReceiptEmailBody() {
	body := s.purchaseEvent.buildPurchaseReceiptEmailBody("jane", model.PurchaseCompletedEventMessage{
		Reference:   "ref-1",
		ProductName: "Cola",
		Quantity:    1,
		TotalCost:   50,
		Change:      model.Change{},
	})

	s.Contains(body, "Reference: ref-1")
	s.Contains(body, "Product: Cola")
	s.Contains(body, "Quantity: 1")
	s.Contains(body, "- none")
	s.Contains(body, "Total change: 0 cents")
}

func (s *PurchaseEventTestSuite) TestRecordHandlerRedeliveryAfterPublishError() {
	store := memory.New()
	_, err := store.InsertAccount(context.Background(), model.Account{
		ID:       "b1",
		Username: "jane",
		Email:    "jane@example.com",
		Role:     model.RoleBuyer,
	})
	s.Require().NoError(err)

	handler := s.purchaseEvent
	handler.Store = store

	msg := mustJSON(model.PurchaseCompletedEventMessage{
		Reference:   "01JGQX0000000000000000000B",
		BuyerID:     "b1",
		ProductID:   1,
		ProductName: "Cola",
		Quantity:    1,
		TotalCost:   35,
		Change:      model.Change{5: 1},
	})

	gomock.InOrder(
		s.publisher.EXPECT().
			Publish(gomock.Any(), constant.SubjectSendEmail, gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("nats down")),
		s.publisher.EXPECT().
			Publish(gomock.Any(), constant.SubjectSendEmail, gomock.Any(), gomock.Any()).
			Return(&jetstream.PubAck{Stream: constant.QueueStreamName}, nil),
	)

	s.Error(handler.RecordHandler(context.Background(), msg))
	s.NoError(handler.RecordHandler(context.Background(), msg))

	purchases, err := store.FindPurchasesByBuyer(context.Background(), "b1")
	s.Require().NoError(err)
	s.Len(purchases, 1)
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
