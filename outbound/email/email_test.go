package email

import (
	"context"
	"errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"net/smtp"
	"testing"
	"time"
)

type EmailOutboundTestSuite struct {
	suite.Suite

	Cfg *viper.Viper
}

func (s *EmailOutboundTestSuite) SetupTest() {
	s.Cfg = viper.New()
	s.Cfg.Set("email.host", "smtp.example.com")
	s.Cfg.Set("email.port", 587)
	s.Cfg.Set("email.user", "noreply@example.com")
	s.Cfg.Set("email.password", "secret")
	s.Cfg.Set("email.auth", "none")
}

func TestEmailOutboundTestSuite(t *testing.T) {
	suite.Run(t, new(EmailOutboundTestSuite))
}

func (s *EmailOutboundTestSuite) TestSend() {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  string
	)

	out := &EmailOutbound{
		Cfg:     s.Cfg,
		TimeNow: func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) },
		SendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
			return nil
		},
	}
	out.Init()

	err := out.Send(context.Background(), []string{"b1@example.com"}, "Purchase Receipt", "hello")
	s.Require().NoError(err)

	s.Equal("smtp.example.com:587", gotAddr)
	s.Equal("noreply@example.com", gotFrom)
	s.Equal([]string{"b1@example.com"}, gotTo)
	s.Equal("From: noreply@example.com\r\n"+
		"To: b1@example.com\r\n"+
		"Subject: Purchase Receipt\r\n"+
		"Date: Thu, 02 Jan 2025 03:04:05 +0000\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n"+
		"hello", gotMsg)
}

func (s *EmailOutboundTestSuite) TestSendError() {
	out := &EmailOutbound{
		Cfg: s.Cfg,
		SendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			return errors.New("connection refused")
		},
	}
	out.Init()

	err := out.Send(context.Background(), []string{"b1@example.com"}, "Purchase Receipt", "hello")
	s.EqualError(err, "connection refused")
}

func (s *EmailOutboundTestSuite) TestSendCancelled() {
	called := false
	out := &EmailOutbound{
		Cfg: s.Cfg,
		SendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			called = true
			return nil
		},
	}
	out.Init()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := out.Send(ctx, []string{"b1@example.com"}, "Purchase Receipt", "hello")
	s.ErrorIs(err, context.Canceled)
	s.False(called)
}
