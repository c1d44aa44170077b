package email

import (
	"context"
	"fmt"
	"github.com/spf13/viper"
	"net/smtp"
	"strings"
	"time"
	"vending-machine/common"
	"vending-machine/common/contract"
	"vending-machine/common/otel"
)

type EmailOutbound struct {
	Cfg *viper.Viper

	TimeNow  func() time.Time
	SendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

	auth  smtp.Auth
	addr  string
	email string
}

var _ contract.EmailSender = (*EmailOutbound)(nil)

func (out *EmailOutbound) Init() {
	host := out.Cfg.GetString("email.host")

	out.email = out.Cfg.GetString("email.user")
	out.addr = fmt.Sprintf("%s:%d", host, out.Cfg.GetInt("email.port"))

	switch out.Cfg.GetString("email.auth") {
	case "none":
		out.auth = nil
	case "plain":
		out.auth = smtp.PlainAuth("", out.email, out.Cfg.GetString("email.password"), host)
	default:
		out.auth = smtp.CRAMMD5Auth(out.email, out.Cfg.GetString("email.password"))
	}

	if out.TimeNow == nil {
		out.TimeNow = time.Now
	}

	if out.SendMail == nil {
		out.SendMail = smtp.SendMail
	}
}

func (out *EmailOutbound) Send(ctx context.Context, to []string, subject string, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, span := otel.Tracer.Start(ctx, "EmailOutbound.Send")
	defer span.End()

	message := buildMessage(out.email, to, subject, body, out.TimeNow())

	err := out.SendMail(out.addr, out.auth, out.email, to, message)
	if err != nil {
		common.UtilSpanError(span, err)
		return err
	}

	return nil
}

func buildMessage(from string, to []string, subject string, body string, date time.Time) []byte {
	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nDate: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		from,
		strings.Join(to, ","),
		subject,
		date.Format(time.RFC1123Z),
		body,
	))
}
