package contract

import "context"

//go:generate mockgen -destination=mocks/email.go -package=mocks vending-machine/common/contract EmailSender

type EmailSender interface {
	Send(ctx context.Context, to []string, subject string, body string) error
}
