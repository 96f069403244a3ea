package failover

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/styleaura/storefront/internal/email"
)

// Sender tries its senders in turn, starting from a rotating offset.
type Sender struct {
	senders []email.Sender
	idx     uint64
}

func NewSender(senders ...email.Sender) *Sender {
	return &Sender{senders: senders}
}

func (f *Sender) SendMail(ctx context.Context, m email.Mail) error {
	idx := atomic.AddUint64(&f.idx, 1)
	length := uint64(len(f.senders))
	for i := idx; i < idx+length; i++ {
		err := f.senders[i%length].SendMail(ctx, m)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return err
		default:
			slog.WarnContext(ctx, "Email provider failed", "error", err)
		}
	}

	return email.ErrAllFailed
}
