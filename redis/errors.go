package redis

import (
	"context"
	stderrors "errors"
	"net"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/redisfacade/errors"
)

// classify maps a go-redis error onto an app error code. goredis.Nil must be
// handled by the caller, since its meaning depends on the command.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}

	var netErr net.Error
	switch {
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		return errors.Timeout(op, err)
	case stderrors.As(err, &netErr) && netErr.Timeout():
		return errors.Timeout(op, err)
	case stderrors.Is(err, goredis.TxFailedErr), goredis.HasErrorPrefix(err, "EXECABORT"):
		return errors.TransactionAborted(op, err)
	case stderrors.Is(err, goredis.ErrClosed):
		return errors.ConnectionFailed(op, err)
	case isServerError(err):
		return errors.CommandFailed(op, err)
	default:
		return errors.ConnectionFailed(op, err)
	}
}

func isServerError(err error) bool {
	var rErr goredis.Error
	return stderrors.As(err, &rErr)
}
