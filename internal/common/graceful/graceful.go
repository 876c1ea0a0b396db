package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slices"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
)

type ProcessStarter func() error

type ProcessStopper func(ctx context.Context) error

type ProcessStartStopper interface {
	Start() ProcessStarter
	Stop() ProcessStopper
}

func StartProcessAtBackground(ps ...ProcessStarter) {
	for _, p := range ps {
		if p != nil {
			go func(_p func() error) {
				if err := _p(); err != nil {
					xlog.Error(context.Background(), "process exited", xlog.Err(err))
				}
			}(p)
		}
	}
}

// StopProcessAtBackground blocks until SIGINT, SIGTERM or SIGUSR1 and then runs ps.
func StopProcessAtBackground(duration time.Duration, ps ...ProcessStopper) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)
	defer signal.Stop(sig)

	s := <-sig
	xlog.Info(context.Background(), "shutting down", xlog.String("signal", s.String()))

	if err := StopProcess(duration, ps...); err != nil {
		xlog.Warn(context.Background(), "graceful stop finished with errors", xlog.Err(err))
	}
}

// StopProcess runs ps in reverse registration order, each bounded by duration.
func StopProcess(duration time.Duration, ps ...ProcessStopper) error {
	ps = slices.Clone(ps)
	slices.Reverse(ps)

	var errs *multierror.Error
	for _, p := range ps {
		if p == nil {
			continue
		}
		func() {
			ctx, stop := context.WithTimeout(context.Background(), duration)
			defer stop()
			if err := p(ctx); err != nil {
				errs = multierror.Append(errs, err)
			}
		}()
	}

	return errs.ErrorOrNil()
}
