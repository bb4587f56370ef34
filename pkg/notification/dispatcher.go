package notification

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/internal/observability"
	"context"
	"errors"
	"github.com/gofiber/fiber/v2/log"
	"io"
	"sync"
	"time"
)

const DefaultTimeout = 10 * time.Second

type (
	Channel interface {
		Name() string
		Send(ctx context.Context, event domain.NotificationEvent) error
	}

	// Dispatcher delivers lifecycle events on a detached goroutine. Failures
	// are logged and counted, never returned to the caller.
	Dispatcher interface {
		Notify(ctx context.Context, event domain.NotificationEvent)
		Close() error
	}

	dispatcher struct {
		channels []Channel
		timeout  time.Duration
		wg       sync.WaitGroup
	}
)

func NewDispatcher(timeout time.Duration, channels ...Channel) Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &dispatcher{
		channels: channels,
		timeout:  timeout,
	}
}

// Notify does not inherit ctx cancellation: the request that triggered the
// event is usually finished before delivery.
func (d *dispatcher) Notify(_ context.Context, event domain.NotificationEvent) {
	if len(d.channels) == 0 {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		for _, channel := range d.channels {
			result := "sent"
			if err := channel.Send(ctx, event); err != nil {
				result = "failed"
				log.Warnf("notification %s via %s for donation %s failed: %v", event.Type, channel.Name(), event.DonationID, err)
			}
			observability.NotificationsTotal.WithLabelValues(string(event.Type), channel.Name(), result).Inc()
		}
	}()
}

// Close waits for in-flight deliveries and then closes the channels.
func (d *dispatcher) Close() error {
	d.wg.Wait()

	var errs []error
	for _, channel := range d.channels {
		if closer, ok := channel.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
