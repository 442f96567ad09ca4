package handlers_test

import (
	"context"
	"errors"

	"github.com/doughlab/doughcalc/internal/dough"
	"github.com/doughlab/doughcalc/internal/messaging"
)

var errMock = errors.New("mock error")

// noopPublish returns a publish function that always succeeds.
func noopPublish[T any]() messaging.Publish[T] {
	return func(_ *T) error { return nil }
}

// errorPublish returns a publish function that always fails.
func errorPublish[T any](err error) messaging.Publish[T] {
	return func(_ *T) error { return err }
}

// capturingPublish records published events.
type capturingPublish[T any] struct {
	events []*T
}

func (c *capturingPublish[T]) fn() messaging.Publish[T] {
	return func(event *T) error {
		c.events = append(c.events, event)

		return nil
	}
}

// mockRepo is a test double for dough.Repository that can be configured to
// return errors.
type mockRepo struct {
	saveErr error
	getErr  error
	saved   *dough.Recipe
}

func (m *mockRepo) Save(_ context.Context, recipe *dough.Recipe) error {
	m.saved = recipe

	return m.saveErr
}

func (m *mockRepo) GetByCode(_ context.Context, _ dough.ShareCode) (*dough.Recipe, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	return m.saved, nil
}
