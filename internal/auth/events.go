// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	evbus "github.com/asaskevich/EventBus"
)

const topicAuthEvent = "auth:event"

// eventRegistry delivers auth events to registered observers. Delivery is
// synchronous and in registration order. Observers must not re-enter the
// manager from inside the callback.
type eventRegistry struct {
	bus evbus.Bus
}

func newEventRegistry() *eventRegistry {
	return &eventRegistry{bus: evbus.New()}
}

func (r *eventRegistry) subscribe(observer func()) {
	// Subscribe only fails for non-function handlers.
	_ = r.bus.Subscribe(topicAuthEvent, observer)
}

func (r *eventRegistry) publish() {
	r.bus.Publish(topicAuthEvent)
}
