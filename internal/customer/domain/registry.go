package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/adminlab/shared/events"
)

const (
	CustomerCreated       = "customer.created"
	CustomerUpdated       = "customer.updated"
	CustomerDeleted       = "customer.deleted"
	CustomerSeedRequested = "customer.seed_requested"
)

const (
	CustomerTopic     = "customer"
	CustomerSeedTopic = "customer.seed"
)

const AggregateType = "customer"

func NewEventRegistry() sharedEvents.Registry {
	return sharedEvents.Registry{
		CustomerCreated: {
			Type:  reflect.TypeOf(sharedEvents.CustomerChanged{}),
			Topic: CustomerTopic,
		},
		CustomerUpdated: {
			Type:  reflect.TypeOf(sharedEvents.CustomerChanged{}),
			Topic: CustomerTopic,
		},
		CustomerDeleted: {
			Type:  reflect.TypeOf(sharedEvents.CustomerDeleted{}),
			Topic: CustomerTopic,
		},
	}
}
