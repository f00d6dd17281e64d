package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/adminlab/shared/events"
)

const (
	PaymentCreated = "payment.created"
	PaymentDeleted = "payment.deleted"
)

const PaymentTopic = "payment"

const AggregateType = "payment"

func NewEventRegistry() sharedEvents.Registry {
	return sharedEvents.Registry{
		PaymentCreated: {
			Type:  reflect.TypeOf(sharedEvents.PaymentRecorded{}),
			Topic: PaymentTopic,
		},
		PaymentDeleted: {
			Type:  reflect.TypeOf(sharedEvents.PaymentDeleted{}),
			Topic: PaymentTopic,
		},
	}
}
