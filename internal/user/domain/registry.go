package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/adminlab/shared/events"
)

// Las constantes de los tipos de evento se definen aquí, como valores string.
const UserCreated = "user.created"

const UserTopic = "user"

const AggregateType = "user"

func NewEventRegistry() sharedEvents.Registry {
	return sharedEvents.Registry{
		UserCreated: {
			Type:  reflect.TypeOf(sharedEvents.UserCreated{}),
			Topic: UserTopic,
		},
	}
}
