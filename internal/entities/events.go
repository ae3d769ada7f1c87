package entities

// Event types published on the toolkit event bus
const (
	EventDispatched      = "rotation.dispatched"
	EventStatusActivated = "rotation.status_activated"
)

// Event context keys
const (
	EventKeyCharacter = "character"
	EventKeyAbility   = "ability"
	EventKeyVariant   = "variant"
	EventKeyParam     = "param"
	EventKeyCommandID = "command_id"
	EventKeyVitaDelta = "vita_delta"
	EventKeyManaDelta = "mana_delta"
)
