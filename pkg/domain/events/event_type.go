package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	EventTypeTransactionRecorded EventType = "Ledger.TransactionRecorded"
	EventTypeAccountRegistered   EventType = "Account.Registered"
	EventTypeEmployeeRemoved     EventType = "Employee.Removed"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}
