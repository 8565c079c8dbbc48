package events

// EventTypes maps every wire event type to a constructor, used by the
// broker-backed buses to decode payloads.
var EventTypes = map[string]func() Event{
	EventTypeTransactionRecorded.String(): func() Event { return &TransactionRecorded{} },
	EventTypeAccountRegistered.String():   func() Event { return &AccountRegistered{} },
	EventTypeEmployeeRemoved.String():     func() Event { return &EmployeeRemoved{} },
}
