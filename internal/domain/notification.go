package domain

// Notification is the user-facing outcome of a mutating operation.
// Validation rejections travel as informational notifications rather
// than errors; how the message is presented is the caller's concern.
type Notification struct {
	Level   NotificationLevel
	Message string
}

// OK reports whether the operation was applied (success or destructive).
func (n Notification) OK() bool {
	return n.Level != NoteInformational
}

func SuccessNote(msg string) Notification {
	return Notification{Level: NoteSuccess, Message: msg}
}

func DestructiveNote(msg string) Notification {
	return Notification{Level: NoteDestructive, Message: msg}
}

func RejectionNote(msg string) Notification {
	return Notification{Level: NoteInformational, Message: msg}
}
