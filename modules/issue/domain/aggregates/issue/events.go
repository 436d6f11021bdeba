package issue

// CreatedEvent is published after the transaction creating an issue has
// committed. Downstream notifiers must never observe an issue before then.
type CreatedEvent struct {
	Issue Issue
}
