package ecs

// System is the per-tick behavior driven by a Scheduler. Systems may declare
// Query fields, which the Scheduler binds on Register and refreshes before
// every Execute, and keep any other state between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}
