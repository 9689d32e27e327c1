package tasks

// SchedulerInterface is what the main application needs from the
// scheduler: lifecycle control plus a status snapshot for the API.
type SchedulerInterface interface {
	Start()
	Stop()
	Statuses() []Status
}
