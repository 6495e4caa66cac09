package ports

// FulfilmentMetrics records operational counters of the fulfilment engine.
type FulfilmentMetrics interface {
	OrderPlaced(brandCount int)
	TransitionApplied(target string, changed bool)
	TransitionConflict()
	LedgerApplied(kind string)
	NotificationSent(kind string, ok bool)
}
