package domain

// Once the threshold is reached the alert escalates after a 5 minute grace.
const overdueGraceSec = 300

// AlertLevel maps the running sedentary counter to an alert tier:
// 0 below the threshold, 1 once it is reached, 2 once the grace has
// passed as well.
func AlertLevel(elapsedSec, thresholdMin int) int {
	thresholdSec := thresholdMin * 60
	switch {
	case elapsedSec >= thresholdSec+overdueGraceSec:
		return 2
	case elapsedSec >= thresholdSec:
		return 1
	default:
		return 0
	}
}
