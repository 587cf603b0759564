// Package po defines persistence-oriented data objects shared by repositories.
package po

import "time"

// ReceivedAtLayout renders received_at_server values. The fractional part is
// zero-padded, so every value in years 0000-9999 is exactly 26 characters.
const ReceivedAtLayout = "2006-01-02T15:04:05.000000"

// GreetingLog is one row of the greeting log table.
type GreetingLog struct {
	Message       string
	ClientAddress string
	ReceivedAt    string
}

// FormatReceivedAt renders t in UTC using ReceivedAtLayout.
func FormatReceivedAt(t time.Time) string {
	return t.UTC().Format(ReceivedAtLayout)
}
