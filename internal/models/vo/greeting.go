// Package vo defines view objects exposed to upper layers.
package vo

// Greeting is the result of a recorded SayHello call.
type Greeting struct {
	Message    string
	ReceivedAt string
}
