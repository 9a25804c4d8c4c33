package main

import "fmt"

const (
	errNoResponse      = iota + 1 // command or rpc gave us nothing
	errDecode                     // output was not json
	errNotAnArray                 // json but not a list of peers
	errNoOutboundPeers            // nothing survived the filter
)

// seedError is returned by every stage of the zone generation. source is
// the command line or rpc host the error is about.
type seedError struct {
	kind   int
	source string
	err    error
}

// Error returns the message shown to the operator
func (e *seedError) Error() string {
	var msg string
	switch e.kind {
	case errNoResponse:
		msg = fmt.Sprintf("no response from %s", e.source)
	case errDecode:
		msg = "error decoding json data from daemon"
	case errNotAnArray:
		msg = "returned data from daemon is not an array"
	case errNoOutboundPeers:
		msg = fmt.Sprintf("no outbound connections found in %s", e.source)
	default:
		msg = "unknown error from " + e.source
	}
	if e.err != nil {
		msg += ": " + e.err.Error()
	}
	return msg
}

func (e *seedError) Unwrap() error { return e.err }

// kind2str will return the name of the error kind
func (e *seedError) kind2str() string {
	switch e.kind {
	case errNoResponse:
		return "NoResponse"
	case errDecode:
		return "DecodeError"
	case errNotAnArray:
		return "NotAnArray"
	case errNoOutboundPeers:
		return "NoOutboundPeers"
	default:
		return "Unknown"
	}
}
