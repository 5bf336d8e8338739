// Package event provides the calendar Event type and its wire formats.
//
// Events are created and mutated only through the store package; everything
// else receives value copies. Timestamps travel as zone-less local strings
// in the form YYYY-MM-DDTHH:mm:ss, which is the format the assistant model
// is instructed to emit.
package event
