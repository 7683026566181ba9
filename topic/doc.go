// Package topic assembles activation records into ranked passages.
//
// The Assembler picks the most activated matches, grows a span around each
// over neighbouring well-activated matches and adjacent modifiers, and
// reports the sentences the span covers. Results are ranked with ties marked
// by a trailing "=".
package topic
