// Package notifier delivers homework status messages to the configured chat.
//
// Delivery is best-effort: a failed send is logged and counted, never
// returned. The poll loop therefore keeps its bookkeeping (last notified
// status) moving even when Telegram is unreachable.
//
// # Transport
//
// The notifier delegates delivery to a transport.Sender (the Telegram
// adapter in production) and only owns the destination and an optional
// send rate limit.
package notifier
