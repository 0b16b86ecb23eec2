// Package channel provides message passing conduits that implement
// [monitors.Channel].
//
// [Synchronous] is a rendezvous: it holds at most one message, so a sender can
// never get more than one message ahead of its receiver. [Port] is a
// many-to-one mailbox with a bounded backlog.
//
// Ownership of a message passes from sender to receiver. A sender that still
// needs the message afterwards should send a copy.
package channel
