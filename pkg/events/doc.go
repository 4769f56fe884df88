/*
Package events provides a lightweight in-process publish/subscribe
broker for booking lifecycle events.

The lifecycle manager publishes an event for every reconciliation,
transition, manual move and cancellation; subscribers receive them on
buffered channels and slow subscribers are skipped rather than
blocking the publisher. The serve command attaches a logging
subscriber that drains the feed into the structured log.
*/
package events
