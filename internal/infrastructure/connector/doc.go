// Package connector holds adapters to systems outside the database, such as
// the message broker receiving invoice events.
package connector
