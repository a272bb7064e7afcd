// Package services contains the application services of the folio client.
//
// Each service owns one concern (session-backed auth, likes and comments,
// portfolio reads and admin writes, search, theme preferences, the contact
// form) and talks to the outside world only through gateway.Client and
// store.Store, so tests substitute either side.
package services
