// Package notificationservice renders governance lifecycle events into
// participant-facing notifications inside the engagement context.
package notificationservice
