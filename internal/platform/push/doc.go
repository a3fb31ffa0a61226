// Package push delivers device notifications.
//
// FCMSender sends through Firebase Cloud Messaging using service-account
// credentials. NoopSender only logs, and is used when no credentials are configured.
package push
