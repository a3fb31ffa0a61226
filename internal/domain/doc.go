// Package domain contains the core business entities, value objects, and
// domain errors of the application: users, the behavioral signals recorded
// for them (emotions, thoughts, transactions) and the credit limits computed
// from those signals. It is independent of any storage or delivery mechanism.
package domain
