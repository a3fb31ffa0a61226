// Package kafka moves signal events over a Kafka topic.
//
// The Publisher implements events.EventEmitter: the signal type is the
// message key and the JSON payload is the message value. The Consumer joins
// a consumer group, hands each message to an events.EventHandler and commits
// the offset whether or not the handler succeeded.
package kafka
