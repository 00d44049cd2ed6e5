// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

import "time"

// MailQueueName is the durable queue outbound mail is published to.
const MailQueueName = "mail.outbound"

// MailMessage is one email waiting to be delivered.  The storefront only
// sends password reset mails, but the payload is generic.
type MailMessage struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"created_at"`
}
