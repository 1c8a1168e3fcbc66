// FILE: internal/service/notice_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"aura-ops-be/pkg/notice"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// INoticeService is the transient-notice feed. Producers publish through the
// event bus; the consumer keeps the active set in a TTL store so every
// notice auto-expires without anyone dismissing it.
type INoticeService interface {
	Publish(level notice.Level, title, message, instanceID string)
	Active() []notice.Notice
	Start(ctx context.Context) error
}

// NoticeStore is the TTL-backed storage the consumer writes into.
type NoticeStore interface {
	Put(n notice.Notice)
	All() []notice.Notice
}

type noticeService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	store     NoticeStore
}

func NewNoticeService(pubSub *gochannel.GoChannel, topicName string, store NoticeStore) INoticeService {
	return &noticeService{
		pubSub:    pubSub,
		topicName: topicName,
		store:     store,
	}
}

// Publish fires a notice onto the bus. Best effort: a failed publish is
// logged and dropped, it never fails the operation that produced it.
func (ns *noticeService) Publish(level notice.Level, title, msg, instanceID string) {
	n := notice.Notice{
		ID:         uuid.New().String(),
		Level:      level,
		Title:      title,
		Message:    msg,
		InstanceID: instanceID,
		CreatedAt:  time.Now(),
	}

	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal notice: %v", err)
		return
	}

	if err := ns.pubSub.Publish(ns.topicName, message.NewMessage(n.ID, payload)); err != nil {
		log.Printf("[ERROR] Failed to publish notice: %v", err)
	}
}

func (ns *noticeService) Active() []notice.Notice {
	return ns.store.All()
}

// Start subscribes the consumer. Runs until ctx is cancelled.
func (ns *noticeService) Start(ctx context.Context) error {
	messages, err := ns.pubSub.Subscribe(ctx, ns.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ns.processMessage(msg)
		}
	}()

	return nil
}

func (ns *noticeService) processMessage(msg *message.Message) {
	var n notice.Notice
	if err := json.Unmarshal(msg.Payload, &n); err != nil {
		log.Printf("[ERROR] Failed to unmarshal notice message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	ns.store.Put(n)
	msg.Ack()
}
