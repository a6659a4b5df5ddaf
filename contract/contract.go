//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"plainchat/domain"
	"plainchat/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IEventPublisher hands domain events to the fanout without blocking the caller.
type IEventPublisher interface {
	Publish(evt event.DomainEvent)
}

// IRegistry tracks which viewers currently watch which conversation.
type IRegistry interface {
	GetSinksForConversation(conversationID string) []EventSink
	Subscribe(viewerID, conversationID string, sink EventSink)
	Unsubscribe(viewerID, conversationID string)
}

// IDownloader runs one attachment download task.
type IDownloader interface {
	Download(ctx context.Context, task domain.DownloadTask) error
}

// ISweeper removes stored files nobody references anymore.
type ISweeper interface {
	Sweep(ctx context.Context) (int, error)
}
