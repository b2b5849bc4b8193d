package events

import (
	"context"
	"time"

	"influmatch_backend/internal/logger"

	"github.com/google/uuid"
)

// Названия доменных событий
const (
	EventMatchingCompleted  = "matching.completed"
	EventScoreCalculated    = "score.calculated"
	EventPortfolioOptimized = "portfolio.optimized"
	EventFeedbackReceived   = "feedback.received"
)

// Event — доменное событие движка матчинга.
type Event struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Payload    map[string]any `json:"payload"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func New(name string, payload map[string]any) Event {
	return Event{
		ID:         uuid.New().String(),
		Name:       name,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// Sink принимает события без блокировки вызывающего кода.
type Sink interface {
	Publish(event Event)
}

// AsyncSink доставляет события подписчикам в отдельной горутине.
// При переполненном буфере событие отбрасывается: матчинг важнее телеметрии.
type AsyncSink struct {
	ch       chan Event
	handlers []func(Event)
	done     chan struct{}
}

func NewAsyncSink(buffer int, handlers ...func(Event)) *AsyncSink {
	if buffer < 1 {
		buffer = 64
	}
	return &AsyncSink{
		ch:       make(chan Event, buffer),
		handlers: handlers,
		done:     make(chan struct{}),
	}
}

// Start запускает цикл доставки. Останавливается по отмене контекста.
func (s *AsyncSink) Start(ctx context.Context) {
	go func() {
		defer close(s.done)
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-s.ch:
				s.dispatch(event)
			}
		}
	}()
}

func (s *AsyncSink) dispatch(event Event) {
	logger.Debug("событие опубликовано", "event", event.Name, "event_id", event.ID)
	for _, handler := range s.handlers {
		handler(event)
	}
}

func (s *AsyncSink) Publish(event Event) {
	select {
	case s.ch <- event:
	default:
		logger.Warn("буфер событий переполнен, событие отброшено", "event", event.Name)
	}
}

// Wait блокируется до завершения цикла доставки.
func (s *AsyncSink) Wait() {
	<-s.done
}

// NoopSink используется в тестах и когда публикация отключена.
type NoopSink struct{}

func (NoopSink) Publish(event Event) {}
