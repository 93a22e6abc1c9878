// internal/event/queue.go
package event

// Queue накапливает события тика для внешнего слоя (прогрессия, звук, UI).
// Внешние подписчики не получают событий прямо из симуляции: очередь
// опустошается после тика, чтобы колбэк не мог повторно войти в симуляцию.
type Queue struct {
	events []Event
}

func NewQueue() *Queue {
	return &Queue{}
}

// OnEvent реализует Listener: очередь можно подписать на диспетчер.
func (q *Queue) OnEvent(e Event) {
	q.events = append(q.events, e)
}

// Drain возвращает накопленные события и очищает очередь.
func (q *Queue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

// Len возвращает число событий в очереди.
func (q *Queue) Len() int {
	return len(q.events)
}
