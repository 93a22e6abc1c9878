// internal/event/event.go
package event

// EventType идентифицирует вид события строковым именем.
type EventType string

// Event — одно событие симуляции. Data несёт полезную нагрузку
// конкретного типа (см. types.go) либо nil.
type Event struct {
	Type EventType
	Data interface{}
}

// Listener получает события тех типов, на которые подписан.
type Listener interface {
	OnEvent(event Event)
}

// Dispatcher рассылает события синхронно, в порядке подписки.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventType][]Listener)}
}

// Subscribe регистрирует слушателя на тип события.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe снимает первую найденную регистрацию слушателя.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	listeners := d.listeners[eventType]
	for i, l := range listeners {
		if l == listener {
			d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			return
		}
	}
}

// Dispatch доставляет событие всем слушателям его типа.
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}
