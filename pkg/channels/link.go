package channels

// Link is an optional backend: either Unconfigured or Connected to a value.
// Callers check it once with Get instead of comparing against nil.
type Link[T any] struct {
	value     T
	connected bool
}

func Connected[T any](value T) Link[T] {
	return Link[T]{value: value, connected: true}
}

func Unconfigured[T any]() Link[T] {
	return Link[T]{}
}

func (l Link[T]) Get() (T, bool) {
	return l.value, l.connected
}

func (l Link[T]) IsConnected() bool {
	return l.connected
}

// Map converts a connected link, keeping Unconfigured as is.
func Map[T, U any](l Link[T], fn func(T) U) Link[U] {
	if !l.connected {
		return Unconfigured[U]()
	}
	return Connected(fn(l.value))
}
