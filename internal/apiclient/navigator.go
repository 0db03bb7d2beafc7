package apiclient

// Navigator receives route changes requested by the HTTP layer. What a
// navigation means is up to the presentation layer.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// NavigationSignal queues requested routes on a buffered channel. Requests
// arriving while the buffer is full are dropped; a pending navigation to the
// same place already covers them.
type NavigationSignal struct {
	ch chan string
}

// NewNavigationSignal creates a signal with room for size pending routes
func NewNavigationSignal(size int) *NavigationSignal {
	if size < 1 {
		size = 1
	}
	return &NavigationSignal{ch: make(chan string, size)}
}

func (s *NavigationSignal) Navigate(route string) {
	select {
	case s.ch <- route:
	default:
	}
}

// Routes returns the channel navigations are delivered on
func (s *NavigationSignal) Routes() <-chan string {
	return s.ch
}
