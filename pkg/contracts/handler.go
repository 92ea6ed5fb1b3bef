package contracts

import "github.com/julienschmidt/httprouter"

// Handler is anything that can mount its endpoints on a router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Resource is released during graceful shutdown, after the server has
// drained. *kafka.Producer is one.
type Resource interface {
	Close() error
}
