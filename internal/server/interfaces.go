package server

// Server is the lifecycle of the remote store's HTTP listener.
type Server interface {
	// RunServer serves until SIGINT, SIGTERM or SIGQUIT, then shuts down
	// gracefully.
	RunServer()

	// Shutdown stops accepting connections and waits for in-flight requests
	// up to the configured shutdown timeout.
	Shutdown()
}
