package di

// FunctionKey is the shared secret gating the data endpoints. Empty disables
// key auth (local development).
type FunctionKey string

type options struct {
	functionKey FunctionKey
	providers   []any
}

// Option customizes container construction.
type Option func(*options)

// WithFunctionKey sets the function key injected into the server.
func WithFunctionKey(key string) Option {
	return func(o *options) { o.functionKey = FunctionKey(key) }
}

// WithProviders registers additional constructors in the container.
func WithProviders(providers ...any) Option {
	return func(o *options) { o.providers = append(o.providers, providers...) }
}
