// Package resilience provides reliability patterns for outbound calls.
// It includes circuit breakers, retry with exponential backoff, and
// request rate limiting, used to wrap every call that leaves the process
// (LLM APIs, the search ranking API, the database).
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ClaudeAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callExternalService()
//	})
//
//	err := retry.WithBackoff(ctx, retry.GeneratorConfig(), func() error {
//	    return performOperation()
//	})
package resilience
