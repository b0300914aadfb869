// Package embedding provides clients for external embedding-vector
// providers and a bounded memoization cache keyed by entity id and
// definition text.
//
// Two providers are supported: an Ollama-style HTTP endpoint (POST
// {model, prompt} returning {embedding}) and any OpenAI-compatible
// embeddings API. Providers can be wrapped in a circuit breaker so a dead
// upstream fails fast instead of timing out every search.
package embedding
