package middleware

import "net/http"

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines mws into one Middleware; the first one is outermost.
// Nil entries are skipped so optional layers can be listed unconditionally.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] != nil {
				final = mws[i](final)
			}
		}
		return final
	}
}

// Stack is the ordered middleware shared by a group of routes.
type Stack []Middleware

// With returns a copy of s extended by mws. s itself is never modified, so
// sibling stacks derived from one base do not share a backing array.
func (s Stack) With(mws ...Middleware) Stack {
	out := make(Stack, 0, len(s)+len(mws))
	out = append(out, s...)
	return append(out, mws...)
}

// Then wraps h in s, outermost first.
func (s Stack) Then(h http.Handler) http.Handler {
	return Chain(s...)(h)
}
