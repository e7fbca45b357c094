// Package nav implements the screen navigation engine for Termo applications.
//
// The engine resolves paths against an ordered route table, drives every
// candidate transition through a guard pipeline, maintains a bounded history
// stack with browser-like semantics, and hands constructed views to the host
// application for mounting. All navigation requests are serialized through a
// single worker goroutine, so concurrent callers never interleave history
// mutation.
//
// # Components
//
//   - Matcher: compiles a path pattern (static segments, :name captures, a
//     trailing * wildcard) into a reusable matcher with numeric coercion
//   - Query: parse/encode of query strings with true/false/numeric coercion
//   - RouteTable: ordered route definitions, first match wins
//   - HistoryStack: bounded, cursor-indexed sequence of resolved routes
//   - Pipeline: global guards followed by the route's BeforeEnter guard, each
//     invocation bounded by a timeout
//   - Engine: the orchestrator tying the above together
//
// # Usage
//
//	engine := nav.New(host, &nav.Config{
//	    Routes: []nav.RouteDefinition{
//	        {Path: "/", Name: "home", View: homeView},
//	        {Path: "/users/:id", Name: "user", View: userView},
//	    },
//	    DefaultRoute: "/",
//	})
//	defer engine.Close()
//
//	if engine.Push("/users/42") {
//	    fmt.Println(engine.Current().Params["id"]) // int64(42)
//	}
//
// # Guards
//
// A guard approves, aborts, or redirects a pending transition by returning a
// Decision. Returning an error or panicking counts as an abort; a guard that
// blocks past Config.GuardTimeout is abandoned and counted as an abort. The
// same pipeline runs for Back/Forward/Go, so history traversal can never
// bypass a guard.
//
//	unsubscribe := engine.BeforeEach(func(ctx context.Context, to, from *nav.Route) (nav.Decision, error) {
//	    if to.Path == "/admin" && !loggedIn {
//	        return nav.Redirect("/login"), nil
//	    }
//	    return nav.Proceed(), nil
//	})
package nav
