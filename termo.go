// Package termo provides the application shell for terminal programs built
// on the navigation engine in pkg/nav.
//
// This is the recommended import for most applications:
//
//	import "github.com/termo-dev/termo"
//
// Usage:
//
//	app := termo.New(termo.Config{
//	    Routes: []termo.RouteDefinition{
//	        {Path: "/", Name: "home", View: HomeScreen},
//	        {Path: "/users/:id", Name: "user", View: UserScreen},
//	    },
//	    DefaultRoute: "/",
//	})
//	defer app.Close()
//
//	app.Nav().Push("/users/42")
package termo

import "github.com/termo-dev/termo/pkg/nav"

// Core navigation types, re-exported so simple applications only import the
// root package.

// Route is a resolved navigation target.
type Route = nav.Route

// RouteDefinition is a registered route pattern.
type RouteDefinition = nav.RouteDefinition

// View is the opaque screen handle produced by a view factory.
type View = nav.View

// ViewFactory constructs a screen for a matched route.
type ViewFactory = nav.ViewFactory

// Params holds captured route parameters.
type Params = nav.Params

// Query holds decoded query parameters.
type Query = nav.Query

// Guard decides the fate of a candidate transition.
type Guard = nav.Guard

// Decision is a guard's verdict.
type Decision = nav.Decision

// Direction describes how a transition mutates history.
type Direction = nav.Direction

// Guard decision constructors.
var (
	Proceed  = nav.Proceed
	Abort    = nav.Abort
	Redirect = nav.Redirect
)

// Navigation option re-exports.
var (
	WithQuery  = nav.WithQuery
	WithParams = nav.WithParams
)
