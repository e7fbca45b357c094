// Package navmw provides ready-made navigation observers: Prometheus metrics
// and OpenTelemetry tracing for every transition the engine processes.
//
// Observers are passed to the engine through nav.Config:
//
//	engine := nav.New(host, &nav.Config{
//	    Routes: routes,
//	    Observers: []nav.Observer{
//	        navmw.Prometheus(navmw.WithNamespace("myapp")),
//	        navmw.Tracing(navmw.WithTracerName("myapp")),
//	    },
//	})
package navmw
