// Package observable decorates command and query handlers with metrics, tracing and logging.
//
// The wrappers implement the same handler interfaces they wrap, so they can be stacked:
//
//	handler, err := observable.NewCommandWrapper[borrow.Command](
//		borrow.NewCommandHandler(store),
//		observable.WithCommandMetrics[borrow.Command](metrics),
//		observable.WithCommandContextualLogging[borrow.Command](logger),
//	)
package observable
