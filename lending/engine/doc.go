// Package engine is the lending transaction engine: Borrow and Return as single calls that
// return the resulting borrow record.
//
// Each call runs the command (with its concurrency conflict retries) and then reads the record
// back with strong consistency. Business rejections are returned as *core.BusinessError.
package engine
