// Package bench holds the benchmark suites. Run them with
//
//	go test -bench . ./bench
//
// Every suite sweeps sizes 0 through 10,000 in steps of 1,000.
package bench
