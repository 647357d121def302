// SPDX-License-Identifier: MIT

// Command lvsparse benchmarks the dense, hash and ordered matrix backends on
// generated workloads and charts the results.
//
//	lvsparse run --rows 2000 --cols 2000 --density 0.001 --ops add,mul --format json --out records.json
//	lvsparse plot --in records.json --op mul --out peak.png
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
