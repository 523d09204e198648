// Command catalogctl runs operational tasks against the catalog search
// backend: readiness checks, schema migration and seeding.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
