// Command dashboard serves and renders the industry decarbonization
// pathways dashboard.
package main

import (
	"os"
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr, os.LookupEnv)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
