// Command promptctl is the promptdesk command line client.
package main

import (
	"fmt"
	"os"

	"github.com/dmitrymomot/promptdesk/cmd/promptctl/root"
)

func main() {
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
