// Command artshopctl runs admin chores against the shop database: schema
// migration, seeding, order listing and status changes, and tailing the
// order event queue.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

var errUsage = errors.New("usage: artshopctl <migrate|seed|orders|set-status|events> [flags]")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}
	switch args[0] {
	case "migrate":
		return migrateCmd(args[1:], out)
	case "seed":
		return seedCmd(args[1:], out)
	case "orders":
		return ordersCmd(args[1:], out)
	case "set-status":
		return setStatusCmd(args[1:], out)
	case "events":
		return eventsCmd(args[1:], out)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}
