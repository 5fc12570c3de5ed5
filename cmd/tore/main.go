// Command tore keeps notifications and reminders in a SQLite file.
package main

import (
	"context"
	"os"

	"github.com/roach88/tore/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
