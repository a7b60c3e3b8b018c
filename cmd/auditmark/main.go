package main

import (
	"os"

	"github.com/dshills/auditmark/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
