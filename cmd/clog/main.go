package main

import (
	"os"

	"github.com/dhenkel/clog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
