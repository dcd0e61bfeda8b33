package main

import (
	"github.com/ksyq12/phpvhost/internal/cli"
)

// version is set with -ldflags "-X main.version=..." at build time
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
