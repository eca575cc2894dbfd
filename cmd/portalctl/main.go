package main

import (
	"github.com/lcabral/guestportal/internal/cli"
)

func main() {
	cli.Execute()
}
