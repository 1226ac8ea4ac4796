package main

import (
	"github.com/rs/zerolog"

	"github.com/lakeload/lakeload/cmd/lakeload/commands"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	commands.Execute()
}
