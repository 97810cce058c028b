package main

import "github.com/datosargentinosjuniors/scouting-aaaj/internal/interfaces/cli"

func main() {
	cli.Execute()
}
