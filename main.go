package main

import "github.com/Frozzzo/SeguridadUrbana/cmd"

func main() {
	cmd.Execute()
}
