package main

import "github.com/derickschaefer/fredkit/cmd"

func main() {
	cmd.Execute()
}
