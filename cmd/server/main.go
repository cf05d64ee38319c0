package main

import "github.com/internlink/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
