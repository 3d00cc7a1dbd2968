package main

import "github.com/deploymenttheory/go-javaseis/cmd"

func main() {
	cmd.Execute()
}
