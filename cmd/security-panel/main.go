package main

import "github.com/oshokin/security-panel/cmd/security-panel/cmd"

func main() {
	cmd.Execute()
}
