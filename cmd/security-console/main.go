package main

import "github.com/oshokin/security-panel/cmd/security-console/cmd"

func main() {
	cmd.Execute()
}
