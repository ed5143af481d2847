package main

import "github.com/oshokin/kiro-get/cmd/kiro-get/cmd"

func main() {
	cmd.Execute()
}
