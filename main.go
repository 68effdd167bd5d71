package main

import "github.com/casebridge-io/casebridge/cmd"

func main() {
	cmd.Execute()
}
