package main

import "bitbucket.org/Amartha/go-fp-ledger/cmd/consumer/cmd"

func main() {
	cmd.Execute()
}
