package main

import "tradewatch/cmd/tradewatch/cmd"

func main() {
	cmd.Execute()
}
