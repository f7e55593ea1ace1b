package main

import "pricelist/cmd/client/cmd"

func main() {
	cmd.Execute()
}
