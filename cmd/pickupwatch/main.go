package main

import "pickupwatch/cmd/pickupwatch/cmd"

func main() {
	cmd.Execute()
}
