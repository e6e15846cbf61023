package main

import "sports-club/cmd"

func main() {
	cmd.Execute()
}
