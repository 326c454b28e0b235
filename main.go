package main

import "newsdesk/cmd"

func main() {
	cmd.Execute()
}
