package main

import "devrank/cmd"

func main() {
	cmd.Execute()
}
