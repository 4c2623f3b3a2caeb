package main

import "github.com/KaramelBytes/blogloom/cmd"

func main() {
	cmd.Execute()
}
