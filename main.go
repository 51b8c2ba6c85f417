package main

import "github.com/matejkriz/bookpress/cmd"

func main() {
	cmd.Execute()
}
