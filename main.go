package main

import "github.com/bmatsuo/gomal/cmd"

func main() {
	cmd.Execute()
}
