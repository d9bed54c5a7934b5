package main

import "github.com/Pjt727/roster/cmd"

func main() {
	cmd.Execute()
}
