package main

import "github.com/klytics/finrep/cmd"

func main() {
	cmd.Execute()
}
