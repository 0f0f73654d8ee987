package main

import "github.com/dbsmedya/deadfiles/cmd/deadfiles/cmd"

func main() {
	cmd.Execute()
}
