package main

import "github.com/lukman83/estate-listings/cmd"

func main() {
	cmd.Execute()
}
