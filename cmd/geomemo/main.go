package main

import "github.com/geomemo/sdk-go/cmd/geomemo/cmd"

func main() {
	cmd.Execute()
}
