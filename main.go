package main

import "github.com/sorade/weebdl/cmd"

func main() {
	cmd.Execute()
}
