package main

import "gazetteer/cmd"

func main() {
	cmd.Execute()
}
