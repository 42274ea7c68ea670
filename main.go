package main

import "github.com/KaramelBytes/geotally/cmd"

func main() {
	cmd.Execute()
}
