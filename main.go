package main

import "github.com/GamesPastOrg/Fallout-Save-Image-Extractor/cmd"

func main() {
	cmd.Execute()
}
