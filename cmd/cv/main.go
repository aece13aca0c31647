package main

import "cultivator/cmd/cv/root"

func main() {
	root.Execute()
}
