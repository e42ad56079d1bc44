package main

import "ros2ws/internal/cli"

func main() {
	cli.Execute()
}
