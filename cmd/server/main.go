package main

import "github.com/yukikurage/category-task-api/internal/cli"

func main() {
	cli.Execute()
}
