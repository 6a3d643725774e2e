package main

import (
	"context"
	"io"
	"os"

	"postsapi/service"
)

var exit = os.Exit

func main() {
	exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	return service.Execute(context.Background(), args, stdout, stderr)
}
