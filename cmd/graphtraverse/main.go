package main

import (
	"context"

	"github.com/cube2222/graphtraverse/cmd"
)

func main() {
	cmd.Execute(context.Background())
}
