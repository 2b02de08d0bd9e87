package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/pillar/pkg"
)

// Version prints the program version.
type Version struct{}

// Run executes the version command.
func (Version) Run(ctx context.Context) error {
	_, err := fmt.Fprintf(StreamsFrom(ctx).Out, "%s v%s\n", pkg.Name, pkg.Version)

	return err
}
