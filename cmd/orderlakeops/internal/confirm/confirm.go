// Package confirm provides interactive confirmation prompts for the CLI.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samsarahq/go/oops"
)

// input is swapped out in tests.
var input io.Reader = os.Stdin

// Prompt asks for y/n confirmation from the user.
// Returns nil if confirmed, error if declined or on input failure.
func Prompt(message string) error {
	fmt.Printf("⚠️  %s [y/N]: ", message)

	response, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		return oops.Wrapf(err, "failed to read confirmation")
	}

	if !affirmative(response) {
		return oops.Errorf("operation cancelled by user")
	}
	return nil
}

func affirmative(response string) bool {
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
