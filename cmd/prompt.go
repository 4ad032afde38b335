package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

func promptLine(question string) (string, error) {
	fmt.Print(question)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question, defaulting to no.
func confirm(question string) bool {
	resp, err := promptLine(question + " [y/N]: ")
	if err != nil {
		return false
	}

	resp = strings.ToLower(resp)
	return resp == "y" || resp == "yes"
}
