// Command hash-generator prints a bcrypt hash suitable for
// MINDCREDIT_AUTH_PASSWORD_HASH, so the API password need not be stored in
// plain text.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, flag.Args(), *cost); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run hashes the password given as the single argument, or the first line
// of in when no argument is given.
func run(in io.Reader, out io.Writer, args []string, cost int) error {
	var password string
	switch len(args) {
	case 0:
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	case 1:
		password = args[0]
	default:
		return errors.New("usage: hash-generator [-cost N] [password]")
	}

	if password == "" {
		return errors.New("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = fmt.Fprintf(out, "MINDCREDIT_AUTH_PASSWORD_HASH=%s\n", hash)
	return err
}
