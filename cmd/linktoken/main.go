// linktoken mints and checks pairing tokens from a shell, using the same
// secret as the pairlink service. Handy for bot operators debugging a
// pairing attempt and for generating pairing codes in test setups.
//
//	linktoken mint --account-id 76561198000000001 --ttl 5m
//	linktoken verify <token>
//	linktoken code -n 3
//
// The secret comes from --secret or LINK_SECRET.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

// errUsage marks errors that should be followed by the usage text.
var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errUsage
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "mint":
		return runMint(rest, stdout, stderr)
	case "verify":
		return runVerify(rest, stdout, stderr)
	case "code":
		return runCode(rest, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		printUsage(stderr)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: linktoken <command> [flags]

Commands:
  mint     sign a new pairing token for an account id
  verify   check a token and print its payload
  code     generate pairing codes (RW-XXXX-XXXX)

Run "linktoken <command> --help" for the flags of a command.
`)
}

// parseFlags parses args into fs and reports pflag.ErrHelp as a clean exit.
func parseFlags(fs *pflag.FlagSet, args []string, stdout io.Writer) (help bool, err error) {
	fs.SetOutput(stdout)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
