package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/aussiebroadwan/vouch/internal/vouch/app"
	"github.com/aussiebroadwan/vouch/internal/vouch/service"
)

// readPassword is swapped out in tests.
var readPassword = term.ReadPassword

type employerAddOptions struct {
	org           string
	email         string
	passwordStdin bool
}

func parseEmployerAdd(args []string) (employerAddOptions, error) {
	var opts employerAddOptions

	fs := flag.NewFlagSet("employer add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.org, "org", "", "organization name")
	fs.StringVar(&opts.email, "email", "", "login email")
	fs.BoolVar(&opts.passwordStdin, "password-stdin", false, "read the password from stdin")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if strings.TrimSpace(opts.org) == "" || strings.TrimSpace(opts.email) == "" {
		return opts, errors.New("--org and --email are required")
	}
	return opts, nil
}

// employerAdd provisions an employer account directly against the
// configured database.
func employerAdd(cfg app.Config, args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseEmployerAdd(args)
	if err != nil {
		return err
	}

	password, err := readEmployerPassword(opts.passwordStdin, stdin, stdout)
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg)
	app.ConfigureSecrets(cfg, logger)

	db, err := app.OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := &service.EmployerService{Store: db}
	emp, err := svc.Create(context.Background(), service.EmployerInput{
		Email:            opts.email,
		Password:         password,
		OrganizationName: opts.org,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "employer %s created for %q\n", emp.ID, emp.OrganizationName)
	return nil
}

func readEmployerPassword(fromStdin bool, stdin io.Reader, stdout io.Writer) (string, error) {
	if fromStdin {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(stdout, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(stdout)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(stdout, "Confirm password: ")
	confirm, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(stdout)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if string(pw) != string(confirm) {
		return "", errors.New("passwords do not match")
	}
	return string(pw), nil
}
