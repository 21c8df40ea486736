package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"folio-go/internal/auth"
	"folio-go/internal/store"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// runCreateAdmin interactively creates the first admin user. It only
// runs while the users table is empty and never over the network. Any
// input failure aborts without committing the transaction.
func runCreateAdmin(ctx context.Context, db *sql.DB) error {
	queries := store.New(db)

	count, err := queries.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		fmt.Println("Users already exist; admin setup is only for an empty database.")
		return nil
	}

	fmt.Println("--- Initial Admin Setup ---")
	fmt.Println("Create the first admin user for dashboard access.")

	reader := bufio.NewReader(os.Stdin)

	username, err := promptLine(reader, os.Stdout, "Admin username")
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}
	email, err := promptLine(reader, os.Stdout, "Admin email")
	if err != nil {
		return fmt.Errorf("reading email: %w", err)
	}

	fmt.Print("Admin password: ")
	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	if username == "" || email == "" || len(password) == 0 {
		return fmt.Errorf("username, email and password must not be empty")
	}

	passwordHash, err := auth.HashPassword(string(password))
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	user, err := queries.WithTx(tx).CreateUser(ctx, store.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing admin user: %w", err)
	}

	fmt.Printf("Admin user %q created successfully.\n", user.Username)
	return nil
}

// promptLine prints a prompt and reads a single trimmed line.
func promptLine(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
