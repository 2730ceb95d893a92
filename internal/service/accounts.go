package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/bcrypt"

	"assignment_service/internal/domain"
	"assignment_service/pkg/logger"
)

type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
}

// BootstrapUsers loads accounts from a CSV with a header row of
// first_name,last_name,email,password. Passwords are bcrypt-hashed before
// insert; rows for already-known emails are skipped by the store.
func BootstrapUsers(ctx context.Context, path string, store UserStore, log *logger.Logger) error {
	f, err := os.Open(path) //nolint:gosec // path from config
	if err != nil {
		return fmt.Errorf("failed to open users csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, required := range []string{"first_name", "last_name", "email", "password"} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("users csv is missing column %q", required)
		}
	}

	imported := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read csv row: %w", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(row[columns["password"]]), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := &domain.User{
			FirstName:    row[columns["first_name"]],
			LastName:     row[columns["last_name"]],
			Email:        row[columns["email"]],
			PasswordHash: string(hash),
		}

		if err := store.Create(ctx, user); err != nil {
			log.Errorf("Failed to import account %s: %v", user.Email, err)
			continue
		}
		imported++
	}

	log.Infof("Imported %d accounts from %s", imported, path)
	return nil
}
