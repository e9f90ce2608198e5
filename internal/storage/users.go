package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/gymtrack/internal/bmi"
	"github.com/claude/gymtrack/internal/models"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserExists is returned when the username or email is already taken.
	ErrUserExists = errors.New("username or email already exists")

	// ErrInvalidCredentials is returned for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserNotFound is returned when no user has the requested ID.
	ErrUserNotFound = errors.New("user not found")
)

const userColumns = `id, username, email, height_cm, weight_kg, bmi, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.HeightCm, &u.WeightKg, &u.BMI, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Register validates reg and creates the account with a bcrypt password hash.
func (db *DB) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	reg.Normalize()
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u, err := scanUser(db.Pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
		RETURNING `+userColumns,
		reg.Username, reg.Email, string(hash)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user whose username and password match.
func (db *DB) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var hash string
	var u models.User
	err := db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`, password_hash FROM users WHERE username = $1`,
		username).Scan(&u.ID, &u.Username, &u.Email, &u.HeightCm, &u.WeightKg, &u.BMI, &u.CreatedAt, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// GetUser returns the user with the given ID.
func (db *DB) GetUser(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return u, nil
}

// UserExists reports whether the username or the email is taken.
func (db *DB) UserExists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`,
		username, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}
	return exists, nil
}

// UpdateBodyMetrics stores height and weight along with the BMI computed
// from them.
func (db *DB) UpdateBodyMetrics(ctx context.Context, id int, heightCm, weightKg float64) (*models.User, error) {
	res, err := bmi.Compute(heightCm, weightKg)
	if err != nil {
		return nil, err
	}
	u, err := scanUser(db.Pool.QueryRow(ctx, `
		UPDATE users SET height_cm = $2, weight_kg = $3, bmi = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, res.HeightCm, res.WeightKg, res.BMI))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating body metrics: %w", err)
	}
	return u, nil
}
