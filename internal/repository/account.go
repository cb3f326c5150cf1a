package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
)

// AccountRepo stores users and drivers. Each profile row references an
// accounts row carrying the role and the unique email.
type AccountRepo struct{ db *pgxpool.Pool }

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(db *pgxpool.Pool) *AccountRepo { return &AccountRepo{db: db} }

func insertAccount(ctx context.Context, tx pgx.Tx, id string, role domain.Role, email string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO accounts(id, role, email) VALUES($1, $2, $3)`,
		id, string(role), email)
	if err != nil {
		if c, ok := uniqueViolation(err); ok {
			return fmt.Errorf("account email %q violates %s: %w", email, c, apperr.ErrConflict)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func deleteAccount(ctx context.Context, tx pgx.Tx, table, id string) (bool, error) {
	ct, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete from %s %s: %w", table, id, err)
	}
	if ct.RowsAffected() == 0 {
		return false, nil
	}
	if _, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id); err != nil {
		return false, fmt.Errorf("delete account %s: %w", id, err)
	}
	return true, nil
}

// CreateUser inserts the account and the user profile in one transaction.
func (r *AccountRepo) CreateUser(ctx context.Context, u *domain.User) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := insertAccount(ctx, tx, u.ID, domain.RoleUser, u.Email); err != nil {
			return err
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO users(id, name, phone, address)
			VALUES($1, $2, $3, $4)
			RETURNING created_at, updated_at`,
			u.ID, u.Name, u.Phone, u.Address,
		).Scan(&u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
}

// GetUser returns the user, or nil when absent.
func (r *AccountRepo) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `
		SELECT u.id, a.email, u.name, u.phone, u.address, u.created_at, u.updated_at
		FROM users u JOIN accounts a ON a.id = u.id
		WHERE u.id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.Address, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &u, nil
}

// UpdateUser applies a partial update and reports whether the user exists.
func (r *AccountRepo) UpdateUser(ctx context.Context, u domain.PartialUserUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE users
		SET
			name       = COALESCE($2, name),
			phone      = COALESCE($3, phone),
			address    = COALESCE($4, address),
			updated_at = now()
		WHERE id = $1`,
		u.ID, u.Name, u.Phone, u.Address)
	if err != nil {
		return false, fmt.Errorf("update user %s: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// DeleteUser removes the user profile and its account.
func (r *AccountRepo) DeleteUser(ctx context.Context, id string) (bool, error) {
	var found bool
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		found, err = deleteAccount(ctx, tx, "users", id)
		return err
	})
	return found, err
}

// CreateDriver inserts the account and the driver profile in one transaction.
func (r *AccountRepo) CreateDriver(ctx context.Context, d *domain.Driver) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := insertAccount(ctx, tx, d.ID, domain.RoleDriver, d.Email); err != nil {
			return err
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO drivers(id, name, phone, vehicle_type, license_plate)
			VALUES($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at`,
			d.ID, d.Name, d.Phone, d.VehicleType, d.LicensePlate,
		).Scan(&d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert driver: %w", err)
		}
		return nil
	})
}

// GetDriver returns the driver, or nil when absent.
func (r *AccountRepo) GetDriver(ctx context.Context, id string) (*domain.Driver, error) {
	var d domain.Driver
	err := r.db.QueryRow(ctx, `
		SELECT d.id, a.email, d.name, d.phone, d.vehicle_type, d.license_plate, d.created_at, d.updated_at
		FROM drivers d JOIN accounts a ON a.id = d.id
		WHERE d.id = $1`, id,
	).Scan(&d.ID, &d.Email, &d.Name, &d.Phone, &d.VehicleType, &d.LicensePlate, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %s: %w", id, err)
	}
	return &d, nil
}

// UpdateDriver applies a partial update and reports whether the driver exists.
func (r *AccountRepo) UpdateDriver(ctx context.Context, d domain.PartialDriverUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE drivers
		SET
			name          = COALESCE($2, name),
			phone         = COALESCE($3, phone),
			vehicle_type  = COALESCE($4, vehicle_type),
			license_plate = COALESCE($5, license_plate),
			updated_at    = now()
		WHERE id = $1`,
		d.ID, d.Name, d.Phone, d.VehicleType, d.LicensePlate)
	if err != nil {
		return false, fmt.Errorf("update driver %s: %w", d.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// DeleteDriver removes the driver profile and its account.
func (r *AccountRepo) DeleteDriver(ctx context.Context, id string) (bool, error) {
	var found bool
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		found, err = deleteAccount(ctx, tx, "drivers", id)
		return err
	})
	return found, err
}
