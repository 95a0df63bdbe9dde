package pg

import (
	"database/sql"
	"errors"

	internal_errors "github.com/borda-dev/borda/internal/errors"

	"github.com/borda-dev/borda/internal/domain"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

func (s *Storage) SaveUser(user domain.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users(id, username, password, fullname, img_url, email, color, is_admin, score)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.Id, user.Username, user.PassHash, user.FullName, user.ImgUrl, user.Email, user.Color, user.IsAdmin, user.Score)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return internal_errors.Conflict("Username already taken")
		}
		return err
	}
	return nil
}

func (s *Storage) UserByUsername(username string) (domain.User, error) {
	return s.scanUser(s.db.QueryRow(selectUser+" WHERE username = $1", username))
}

func (s *Storage) UserById(userId string) (domain.User, error) {
	return s.scanUser(s.db.QueryRow(selectUser+" WHERE id = $1", userId))
}

// UserByEmail matches federated identities: either a local username equal
// to the email, or an explicitly stored email.
func (s *Storage) UserByEmail(email string) (domain.User, error) {
	return s.scanUser(s.db.QueryRow(selectUser+" WHERE username = $1 OR email = $1", email))
}

func (s *Storage) Users() ([]domain.User, error) {
	rows, err := s.db.Query(selectUser + " ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := s.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

const selectUser = "SELECT id, username, password, fullname, img_url, email, color, is_admin, score FROM users"

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Storage) scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.Id, &user.Username, &user.PassHash, &user.FullName,
		&user.ImgUrl, &user.Email, &user.Color, &user.IsAdmin, &user.Score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, err
	}
	return user, nil
}
