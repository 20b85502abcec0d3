package queries

import (
	"context"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchUsersQueryHandler serves the email autocomplete. At most
// SearchUsersLimit users are returned, ordered by email.
type SearchUsersQueryHandler struct {
	db *gorm.DB
}

func NewSearchUsersQueryHandler(db *gorm.DB) SearchUsersQueryHandler {
	return SearchUsersQueryHandler{db: db}
}

func (h SearchUsersQueryHandler) Handle(ctx context.Context, query SearchUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, email, role, last_login
		FROM users
		WHERE email LIKE ? ESCAPE '\'
		ORDER BY email
		LIMIT ?
	`, likeEscaper.Replace(query.Prefix())+"%", SearchUsersLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]UserView, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			email     string
			role      string
			lastLogin time.Time
		)
		if err = rows.Scan(&id, &email, &role, &lastLogin); err != nil {
			return nil, err
		}

		userID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		parsed, roleErr := user.ParseRole(role)
		if roleErr != nil {
			return nil, roleErr
		}

		users = append(users, UserView{ID: userID, Email: email, Role: parsed, LastLogin: lastLogin})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
