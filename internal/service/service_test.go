package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/emilythestrangee/bloglite/backend/internal/config"
	"github.com/emilythestrangee/bloglite/backend/internal/database"
	"github.com/emilythestrangee/bloglite/backend/internal/models"
)

type fixture struct {
	db       *gorm.DB
	identity *IdentityService
	graph    *FollowService
	feed     *FeedService
	posts    *PostService
	search   *SearchService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := database.New(config.DatabaseConfig{
		Driver:   "sqlite",
		FilePath: filepath.Join(t.TempDir(), "bloglite.db"),
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	db := store.GetDB()
	graph := NewFollowService(db)
	return &fixture{
		db:       db,
		identity: NewIdentityService(db),
		graph:    graph,
		feed:     NewFeedService(db, graph, nil),
		posts:    NewPostService(db),
		search:   NewSearchService(db),
	}
}

func (f *fixture) register(t *testing.T, username string) *models.User {
	t.Helper()

	u, err := f.identity.Register(context.Background(), models.RegisterRequest{
		Email:           username + "@x",
		Username:        username,
		Password:        "p",
		ConfirmPassword: "p",
	})
	require.NoError(t, err)
	return u
}

// insertUser bypasses Register, so the user has no self edge.
func (f *fixture) insertUser(t *testing.T, username string) *models.User {
	t.Helper()

	u := models.User{Email: username + "@x", Username: username, PasswordHash: "h"}
	require.NoError(t, f.db.Create(&u).Error)
	return &u
}

func (f *fixture) edges(t *testing.T) [][2]uint {
	t.Helper()

	var follows []models.Follow
	require.NoError(t, f.db.Order("follower_id, followed_id").Find(&follows).Error)
	out := make([][2]uint, 0, len(follows))
	for _, e := range follows {
		out = append(out, [2]uint{e.FollowerID, e.FollowedID})
	}
	return out
}

func as(u *models.User) context.Context {
	return WithPrincipal(context.Background(), Principal{UserID: u.ID, Username: u.Username})
}

func titles(posts []models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func usernames(users []models.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Username)
	}
	return out
}
