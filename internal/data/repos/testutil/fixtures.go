package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/bloglist-backend/internal/domain"
	"gorm.io/gorm"
)

// InitialBlogs is the canonical six-blog fixture.
func InitialBlogs() []*types.Blog {
	return []*types.Blog{
		{Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7},
		{Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "http://www.u.arizona.edu/~rubinson/copyright_violations/Go_To_Considered_Harmful.html", Likes: 5},
		{Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", URL: "http://www.cs.utexas.edu/~EWD/transcriptions/EWD08xx/EWD808.html", Likes: 12},
		{Title: "First class tests", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/05/05/TestDefinitions.htmll", Likes: 10},
		{Title: "TDD harms architecture", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/03/03/TDD-Harms-Architecture.html", Likes: 0},
		{Title: "Type wars", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html", Likes: 2},
	}
}

// SeedBlogs inserts blogs with strictly increasing creation times so list
// order matches slice order.
func SeedBlogs(tb testing.TB, ctx context.Context, tx *gorm.DB, blogs []*types.Blog) []*types.Blog {
	tb.Helper()
	base := time.Now().UTC().Add(-time.Hour)
	for i, b := range blogs {
		b.CreatedAt = base.Add(time.Duration(i) * time.Second)
		b.UpdatedAt = b.CreatedAt
		if err := tx.WithContext(ctx).Create(b).Error; err != nil {
			tb.Fatalf("seed blog %q: %v", b.Title, err)
		}
	}
	return blogs
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:           uuid.New(),
		Username:     username,
		Name:         "Test User",
		PasswordHash: "not-a-real-hash",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }
