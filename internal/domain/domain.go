package domain

import (
	"github.com/yungbote/bloglist-backend/internal/domain/blog"
	"github.com/yungbote/bloglist-backend/internal/domain/user"
	"github.com/yungbote/bloglist-backend/internal/stats"
)

type Blog = blog.Blog
type User = user.User

func BlogRecords(blogs []*Blog) []stats.Record { return blog.Records(blogs) }
