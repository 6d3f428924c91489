// Package stats computes summary statistics over an in-memory list of blogs.
//
// Every function is pure: inputs are read only, nothing is cached between
// calls, and results depend only on the order and contents of the slice.
package stats

import "sort"

// Record is the part of a blog the statistics look at.
type Record struct {
	Title  string
	Author string
	URL    string
	Likes  int
}

type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Summary bundles every statistic for a single blog list.
type Summary struct {
	Dummy        int          `json:"dummy"`
	BlogCount    int          `json:"blog_count"`
	TotalLikes   int          `json:"total_likes"`
	FavoriteBlog Favorite     `json:"favorite_blog"`
	MostBlogs    *AuthorBlogs `json:"most_blogs"`
	MostLikes    *AuthorLikes `json:"most_likes"`
}

// Dummy always returns 1.
func Dummy(_ []Record) int { return 1 }

func TotalLikes(blogs []Record) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the first blog whose likes are strictly greater than
// every blog before it. Blogs with zero likes are never picked, so an empty
// list (or one where nothing has likes) yields the zero Favorite.
func FavoriteBlog(blogs []Record) Favorite {
	var best Record
	max := 0
	for _, b := range blogs {
		if b.Likes > max {
			max = b.Likes
			best = b
		}
	}
	return Favorite{
		Title:  best.Title,
		Author: best.Author,
		Likes:  best.Likes,
	}
}

// MostBlogs returns the author with the most blogs, or nil for an empty
// list. Ties go to the author that appears first in blogs.
func MostBlogs(blogs []Record) *AuthorBlogs {
	if len(blogs) == 0 {
		return nil
	}
	tallies := groupByAuthor(blogs)
	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].blogs > tallies[j].blogs
	})
	top := tallies[0]
	return &AuthorBlogs{Author: top.author, Blogs: top.blogs}
}

// MostLikes returns the author whose blogs have the most likes in total, or
// nil for an empty list. Ties go to the author that appears first in blogs.
func MostLikes(blogs []Record) *AuthorLikes {
	if len(blogs) == 0 {
		return nil
	}
	tallies := groupByAuthor(blogs)
	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].likes > tallies[j].likes
	})
	top := tallies[0]
	return &AuthorLikes{Author: top.author, Likes: top.likes}
}

func Summarize(blogs []Record) Summary {
	return Summary{
		Dummy:        Dummy(blogs),
		BlogCount:    len(blogs),
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}
}

type authorTally struct {
	author string
	blogs  int
	likes  int
}

// groupByAuthor tallies blogs per author in order of first appearance.
func groupByAuthor(blogs []Record) []authorTally {
	index := make(map[string]int, len(blogs))
	tallies := make([]authorTally, 0, len(blogs))
	for _, b := range blogs {
		i, ok := index[b.Author]
		if !ok {
			i = len(tallies)
			index[b.Author] = i
			tallies = append(tallies, authorTally{author: b.Author})
		}
		tallies[i].blogs++
		tallies[i].likes += b.Likes
	}
	return tallies
}
