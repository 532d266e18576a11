package redisrepo

import "fmt"

const (
	USER_PROFILE_KEY     = "user-profile:%s"       // <uid>
	AUTHOR_POSTS_KEY     = "author:%s-posts:%d:%d" // <uid>:<limit>:<offset>
	ALL_POSTS_KEY        = "posts:%d:%d"           // <limit>:<offset>
	AUTHOR_POSTS_PATTERN = "author:%s-posts:*"     // <uid>
)

func UserProfileKey(uid string) string {
	return fmt.Sprintf(USER_PROFILE_KEY, uid)
}

func AuthorPostsKey(uid string, limit int, offset int) string {
	return fmt.Sprintf(AUTHOR_POSTS_KEY, uid, limit, offset)
}

func AllPostsKey(limit int, offset int) string {
	return fmt.Sprintf(ALL_POSTS_KEY, limit, offset)
}

func AuthorPostsPattern(uid string) string {
	return fmt.Sprintf(AUTHOR_POSTS_PATTERN, uid)
}
